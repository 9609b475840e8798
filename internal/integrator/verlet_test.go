package integrator

import (
	"math"
	"testing"

	"github.com/jchodera/openmmtools/internal/engine"
	"github.com/jchodera/openmmtools/internal/system"
)

func TestVelocityVerletAccuracy(t *testing.T) {
	sys := system.NewHarmonicOscillator()
	integ := NewVelocityVerlet(engine.Femtosecond)

	ctx, err := engine.New(sys, integ, engine.WithSeed(1))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	defer ctx.Close()

	x0 := 0.1
	if err := ctx.SetPositions(engine.State{x0, 0, 0}); err != nil {
		t.Fatalf("set positions failed: %v", err)
	}

	steps := 100
	if err := ctx.Advance(steps); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	snap, err := ctx.State(engine.StateRequest{Positions: true})
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}

	omega := math.Sqrt(sys.K / sys.Mass)
	tEnd := float64(steps) * engine.Femtosecond
	expected := x0 * math.Cos(omega*tEnd)

	if math.Abs(snap.Positions[0]-expected) > 1e-6 {
		t.Errorf("position error too large: got %.9f, expected %.9f", snap.Positions[0], expected)
	}
	if snap.Positions[1] != 0 || snap.Positions[2] != 0 {
		t.Errorf("motion leaked into transverse axes: %v", snap.Positions)
	}
}

func TestVelocityVerletEnergyConservation(t *testing.T) {
	sys := system.NewHarmonicOscillator()
	integ := NewVelocityVerlet(engine.Femtosecond)

	ctx, err := engine.New(sys, integ, engine.WithSeed(42))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	defer ctx.Close()

	if err := ctx.RandomizeVelocities(300); err != nil {
		t.Fatalf("randomize failed: %v", err)
	}

	initial, err := ctx.State(engine.StateRequest{Energy: true})
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	e0 := initial.PotentialEnergy + initial.KineticEnergy

	if err := ctx.Advance(1000); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	final, err := ctx.State(engine.StateRequest{Energy: true})
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	e1 := final.PotentialEnergy + final.KineticEnergy

	drift := math.Abs(e1-e0) / math.Abs(e0)
	if drift > 1e-4 {
		t.Errorf("energy drift %g over 1000 steps, want < 1e-4", drift)
	}
}

func TestLeapfrogStaysFinite(t *testing.T) {
	sys := system.NewLennardJonesCluster()
	integ := NewLeapfrog(engine.Femtosecond)

	ctx, err := engine.New(sys, integ, engine.WithSeed(7))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	defer ctx.Close()

	if err := ctx.RandomizeVelocities(300); err != nil {
		t.Fatalf("randomize failed: %v", err)
	}
	if err := ctx.Advance(100); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	snap, err := ctx.State(engine.StateRequest{Positions: true, Energy: true})
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if !snap.Positions.IsFinite() {
		t.Error("positions diverged")
	}
	if math.IsNaN(snap.PotentialEnergy) || math.IsInf(snap.PotentialEnergy, 0) {
		t.Errorf("potential diverged: %v", snap.PotentialEnergy)
	}
}
