package engine

import (
	"math"
	"testing"
)

// testSystem is a free particle cloud: no forces, zero potential.
type testSystem struct {
	n int
}

func (s *testSystem) Name() string      { return "test" }
func (s *testSystem) NumParticles() int { return s.n }

func (s *testSystem) Masses() []float64 {
	m := make([]float64, s.n)
	for i := range m {
		m[i] = 1.0
	}
	return m
}

func (s *testSystem) InitialPositions() State {
	return make(State, 3*s.n)
}

func (s *testSystem) Forces(pos State, f State) float64 {
	f.Zero()
	return 0
}

// driftIntegrator moves positions by v*dt each step.
type driftIntegrator struct {
	dt float64
}

func (d *driftIntegrator) Timestep() float64 { return d.dt }

func (d *driftIntegrator) Advance(sys System, f *Frame, steps int) error {
	for s := 0; s < steps; s++ {
		for i := range f.Positions {
			f.Positions[i] += d.dt * f.Velocities[i]
		}
		f.Time += d.dt
	}
	return nil
}

func TestContextLifecycle(t *testing.T) {
	ctx, err := New(&testSystem{n: 2}, &driftIntegrator{dt: 0.001}, WithSeed(1))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if err := ctx.SetPositions(State{1, 0, 0, 0, 1, 0}); err != nil {
		t.Fatalf("set positions failed: %v", err)
	}
	if err := ctx.Advance(10); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	snap, err := ctx.State(StateRequest{Positions: true, Energy: true})
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if snap.Positions[0] != 1 {
		t.Errorf("expected stationary particle at x=1, got %f", snap.Positions[0])
	}
	if snap.PotentialEnergy != 0 {
		t.Errorf("expected zero potential, got %f", snap.PotentialEnergy)
	}
	if math.Abs(snap.Time-0.01) > 1e-12 {
		t.Errorf("expected time 0.01, got %f", snap.Time)
	}

	if err := ctx.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Errorf("close is not idempotent: %v", err)
	}
	if err := ctx.Advance(1); err != ErrClosed {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
	if _, err := ctx.State(StateRequest{}); err != ErrClosed {
		t.Errorf("expected ErrClosed from State after close, got %v", err)
	}
}

func TestContextValidation(t *testing.T) {
	sys := &testSystem{n: 1}
	integ := &driftIntegrator{dt: 0.001}

	if _, err := New(nil, integ); err == nil {
		t.Error("expected error for nil system")
	}
	if _, err := New(sys, nil); err == nil {
		t.Error("expected error for nil integrator")
	}
	if _, err := New(sys, &driftIntegrator{dt: 0}); err == nil {
		t.Error("expected error for zero timestep")
	}

	ctx, err := New(sys, integ)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	defer ctx.Close()

	if err := ctx.SetPositions(State{1, 2}); err == nil {
		t.Error("expected error for wrong position length")
	}
	if err := ctx.Advance(0); err == nil {
		t.Error("expected error for zero steps")
	}
	if err := ctx.Advance(-5); err == nil {
		t.Error("expected error for negative steps")
	}
	if err := ctx.RandomizeVelocities(0); err == nil {
		t.Error("expected error for zero temperature")
	}
	if err := ctx.RandomizeVelocities(-10); err == nil {
		t.Error("expected error for negative temperature")
	}
}

func TestRandomizeVelocitiesDeterministic(t *testing.T) {
	sys := &testSystem{n: 8}
	integ := &driftIntegrator{dt: 0.001}

	read := func(seed int64) State {
		ctx, err := New(sys, integ, WithSeed(seed))
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		defer ctx.Close()
		if err := ctx.RandomizeVelocities(300); err != nil {
			t.Fatalf("randomize failed: %v", err)
		}
		snap, err := ctx.State(StateRequest{Velocities: true})
		if err != nil {
			t.Fatalf("state failed: %v", err)
		}
		return snap.Velocities
	}

	a := read(42)
	b := read(42)
	c := read(43)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	if !same {
		t.Error("same seed produced different velocities")
	}

	diff := false
	for i := range a {
		if a[i] != c[i] {
			diff = true
		}
	}
	if !diff {
		t.Error("different seeds produced identical velocities")
	}

	if !a.IsFinite() {
		t.Error("randomized velocities are not finite")
	}
	nonzero := 0
	for _, v := range a {
		if v != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Error("randomized velocities are all zero")
	}
}

func TestNegateVelocities(t *testing.T) {
	ctx, err := New(&testSystem{n: 2}, &driftIntegrator{dt: 0.001}, WithSeed(7))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	defer ctx.Close()

	if err := ctx.RandomizeVelocities(300); err != nil {
		t.Fatalf("randomize failed: %v", err)
	}
	before, _ := ctx.State(StateRequest{Velocities: true})
	if err := ctx.NegateVelocities(); err != nil {
		t.Fatalf("negate failed: %v", err)
	}
	after, _ := ctx.State(StateRequest{Velocities: true})

	for i := range before.Velocities {
		if after.Velocities[i] != -before.Velocities[i] {
			t.Fatalf("component %d: expected %v, got %v", i, -before.Velocities[i], after.Velocities[i])
		}
	}
}

func TestKineticEnergy(t *testing.T) {
	f := &Frame{
		Velocities: State{1, 2, 3},
		InvMasses:  []float64{0.5, 0.5, 0.5},
	}
	// 0.5 * 2 * (1 + 4 + 9)
	if got := f.KineticEnergy(); math.Abs(got-14.0) > 1e-12 {
		t.Errorf("expected kinetic energy 14, got %f", got)
	}
}

func TestStateIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, -2.0, 0.0}, true},
		{"nan", State{1.0, math.NaN()}, false},
		{"+inf", State{math.Inf(1)}, false},
		{"-inf", State{math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
