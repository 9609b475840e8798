package integrator

import (
	"math"

	"github.com/jchodera/openmmtools/internal/engine"
)

// MoveStats is the acceptance bookkeeping exposed by the Monte Carlo hybrid
// integrators.
type MoveStats interface {
	NAccepted() int
	NTrials() int
	AcceptanceRate() float64
}

// mcStats tracks trial moves for the HMC family.
type mcStats struct {
	accepted int
	trials   int
}

func (s *mcStats) NAccepted() int { return s.accepted }
func (s *mcStats) NTrials() int   { return s.trials }

func (s *mcStats) AcceptanceRate() float64 {
	if s.trials == 0 {
		return 0
	}
	return float64(s.accepted) / float64(s.trials)
}

// HMC is a hybrid Monte Carlo integrator: each step draws fresh
// Maxwell-Boltzmann velocities, proposes a short velocity Verlet trajectory
// and accepts or rejects it with the Metropolis criterion on the
// total-energy change. Each Advance step is one trial move.
type HMC struct {
	mcStats
	dt           float64
	temperature  float64
	stepsPerMove int

	xOld engine.State
}

func NewHMC(dt, temperature float64, stepsPerMove int) *HMC {
	return &HMC{dt: dt, temperature: temperature, stepsPerMove: stepsPerMove}
}

func (h *HMC) Timestep() float64 { return h.dt }

func (h *HMC) Advance(sys engine.System, f *engine.Frame, steps int) error {
	if h.xOld == nil || len(h.xOld) != len(f.Positions) {
		h.xOld = make(engine.State, len(f.Positions))
	}

	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		drawVelocities(f, h.temperature)
		e0 := f.Potential + f.KineticEnergy()
		copy(h.xOld, f.Positions)

		for i := 0; i < h.stepsPerMove; i++ {
			velocityVerletStep(sys, f, h.dt)
		}

		e1 := f.Potential + f.KineticEnergy()
		h.trials++
		if metropolisAccept(f, e1-e0, h.temperature) {
			h.accepted++
		} else {
			copy(f.Positions, h.xOld)
			f.Potential = sys.Forces(f.Positions, f.Forces)
		}
	}
	return nil
}

// GHMC is generalized hybrid Monte Carlo: velocities are only partially
// refreshed between moves and rejected moves flip the momentum, preserving
// the target distribution while keeping trajectories correlated.
type GHMC struct {
	mcStats
	dt          float64
	temperature float64
	mixing      float64 // fraction of the old velocity retained per move

	xOld engine.State
	vOld engine.State
}

func NewGHMC(dt, temperature, mixing float64) *GHMC {
	return &GHMC{dt: dt, temperature: temperature, mixing: mixing}
}

func (g *GHMC) Timestep() float64 { return g.dt }

func (g *GHMC) Advance(sys engine.System, f *engine.Frame, steps int) error {
	if g.xOld == nil || len(g.xOld) != len(f.Positions) {
		g.xOld = make(engine.State, len(f.Positions))
		g.vOld = make(engine.State, len(f.Velocities))
	}
	noise := math.Sqrt(1 - g.mixing*g.mixing)

	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		for i := range f.Velocities {
			sigma := math.Sqrt(engine.KB * g.temperature * f.InvMasses[i])
			f.Velocities[i] = g.mixing*f.Velocities[i] + noise*sigma*f.Rand.NormFloat64()
		}
		e0 := f.Potential + f.KineticEnergy()
		copy(g.xOld, f.Positions)
		copy(g.vOld, f.Velocities)

		velocityVerletStep(sys, f, g.dt)

		e1 := f.Potential + f.KineticEnergy()
		g.trials++
		if metropolisAccept(f, e1-e0, g.temperature) {
			g.accepted++
		} else {
			// Flip the pre-trajectory momentum, discarding the proposal
			// velocities along with the proposal positions.
			copy(f.Positions, g.xOld)
			f.Potential = sys.Forces(f.Positions, f.Forces)
			for i := range f.Velocities {
				f.Velocities[i] = -g.vOld[i]
			}
		}
	}
	return nil
}

func drawVelocities(f *engine.Frame, temperature float64) {
	for i := range f.Velocities {
		sigma := math.Sqrt(engine.KB * temperature * f.InvMasses[i])
		f.Velocities[i] = sigma * f.Rand.NormFloat64()
	}
}

// metropolisAccept applies the Metropolis criterion to a total-energy
// change. Non-positive changes are accepted without consuming randomness so
// an energy-neutral proposal is always accepted.
func metropolisAccept(f *engine.Frame, deltaE, temperature float64) bool {
	if deltaE <= 0 {
		return true
	}
	return f.Rand.Float64() < math.Exp(-deltaE/(engine.KB*temperature))
}
