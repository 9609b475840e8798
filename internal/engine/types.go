package engine

import (
	"math"
	"math/rand"
)

// KB is the molar Boltzmann constant in kJ/(mol K). All quantities use the
// MD unit system: nanometers, picoseconds, atomic mass units, kJ/mol, kelvin.
const KB = 0.008314462618

// Femtosecond expressed in picoseconds, the internal time unit.
const Femtosecond = 1e-3

// State is a flat 3N coordinate buffer laid out x0 y0 z0 x1 y1 z1 ...
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsFinite reports whether every component is a well-defined number.
func (s State) IsFinite() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// System defines a test system: topology, masses, reference positions and a
// force field. Forces fills f with the force on each coordinate and returns
// the potential energy; it must be the negative gradient of that potential
// and deterministic in the positions.
type System interface {
	Name() string
	NumParticles() int
	Masses() []float64
	InitialPositions() State
	Forces(pos State, f State) float64
}

// Integrator advances a Frame through discrete timesteps.
type Integrator interface {
	Timestep() float64
	Advance(sys System, f *Frame, steps int) error
}

// Frame is the engine-owned dynamical state shared with the integrator.
// Forces and Potential are kept consistent with Positions between steps.
type Frame struct {
	Positions  State
	Velocities State
	Forces     State
	Potential  float64
	Time       float64
	InvMasses  []float64
	Rand       *rand.Rand
}

// KineticEnergy computes 0.5 * sum(m v^2) over all coordinates.
func (f *Frame) KineticEnergy() float64 {
	ke := 0.0
	for i, v := range f.Velocities {
		ke += 0.5 * v * v / f.InvMasses[i]
	}
	return ke
}

// StateRequest selects which fields a Snapshot should carry.
type StateRequest struct {
	Positions  bool
	Velocities bool
	Energy     bool
}

// Snapshot is a read-back of the current dynamical state. Fields not
// requested are left zero.
type Snapshot struct {
	Positions       State
	Velocities      State
	PotentialEnergy float64
	KineticEnergy   float64
	Time            float64
}
