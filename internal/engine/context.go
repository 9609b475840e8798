package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrClosed is returned by every operation on a released context.
var ErrClosed = errors.New("engine: context closed")

// Option configures a Context at construction.
type Option func(*Context)

// WithSeed fixes the RNG seed so velocity randomization and stochastic
// integrators are reproducible.
func WithSeed(seed int64) Option {
	return func(c *Context) { c.seed = seed }
}

// Context binds a system to an integrator and owns the dynamical state
// between calls. It is not safe for concurrent use; each check creates and
// closes its own context.
type Context struct {
	sys    System
	integ  Integrator
	frame  *Frame
	seed   int64
	closed bool
}

// New constructs a context, places the system at its reference positions
// with zero velocities and evaluates the initial forces.
func New(sys System, integ Integrator, opts ...Option) (*Context, error) {
	if sys == nil {
		return nil, fmt.Errorf("engine: nil system")
	}
	if integ == nil {
		return nil, fmt.Errorf("engine: nil integrator")
	}
	if integ.Timestep() <= 0 {
		return nil, fmt.Errorf("engine: timestep must be positive, got %g", integ.Timestep())
	}

	c := &Context{sys: sys, integ: integ, seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(c)
	}

	n := sys.NumParticles()
	pos := sys.InitialPositions()
	if len(pos) != 3*n {
		return nil, fmt.Errorf("engine: system %s reports %d particles but %d coordinates", sys.Name(), n, len(pos))
	}

	masses := sys.Masses()
	if len(masses) != n {
		return nil, fmt.Errorf("engine: system %s reports %d particles but %d masses", sys.Name(), n, len(masses))
	}
	invMasses := make([]float64, 3*n)
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("engine: particle %d has non-positive mass %g", i, m)
		}
		invMasses[3*i] = 1 / m
		invMasses[3*i+1] = 1 / m
		invMasses[3*i+2] = 1 / m
	}

	f := &Frame{
		Positions:  pos.Clone(),
		Velocities: make(State, 3*n),
		Forces:     make(State, 3*n),
		InvMasses:  invMasses,
		Rand:       rand.New(rand.NewSource(c.seed)),
	}
	f.Potential = sys.Forces(f.Positions, f.Forces)
	c.frame = f
	return c, nil
}

// SetPositions replaces the stored positions and refreshes forces.
func (c *Context) SetPositions(pos State) error {
	if c.closed {
		return ErrClosed
	}
	if len(pos) != len(c.frame.Positions) {
		return fmt.Errorf("engine: position length %d, want %d", len(pos), len(c.frame.Positions))
	}
	copy(c.frame.Positions, pos)
	c.frame.Potential = c.sys.Forces(c.frame.Positions, c.frame.Forces)
	return nil
}

// RandomizeVelocities draws velocities from the Maxwell-Boltzmann
// distribution at the given temperature.
func (c *Context) RandomizeVelocities(temperature float64) error {
	if c.closed {
		return ErrClosed
	}
	if temperature <= 0 {
		return fmt.Errorf("engine: temperature must be positive, got %g", temperature)
	}
	f := c.frame
	for i := range f.Velocities {
		sigma := math.Sqrt(KB * temperature * f.InvMasses[i])
		f.Velocities[i] = sigma * f.Rand.NormFloat64()
	}
	return nil
}

// Advance takes the requested number of integration steps.
func (c *Context) Advance(steps int) error {
	if c.closed {
		return ErrClosed
	}
	if steps <= 0 {
		return fmt.Errorf("engine: step count must be positive, got %d", steps)
	}
	return c.integ.Advance(c.sys, c.frame, steps)
}

// NegateVelocities flips the sign of every velocity component.
func (c *Context) NegateVelocities() error {
	if c.closed {
		return ErrClosed
	}
	for i, v := range c.frame.Velocities {
		c.frame.Velocities[i] = -v
	}
	return nil
}

// TruncatePrecision reduces the stored positions and velocities to the
// shared reduced-precision representation so later bitwise comparison is
// meaningful.
func (c *Context) TruncatePrecision() error {
	if c.closed {
		return ErrClosed
	}
	TruncateState(c.frame.Positions)
	TruncateState(c.frame.Velocities)
	c.frame.Potential = c.sys.Forces(c.frame.Positions, c.frame.Forces)
	return nil
}

// State reads back the requested parts of the current dynamical state.
// Returned slices are copies; the caller may keep them across steps.
func (c *Context) State(req StateRequest) (*Snapshot, error) {
	if c.closed {
		return nil, ErrClosed
	}
	snap := &Snapshot{Time: c.frame.Time}
	if req.Positions {
		snap.Positions = c.frame.Positions.Clone()
	}
	if req.Velocities {
		snap.Velocities = c.frame.Velocities.Clone()
	}
	if req.Energy {
		snap.PotentialEnergy = c.sys.Forces(c.frame.Positions, c.frame.Forces)
		snap.KineticEnergy = c.frame.KineticEnergy()
	}
	return snap, nil
}

// Close releases the context. It is idempotent; all other operations fail
// with ErrClosed afterwards.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.frame = nil
	return nil
}
