package integrator

import (
	"math"

	"github.com/jchodera/openmmtools/internal/engine"
)

// Langevin is a BAOAB-splitting Langevin integrator: half kick, half drift,
// Ornstein-Uhlenbeck velocity update, half drift, half kick.
type Langevin struct {
	dt          float64
	temperature float64
	friction    float64 // 1/ps
}

func NewLangevin(dt, temperature, friction float64) *Langevin {
	return &Langevin{dt: dt, temperature: temperature, friction: friction}
}

func (l *Langevin) Timestep() float64 { return l.dt }

func (l *Langevin) Advance(sys engine.System, f *engine.Frame, steps int) error {
	halfDt := 0.5 * l.dt
	c1 := math.Exp(-l.friction * l.dt)
	c2 := math.Sqrt(1 - c1*c1)

	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		for i := range f.Velocities {
			f.Velocities[i] += halfDt * f.Forces[i] * f.InvMasses[i]
		}
		for i := range f.Positions {
			f.Positions[i] += halfDt * f.Velocities[i]
		}
		for i := range f.Velocities {
			sigma := math.Sqrt(engine.KB * l.temperature * f.InvMasses[i])
			f.Velocities[i] = c1*f.Velocities[i] + c2*sigma*f.Rand.NormFloat64()
		}
		for i := range f.Positions {
			f.Positions[i] += halfDt * f.Velocities[i]
		}
		f.Potential = sys.Forces(f.Positions, f.Forces)
		for i := range f.Velocities {
			f.Velocities[i] += halfDt * f.Forces[i] * f.InvMasses[i]
		}
		f.Time += l.dt
	}
	return nil
}
