package integrator

import (
	"math"

	"github.com/jchodera/openmmtools/internal/engine"
)

// AndersenVelocityVerlet couples velocity Verlet to an Andersen thermostat:
// after each step every particle has probability rate*dt of a collision that
// redraws its velocity from the Maxwell-Boltzmann distribution.
type AndersenVelocityVerlet struct {
	dt          float64
	temperature float64
	rate        float64 // collision rate, 1/ps
}

func NewAndersenVelocityVerlet(dt, temperature, rate float64) *AndersenVelocityVerlet {
	return &AndersenVelocityVerlet{dt: dt, temperature: temperature, rate: rate}
}

func (a *AndersenVelocityVerlet) Timestep() float64 { return a.dt }

func (a *AndersenVelocityVerlet) Advance(sys engine.System, f *engine.Frame, steps int) error {
	pCollide := a.rate * a.dt
	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		velocityVerletStep(sys, f, a.dt)
		for p := 0; p < len(f.Velocities)/3; p++ {
			if f.Rand.Float64() >= pCollide {
				continue
			}
			for k := 0; k < 3; k++ {
				i := 3*p + k
				sigma := math.Sqrt(engine.KB * a.temperature * f.InvMasses[i])
				f.Velocities[i] = sigma * f.Rand.NormFloat64()
			}
		}
	}
	return nil
}
