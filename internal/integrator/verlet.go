package integrator

import "github.com/jchodera/openmmtools/internal/engine"

// VelocityVerlet is the standard symplectic kick-drift-kick scheme.
type VelocityVerlet struct {
	dt float64
}

func NewVelocityVerlet(dt float64) *VelocityVerlet {
	return &VelocityVerlet{dt: dt}
}

func (v *VelocityVerlet) Timestep() float64 { return v.dt }

func (v *VelocityVerlet) Advance(sys engine.System, f *engine.Frame, steps int) error {
	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		velocityVerletStep(sys, f, v.dt)
	}
	return nil
}

// velocityVerletStep advances one kick-drift-kick step, leaving forces and
// potential consistent with the new positions. Shared with the Monte Carlo
// integrators, which propose trial moves with the same scheme.
func velocityVerletStep(sys engine.System, f *engine.Frame, dt float64) {
	halfDt := 0.5 * dt
	for i := range f.Velocities {
		f.Velocities[i] += halfDt * f.Forces[i] * f.InvMasses[i]
	}
	for i := range f.Positions {
		f.Positions[i] += dt * f.Velocities[i]
	}
	f.Potential = sys.Forces(f.Positions, f.Forces)
	for i := range f.Velocities {
		f.Velocities[i] += halfDt * f.Forces[i] * f.InvMasses[i]
	}
	f.Time += dt
}

// Leapfrog advances velocities a full step with the current forces, then
// drifts positions with the updated velocities.
type Leapfrog struct {
	dt float64
}

func NewLeapfrog(dt float64) *Leapfrog {
	return &Leapfrog{dt: dt}
}

func (l *Leapfrog) Timestep() float64 { return l.dt }

func (l *Leapfrog) Advance(sys engine.System, f *engine.Frame, steps int) error {
	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		for i := range f.Velocities {
			f.Velocities[i] += l.dt * f.Forces[i] * f.InvMasses[i]
		}
		for i := range f.Positions {
			f.Positions[i] += l.dt * f.Velocities[i]
		}
		f.Potential = sys.Forces(f.Positions, f.Forces)
		f.Time += l.dt
	}
	return nil
}
