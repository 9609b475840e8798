package integrator

import "github.com/jchodera/openmmtools/internal/engine"

// BitwiseReversibleVelocityVerlet is velocity Verlet with every velocity and
// position increment truncated onto the fixed-point grid of
// [engine.Truncate]. When the stored state has been truncated as well, every
// addition in the update is exact in float64, so integrating forward,
// negating velocities and integrating the same number of steps again
// reproduces the original positions bit-for-bit and the original velocities
// negated.
type BitwiseReversibleVelocityVerlet struct {
	dt float64
}

func NewBitwiseReversibleVelocityVerlet(dt float64) *BitwiseReversibleVelocityVerlet {
	return &BitwiseReversibleVelocityVerlet{dt: dt}
}

func (b *BitwiseReversibleVelocityVerlet) Timestep() float64 { return b.dt }

func (b *BitwiseReversibleVelocityVerlet) Advance(sys engine.System, f *engine.Frame, steps int) error {
	halfDt := 0.5 * b.dt
	f.Potential = sys.Forces(f.Positions, f.Forces)
	for s := 0; s < steps; s++ {
		for i := range f.Velocities {
			f.Velocities[i] += engine.Truncate(halfDt * f.Forces[i] * f.InvMasses[i])
		}
		for i := range f.Positions {
			f.Positions[i] += engine.Truncate(b.dt * f.Velocities[i])
		}
		f.Potential = sys.Forces(f.Positions, f.Forces)
		for i := range f.Velocities {
			f.Velocities[i] += engine.Truncate(halfDt * f.Forces[i] * f.InvMasses[i])
		}
		f.Time += b.dt
	}
	return nil
}

// TruncatePrecision reduces the frame's stored state to the representation
// the integrator computes in.
func (b *BitwiseReversibleVelocityVerlet) TruncatePrecision(f *engine.Frame) {
	engine.TruncateState(f.Positions)
	engine.TruncateState(f.Velocities)
}
