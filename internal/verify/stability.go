package verify

import (
	"math"

	"github.com/jchodera/openmmtools/internal/engine"
	"github.com/jchodera/openmmtools/internal/integrator"
)

// StabilityOptions parameterizes a stability check. Zero values fall back to
// the harness defaults: 100 steps of 1 fs at 300 K, with no energy ceiling
// beyond finiteness.
type StabilityOptions struct {
	Steps       int
	Timestep    float64 // ps
	Temperature float64 // K
	MaxEnergy   float64 // kJ/mol; 0 disables the bound
	Seed        int64
}

func (o StabilityOptions) withDefaults() StabilityOptions {
	if o.Steps == 0 {
		o.Steps = 100
	}
	if o.Timestep == 0 {
		o.Timestep = engine.Femtosecond
	}
	if o.Temperature == 0 {
		o.Temperature = 300
	}
	return o
}

// Outcome carries the measurements a check produced alongside its verdict.
type Outcome struct {
	// PotentialTrace holds the potential energy after each step of a
	// stability trajectory.
	PotentialTrace []float64
	FinalPotential float64
}

// CheckStability builds a simulation of the given system, randomizes
// velocities to the target temperature, advances a fixed number of steps
// and fails with a *DivergenceError if the potential energy stops being a
// finite, acceptable number. The trajectory's potential trace is returned
// for inspection even on failure.
func CheckStability(sys engine.System, entry integrator.Entry, opt StabilityOptions) (*Outcome, error) {
	opt = opt.withDefaults()

	ctx, err := engine.New(sys, entry.New(opt.Timestep), engine.WithSeed(opt.Seed))
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	if err := ctx.RandomizeVelocities(opt.Temperature); err != nil {
		return nil, err
	}

	out := &Outcome{PotentialTrace: make([]float64, 0, opt.Steps)}
	for step := 1; step <= opt.Steps; step++ {
		if err := ctx.Advance(1); err != nil {
			return out, err
		}
		snap, err := ctx.State(engine.StateRequest{Energy: true})
		if err != nil {
			return out, err
		}
		out.PotentialTrace = append(out.PotentialTrace, snap.PotentialEnergy)
		out.FinalPotential = snap.PotentialEnergy

		if math.IsNaN(snap.PotentialEnergy) || math.IsInf(snap.PotentialEnergy, 0) {
			return out, &DivergenceError{
				Integrator: entry.Name,
				System:     sys.Name(),
				Potential:  snap.PotentialEnergy,
				Steps:      step,
			}
		}
	}

	if opt.MaxEnergy > 0 && out.FinalPotential > opt.MaxEnergy {
		return out, &DivergenceError{
			Integrator: entry.Name,
			System:     sys.Name(),
			Potential:  out.FinalPotential,
			Steps:      opt.Steps,
		}
	}
	return out, nil
}
