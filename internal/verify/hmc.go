package verify

import (
	"fmt"

	"github.com/jchodera/openmmtools/internal/engine"
	"github.com/jchodera/openmmtools/internal/integrator"
)

// AcceptanceOptions parameterizes an acceptance-bookkeeping check. Zero
// values fall back to 25 moves of 0.05 fs at 300 K with 10 inner steps.
type AcceptanceOptions struct {
	Moves        int
	Timestep     float64 // ps
	Temperature  float64 // K
	StepsPerMove int
	Seed         int64
}

func (o AcceptanceOptions) withDefaults() AcceptanceOptions {
	if o.Moves == 0 {
		o.Moves = 25
	}
	if o.Timestep == 0 {
		o.Timestep = 0.05 * engine.Femtosecond
	}
	if o.Temperature == 0 {
		o.Temperature = 300
	}
	if o.StepsPerMove == 0 {
		o.StepsPerMove = 10
	}
	return o
}

// CheckAcceptance runs a hybrid Monte Carlo integrator for a fixed number of
// trial moves on a system where every proposal is energy-neutral and
// verifies the bookkeeping: every trial counted, every trial accepted,
// acceptance rate exactly one.
func CheckAcceptance(sys engine.System, stats integrator.MoveStats, integ engine.Integrator, opt AcceptanceOptions) error {
	opt = opt.withDefaults()

	ctx, err := engine.New(sys, integ, engine.WithSeed(opt.Seed))
	if err != nil {
		return err
	}
	defer ctx.Close()

	if err := ctx.RandomizeVelocities(opt.Temperature); err != nil {
		return err
	}
	if err := ctx.Advance(opt.Moves); err != nil {
		return err
	}

	if stats.NTrials() != opt.Moves {
		return fmt.Errorf("expected %d trials on %s, got %d", opt.Moves, sys.Name(), stats.NTrials())
	}
	if stats.NAccepted() != opt.Moves {
		return fmt.Errorf("expected %d accepted moves on %s, got %d", opt.Moves, sys.Name(), stats.NAccepted())
	}
	if rate := stats.AcceptanceRate(); rate != 1.0 {
		return fmt.Errorf("expected acceptance rate 1.0 on %s, got %g", sys.Name(), rate)
	}
	return nil
}

// CheckHMCAcceptance is CheckAcceptance specialized to the HMC integrator.
func CheckHMCAcceptance(sys engine.System, opt AcceptanceOptions) error {
	opt = opt.withDefaults()
	hmc := integrator.NewHMC(opt.Timestep, opt.Temperature, opt.StepsPerMove)
	return CheckAcceptance(sys, hmc, hmc, opt)
}

// CheckGHMCAcceptance is CheckAcceptance specialized to the GHMC integrator.
func CheckGHMCAcceptance(sys engine.System, opt AcceptanceOptions) error {
	opt = opt.withDefaults()
	ghmc := integrator.NewGHMC(opt.Timestep, opt.Temperature, integrator.DefaultMixing)
	return CheckAcceptance(sys, ghmc, ghmc, opt)
}
