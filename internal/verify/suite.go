package verify

import (
	"github.com/jchodera/openmmtools/internal/config"
	"github.com/jchodera/openmmtools/internal/engine"
	"github.com/jchodera/openmmtools/internal/integrator"
	"github.com/jchodera/openmmtools/internal/system"
)

// Check is one independently runnable verification: a human-readable label
// and a closure producing the verdict. A failed check reports its own label;
// there is no shared state between checks.
type Check struct {
	Label string
	Run   func() (*Outcome, error)
}

// StabilityChecks enumerates one stability check per (integrator, system)
// pair admitted by the config filters.
func StabilityChecks(cfg *config.Config) []Check {
	var checks []Check
	for _, sysEntry := range filteredSystems(cfg) {
		for _, intEntry := range filteredIntegrators(cfg) {
			sysEntry, intEntry := sysEntry, intEntry
			checks = append(checks, Check{
				Label: "stability/" + intEntry.Name + "/" + sysEntry.Name,
				Run: func() (*Outcome, error) {
					return CheckStability(sysEntry.New(), intEntry, StabilityOptions{
						Steps:       cfg.Stability.Steps,
						Timestep:    cfg.Stability.TimestepFs * engine.Femtosecond,
						Temperature: cfg.Temperature,
						MaxEnergy:   cfg.Stability.MaxEnergy,
						Seed:        cfg.Seed,
					})
				},
			})
		}
	}
	return checks
}

// ReversibilityChecks enumerates one bitwise round-trip check per system
// admitted by the config filters.
func ReversibilityChecks(cfg *config.Config) []Check {
	var checks []Check
	for _, sysEntry := range filteredSystems(cfg) {
		sysEntry := sysEntry
		checks = append(checks, Check{
			Label: "reversibility/" + sysEntry.Name,
			Run: func() (*Outcome, error) {
				return nil, CheckReversibility(sysEntry.New(), ReversibilityOptions{
					Steps:       cfg.Reversibility.Steps,
					Timestep:    cfg.Reversibility.TimestepFs * engine.Femtosecond,
					Temperature: cfg.Temperature,
					Seed:        cfg.Seed,
				})
			},
		})
	}
	return checks
}

// AcceptanceChecks enumerates the Monte Carlo bookkeeping checks. They run
// on the ideal gas, where every trial move is energy-neutral and must be
// accepted.
func AcceptanceChecks(cfg *config.Config) []Check {
	opt := AcceptanceOptions{
		Moves:        cfg.HMC.Moves,
		Timestep:     cfg.HMC.TimestepFs * engine.Femtosecond,
		Temperature:  cfg.Temperature,
		StepsPerMove: cfg.HMC.StepsPerMove,
		Seed:         cfg.Seed,
	}
	return []Check{
		{
			Label: "acceptance/HMCIntegrator/IdealGas",
			Run: func() (*Outcome, error) {
				return nil, CheckHMCAcceptance(system.NewIdealGas(), opt)
			},
		},
		{
			Label: "acceptance/GHMCIntegrator/IdealGas",
			Run: func() (*Outcome, error) {
				return nil, CheckGHMCAcceptance(system.NewIdealGas(), opt)
			},
		},
	}
}

// Suite produces the full ordered sequence of checks for a config.
func Suite(cfg *config.Config) []Check {
	var checks []Check
	checks = append(checks, StabilityChecks(cfg)...)
	checks = append(checks, ReversibilityChecks(cfg)...)
	checks = append(checks, AcceptanceChecks(cfg)...)
	return checks
}

func filteredSystems(cfg *config.Config) []system.Entry {
	entries := system.Registry()
	if len(cfg.Systems) == 0 {
		return entries
	}
	var kept []system.Entry
	for _, e := range entries {
		if containsName(cfg.Systems, e.Name) {
			kept = append(kept, e)
		}
	}
	return kept
}

func filteredIntegrators(cfg *config.Config) []integrator.Entry {
	entries := integrator.Registry()
	if len(cfg.Integrators) == 0 {
		return entries
	}
	var kept []integrator.Entry
	for _, e := range entries {
		if containsName(cfg.Integrators, e.Name) {
			kept = append(kept, e)
		}
	}
	return kept
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
