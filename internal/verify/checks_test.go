package verify_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jchodera/openmmtools/internal/config"
	"github.com/jchodera/openmmtools/internal/engine"
	"github.com/jchodera/openmmtools/internal/integrator"
	"github.com/jchodera/openmmtools/internal/system"
	"github.com/jchodera/openmmtools/internal/verify"
)

var _ = Describe("Stability", func() {
	opt := verify.StabilityOptions{Steps: 100, Seed: 314}

	for _, intEntry := range integrator.Registry() {
		for _, sysEntry := range system.Registry() {
			intEntry, sysEntry := intEntry, sysEntry

			It("keeps "+intEntry.Name+" finite on "+sysEntry.Name, func() {
				out, err := verify.CheckStability(sysEntry.New(), intEntry, opt)
				Expect(err).NotTo(HaveOccurred())
				Expect(out.PotentialTrace).To(HaveLen(opt.Steps))
				Expect(out.FinalPotential).To(Equal(out.PotentialTrace[opt.Steps-1]))
			})
		}
	}

	It("returns the partial trace alongside a divergence failure", func() {
		entry, err := integrator.Lookup("VelocityVerletIntegrator")
		Expect(err).NotTo(HaveOccurred())

		// A tiny ceiling turns an otherwise healthy trajectory into a
		// reported divergence so the error path is exercised.
		out, err := verify.CheckStability(system.NewLennardJonesCluster(), entry, verify.StabilityOptions{
			Steps:     10,
			MaxEnergy: 1e-12,
			Seed:      314,
		})
		Expect(out).NotTo(BeNil())
		Expect(out.PotentialTrace).To(HaveLen(10))

		var dive *verify.DivergenceError
		Expect(errors.As(err, &dive)).To(BeTrue())
		Expect(dive.Integrator).To(Equal("VelocityVerletIntegrator"))
		Expect(dive.System).To(Equal("LennardJonesCluster"))
		Expect(dive.Steps).To(Equal(10))
	})
})

var _ = Describe("Reversibility", func() {
	for _, sysEntry := range system.Registry() {
		sysEntry := sysEntry

		It("round-trips "+sysEntry.Name+" bit-for-bit", func() {
			err := verify.CheckReversibility(sysEntry.New(), verify.ReversibilityOptions{Seed: 159})
			Expect(err).NotTo(HaveOccurred())
		})
	}

	It("survives a multi-step round trip", func() {
		err := verify.CheckReversibility(system.NewDiatomicFluid(), verify.ReversibilityOptions{
			Steps: 25,
			Seed:  159,
		})
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Acceptance", func() {
	It("accepts all 25 HMC moves on the ideal gas", func() {
		err := verify.CheckHMCAcceptance(system.NewIdealGas(), verify.AcceptanceOptions{Seed: 265})
		Expect(err).NotTo(HaveOccurred())
	})

	It("accepts all 25 GHMC moves on the ideal gas", func() {
		err := verify.CheckGHMCAcceptance(system.NewIdealGas(), verify.AcceptanceOptions{Seed: 265})
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports a bookkeeping failure when trials go missing", func() {
		hmc := integrator.NewHMC(0.05*engine.Femtosecond, 300, 10)
		// Advance never runs here, so the stats stay at zero trials and the
		// check must flag the shortfall.
		err := verify.CheckAcceptance(system.NewIdealGas(), hmc, integrator.NewVelocityVerlet(0.05*engine.Femtosecond), verify.AcceptanceOptions{Seed: 265})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("trials"))
	})
})

var _ = Describe("Suite", func() {
	It("enumerates every check with a unique label", func() {
		cfg := config.DefaultConfig()
		checks := verify.Suite(cfg)

		nStability := len(integrator.Registry()) * len(system.Registry())
		nReversibility := len(system.Registry())
		Expect(checks).To(HaveLen(nStability + nReversibility + 2))

		seen := map[string]bool{}
		for _, c := range checks {
			Expect(c.Label).NotTo(BeEmpty())
			Expect(c.Run).NotTo(BeNil())
			Expect(seen).NotTo(HaveKey(c.Label))
			seen[c.Label] = true
		}
	})

	It("honors system and integrator filters", func() {
		cfg := config.DefaultConfig()
		cfg.Systems = []string{"IdealGas"}
		cfg.Integrators = []string{"VelocityVerletIntegrator", "LangevinIntegrator"}

		checks := verify.StabilityChecks(cfg)
		Expect(checks).To(HaveLen(2))
		Expect(checks[0].Label).To(Equal("stability/VelocityVerletIntegrator/IdealGas"))
		Expect(checks[1].Label).To(Equal("stability/LangevinIntegrator/IdealGas"))

		Expect(verify.ReversibilityChecks(cfg)).To(HaveLen(1))
	})

	It("runs end to end under the quick preset", func() {
		cfg := config.GetPreset("quick")
		Expect(cfg).NotTo(BeNil())

		for _, check := range verify.Suite(cfg) {
			_, err := check.Run()
			Expect(err).NotTo(HaveOccurred(), "check %s failed", check.Label)
		}
	})
})
