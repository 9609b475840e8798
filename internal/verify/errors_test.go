package verify_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jchodera/openmmtools/internal/verify"
)

var _ = Describe("BitPattern", func() {
	It("splits the word into sign, exponent and mantissa", func() {
		// 1.0 is 0x3FF0000000000000.
		want := "0 01111111111 " + strings.Repeat("0", 52)
		Expect(verify.BitPattern(1.0)).To(Equal(want))
	})

	It("shows the sign bit of a negative value", func() {
		Expect(verify.BitPattern(-1.0)).To(HavePrefix("1 "))
		Expect(verify.BitPattern(1.0)).To(HavePrefix("0 "))
	})
})

var _ = Describe("ReversibilityError", func() {
	It("dumps the bit patterns of every mismatching particle", func() {
		err := &verify.ReversibilityError{
			System: "IdealGas",
			Steps:  1,
			Mismatches: []verify.Mismatch{
				{
					Particle:        3,
					InitialPosition: [3]float64{1, 0, 0},
					FinalPosition:   [3]float64{-1, 0, 0},
				},
			},
		}
		msg := err.Error()
		Expect(msg).To(ContainSubstring("IdealGas"))
		Expect(msg).To(ContainSubstring("initial positions"))
		Expect(msg).To(ContainSubstring("final positions"))
		Expect(msg).To(ContainSubstring(verify.BitPattern(1.0)))
		Expect(msg).To(ContainSubstring(verify.BitPattern(-1.0)))
	})
})

var _ = Describe("DivergenceError", func() {
	It("names the integrator, system and step count", func() {
		err := &verify.DivergenceError{
			Integrator: "LangevinIntegrator",
			System:     "DiatomicFluid",
			Potential:  0,
			Steps:      42,
		}
		Expect(err.Error()).To(ContainSubstring("LangevinIntegrator"))
		Expect(err.Error()).To(ContainSubstring("DiatomicFluid"))
		Expect(err.Error()).To(ContainSubstring("42"))
	})
})
