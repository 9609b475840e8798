package system

import "github.com/jchodera/openmmtools/internal/engine"

const argonMass = 39.948

// HarmonicOscillator is a single particle bound to the origin by an
// isotropic spring, U = K/2 |x|^2.
type HarmonicOscillator struct {
	K    float64 // kJ/mol/nm^2
	Mass float64 // amu
}

func NewHarmonicOscillator() *HarmonicOscillator {
	return &HarmonicOscillator{K: 100.0, Mass: argonMass}
}

func (h *HarmonicOscillator) Name() string      { return "HarmonicOscillator" }
func (h *HarmonicOscillator) NumParticles() int { return 1 }

func (h *HarmonicOscillator) Masses() []float64 {
	return []float64{h.Mass}
}

func (h *HarmonicOscillator) InitialPositions() engine.State {
	return engine.State{0, 0, 0}
}

func (h *HarmonicOscillator) Forces(pos engine.State, f engine.State) float64 {
	pe := 0.0
	for k := 0; k < 3; k++ {
		pe += 0.5 * h.K * pos[k] * pos[k]
		f[k] = -h.K * pos[k]
	}
	return pe
}
