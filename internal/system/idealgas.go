package system

import "github.com/jchodera/openmmtools/internal/engine"

// IdealGas is a set of non-interacting particles on a cubic lattice. The
// potential is identically zero, which makes every Monte Carlo trial move
// energy-neutral and therefore always accepted.
type IdealGas struct {
	Side    int     // particles per lattice edge
	Spacing float64 // nm
	Mass    float64 // amu
}

func NewIdealGas() *IdealGas {
	return &IdealGas{Side: 2, Spacing: 1.0, Mass: argonMass}
}

func (g *IdealGas) Name() string      { return "IdealGas" }
func (g *IdealGas) NumParticles() int { return g.Side * g.Side * g.Side }

func (g *IdealGas) Masses() []float64 {
	m := make([]float64, g.NumParticles())
	for i := range m {
		m[i] = g.Mass
	}
	return m
}

func (g *IdealGas) InitialPositions() engine.State {
	return cubicLattice(g.Side, g.Spacing)
}

func (g *IdealGas) Forces(pos engine.State, f engine.State) float64 {
	f.Zero()
	return 0
}

// cubicLattice places side^3 points on a cubic grid centered on the origin.
func cubicLattice(side int, spacing float64) engine.State {
	pos := make(engine.State, 0, 3*side*side*side)
	offset := spacing * float64(side-1) / 2
	for ix := 0; ix < side; ix++ {
		for iy := 0; iy < side; iy++ {
			for iz := 0; iz < side; iz++ {
				pos = append(pos,
					spacing*float64(ix)-offset,
					spacing*float64(iy)-offset,
					spacing*float64(iz)-offset,
				)
			}
		}
	}
	return pos
}
