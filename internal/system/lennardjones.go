package system

import (
	"math"

	"github.com/jchodera/openmmtools/internal/engine"
)

// LennardJonesCluster is a cubic lattice of argon-like particles at the
// pair-potential minimum spacing, held together by a weak harmonic restraint
// toward the origin so the cluster cannot evaporate during a short run.
type LennardJonesCluster struct {
	Side    int     // particles per lattice edge
	Sigma   float64 // nm
	Epsilon float64 // kJ/mol
	K       float64 // restraint spring constant, kJ/mol/nm^2
	Mass    float64 // amu
}

func NewLennardJonesCluster() *LennardJonesCluster {
	return &LennardJonesCluster{
		Side:    2,
		Sigma:   0.3405,
		Epsilon: 0.996,
		K:       1.0,
		Mass:    argonMass,
	}
}

func (c *LennardJonesCluster) Name() string      { return "LennardJonesCluster" }
func (c *LennardJonesCluster) NumParticles() int { return c.Side * c.Side * c.Side }

func (c *LennardJonesCluster) Masses() []float64 {
	m := make([]float64, c.NumParticles())
	for i := range m {
		m[i] = c.Mass
	}
	return m
}

func (c *LennardJonesCluster) InitialPositions() engine.State {
	// r_min = 2^(1/6) sigma puts every nearest-neighbor pair at the
	// potential minimum.
	return cubicLattice(c.Side, math.Pow(2, 1.0/6.0)*c.Sigma)
}

func (c *LennardJonesCluster) Forces(pos engine.State, f engine.State) float64 {
	f.Zero()
	n := c.NumParticles()
	pe := 0.0

	for i := 0; i < n; i++ {
		// Harmonic restraint to the origin.
		for k := 0; k < 3; k++ {
			x := pos[3*i+k]
			pe += 0.5 * c.K * x * x
			f[3*i+k] -= c.K * x
		}

		for j := i + 1; j < n; j++ {
			dx := pos[3*i] - pos[3*j]
			dy := pos[3*i+1] - pos[3*j+1]
			dz := pos[3*i+2] - pos[3*j+2]
			r2 := dx*dx + dy*dy + dz*dz

			sr2 := c.Sigma * c.Sigma / r2
			sr6 := sr2 * sr2 * sr2
			sr12 := sr6 * sr6

			pe += 4 * c.Epsilon * (sr12 - sr6)

			// dU/dr * 1/r, applied along the separation vector.
			fScale := 24 * c.Epsilon * (2*sr12 - sr6) / r2
			f[3*i] += fScale * dx
			f[3*i+1] += fScale * dy
			f[3*i+2] += fScale * dz
			f[3*j] -= fScale * dx
			f[3*j+1] -= fScale * dy
			f[3*j+2] -= fScale * dz
		}
	}
	return pe
}
