package system

import (
	"math"

	"github.com/jchodera/openmmtools/internal/engine"
)

// DiatomicFluid is a small box of harmonically bonded atom pairs. Atoms on
// different molecules interact through a Lennard-Jones potential; bonded
// atoms only through the bond spring.
type DiatomicFluid struct {
	Molecules  int
	BondK      float64 // kJ/mol/nm^2
	BondLength float64 // nm
	Sigma      float64 // nm
	Epsilon    float64 // kJ/mol
	Spacing    float64 // molecule lattice spacing, nm
	Mass       float64 // amu
}

func NewDiatomicFluid() *DiatomicFluid {
	return &DiatomicFluid{
		Molecules:  4,
		BondK:      250000.0,
		BondLength: 0.155,
		Sigma:      0.3405,
		Epsilon:    0.996,
		Spacing:    0.7,
		Mass:       argonMass,
	}
}

func (d *DiatomicFluid) Name() string      { return "DiatomicFluid" }
func (d *DiatomicFluid) NumParticles() int { return 2 * d.Molecules }

func (d *DiatomicFluid) Masses() []float64 {
	m := make([]float64, d.NumParticles())
	for i := range m {
		m[i] = d.Mass
	}
	return m
}

func (d *DiatomicFluid) InitialPositions() engine.State {
	pos := make(engine.State, 0, 6*d.Molecules)
	offset := d.Spacing * float64(d.Molecules-1) / 2
	for i := 0; i < d.Molecules; i++ {
		// Molecules along a line, bonds aligned with z.
		cx := d.Spacing*float64(i) - offset
		pos = append(pos, cx, 0, -d.BondLength/2)
		pos = append(pos, cx, 0, d.BondLength/2)
	}
	return pos
}

func (d *DiatomicFluid) Forces(pos engine.State, f engine.State) float64 {
	f.Zero()
	n := d.NumParticles()
	pe := 0.0

	// Bond springs.
	for m := 0; m < d.Molecules; m++ {
		i, j := 2*m, 2*m+1
		dx := pos[3*i] - pos[3*j]
		dy := pos[3*i+1] - pos[3*j+1]
		dz := pos[3*i+2] - pos[3*j+2]
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)

		stretch := r - d.BondLength
		pe += 0.5 * d.BondK * stretch * stretch

		fScale := -d.BondK * stretch / r
		f[3*i] += fScale * dx
		f[3*i+1] += fScale * dy
		f[3*i+2] += fScale * dz
		f[3*j] -= fScale * dx
		f[3*j+1] -= fScale * dy
		f[3*j+2] -= fScale * dz
	}

	// Lennard-Jones between atoms of different molecules.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if i/2 == j/2 {
				continue
			}
			dx := pos[3*i] - pos[3*j]
			dy := pos[3*i+1] - pos[3*j+1]
			dz := pos[3*i+2] - pos[3*j+2]
			r2 := dx*dx + dy*dy + dz*dz

			sr2 := d.Sigma * d.Sigma / r2
			sr6 := sr2 * sr2 * sr2
			sr12 := sr6 * sr6

			pe += 4 * d.Epsilon * (sr12 - sr6)

			fScale := 24 * d.Epsilon * (2*sr12 - sr6) / r2
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
