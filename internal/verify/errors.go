package verify

import (
	"fmt"
	"math"
	"strings"
)

// DivergenceError reports a trajectory whose tracked potential energy left
// the set of finite, acceptable values.
type DivergenceError struct {
	Integrator string
	System     string
	Potential  float64
	Steps      int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("potential energy for integrator %s on %s became %v after %d steps",
		e.Integrator, e.System, e.Potential, e.Steps)
}

// Mismatch records one particle whose positions failed the bitwise round
// trip, with the velocities alongside for diagnosis.
type Mismatch struct {
	Particle        int
	InitialPosition [3]float64
	FinalPosition   [3]float64
	InitialVelocity [3]float64
	FinalVelocity   [3]float64
}

// ReversibilityError reports particles whose positions differ bitwise after
// forward/backward integration. The message dumps the IEEE-754 bit patterns
// of every mismatching particle so the failing bit is visible directly.
type ReversibilityError struct {
	System     string
	Steps      int
	Mismatches []Mismatch
}

func (e *ReversibilityError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "final positions on %s do not match initial positions after %d steps of forward/backward integration\n\n",
		e.System, e.Steps)
	for _, m := range e.Mismatches {
		writeTriple(&b, m.Particle, "initial positions:  ", m.InitialPosition)
		writeTriple(&b, m.Particle, "final positions:    ", m.FinalPosition)
		writeTriple(&b, m.Particle, "initial velocities: ", m.InitialVelocity)
		writeTriple(&b, m.Particle, "final velocities:   ", m.FinalVelocity)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeTriple(b *strings.Builder, particle int, label string, v [3]float64) {
	fmt.Fprintf(b, "%8d %s", particle, label)
	for k := 0; k < 3; k++ {
		b.WriteString(BitPattern(v[k]))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
}

// BitPattern renders the IEEE-754 representation of f as sign, exponent and
// mantissa groups.
func BitPattern(f float64) string {
	bits := math.Float64bits(f)
	s := fmt.Sprintf("%064b", bits)
	return s[:1] + " " + s[1:12] + " " + s[12:]
}
