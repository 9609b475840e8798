package engine

import "math"

// FractionBits is the number of fractional bits in the fixed-point grid used
// for reduced-precision storage. Truncate rounds a value toward zero onto
// multiples of 2^-FractionBits. Any two grid values with magnitude below
// 2^(52-FractionBits) sum without rounding in float64, and exact additions
// are exactly invertible; that is what makes the bitwise reversibility check
// possible.
const FractionBits = 30

const precisionScale = 1 << FractionBits

// Truncate rounds x toward zero onto the fixed-point grid. Scaling by a
// power of two and math.Trunc are both exact, so the operation is idempotent
// and symmetric under negation.
func Truncate(x float64) float64 {
	return math.Trunc(x*precisionScale) / precisionScale
}

// TruncateState truncates every component in place.
func TruncateState(s State) {
	for i, v := range s {
		s[i] = Truncate(v)
	}
}
