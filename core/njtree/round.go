// core/njtree/round.go
package njtree

import "math"

// RoundSignificant rounds x half away from zero to n significant decimal
// digits.
func RoundSignificant(x float64, n int) float64 {
	if x == 0 {
		return 0
	}
	d := math.Ceil(math.Log10(math.Abs(x)))
	magnitude := math.Pow(10, float64(n)-d)
	if math.IsInf(magnitude, 0) {
		// Subnormal range: x has fewer than n digits to drop.
		return x
	}
	shifted := int64(math.Round(x * magnitude))
	return float64(shifted) / magnitude
}

// Round5 is the rounding applied to every stored edge weight.
func Round5(x float64) float64 { return RoundSignificant(x, 5) }
