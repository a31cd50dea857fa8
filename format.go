package calc

import "math"

const (
	// zeroTolerance is the magnitude below which a result snaps to zero.
	// The same tolerance decides whether a divisor is numerically zero.
	zeroTolerance = 1e-10
	// hugeThreshold and tinyThreshold bound the range in which results are
	// rounded for presentation; outside it the raw value passes through and
	// the presentation layer chooses a notation.
	hugeThreshold = 1e10
	tinyThreshold = 1e-4
	// roundScale rounds to 10 decimal places.
	roundScale = 1e10
)

// formatResult applies the output normalization rules: snap near-zero to
// zero, pass extreme magnitudes through verbatim, and otherwise round to 10
// decimal places to mask binary floating-point noise.
func formatResult(x float64) float64 {
	a := math.Abs(x)
	if a < zeroTolerance {
		return 0
	}
	if a > hugeThreshold || a < tinyThreshold {
		return x
	}
	return math.Round(x*roundScale) / roundScale
}

// Integral reports whether x has no fractional part and is small enough for
// every integer near it to be exact. Presentation layers use it to render a
// result as an integer; it never changes the computation itself.
func Integral(x float64) bool {
	return x == math.Trunc(x) && math.Abs(x) < 1<<53
}
