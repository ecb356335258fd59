package internal

import "math"

// Everything in the core compares floats exactly. Tolerance is only used by
// the explicitly approximate APIs (ApproxProperties and friends), and by tests.
const Tolerance = 1e-6

// Tests use this for values that are derived through division or square roots.
const Epsilon = 1e-9

// Tolerance based equality. The core geometry never calls this implicitly; it
// is for callers who have opted into approximate comparison.
func EqualWithin(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func Equal(a, b float64) bool {
	return EqualWithin(a, b, Tolerance)
}
