package internal

import (
	"image"
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// go3d works with pointer receivers throughout, which makes chaining awkward on
// temporaries. These helpers take values so the geometry code can read like the
// formulas it implements.

func add2(a, b vec2.T) vec2.T { return vec2.Add(&a, &b) }
func sub2(a, b vec2.T) vec2.T { return vec2.Sub(&a, &b) }
func dot2(a, b vec2.T) float64 { return vec2.Dot(&a, &b) }

func scale2(v vec2.T, f float64) vec2.T { return v.Scaled(f) }

func lengthSqr2(v vec2.T) float64 { return v.LengthSqr() }

func normalize2(v vec2.T) vec2.T { return v.Normalized() }

// PerpDot is the 2D analogue of the cross product. It is zero iff a and b are
// parallel.
func PerpDot(a, b vec2.T) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func add3(a, b vec3.T) vec3.T   { return vec3.Add(&a, &b) }
func sub3(a, b vec3.T) vec3.T   { return vec3.Sub(&a, &b) }
func dot3(a, b vec3.T) float64  { return vec3.Dot(&a, &b) }
func cross3(a, b vec3.T) vec3.T { return vec3.Cross(&a, &b) }

func scale3(v vec3.T, f float64) vec3.T { return v.Scaled(f) }

func length3(v vec3.T) float64    { return v.Length() }
func lengthSqr3(v vec3.T) float64 { return v.LengthSqr() }

func isZero3(v vec3.T) bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

func toVec2(p image.Point) vec2.T {
	return vec2.T{float64(p.X), float64(p.Y)}
}

func roundToPoint(v vec2.T) image.Point {
	return image.Pt(int(math.Round(v[0])), int(math.Round(v[1])))
}

// Sentinels for degenerate results. Parallel lines and planes have no
// intersection, and rather than fail, the intersection functions return a
// point at infinity. The (value, ok) variants of those functions are usually
// more convenient.
var (
	Infinity2 = vec2.T{math.Inf(1), math.Inf(1)}
	Infinity3 = vec3.T{math.Inf(1), math.Inf(1), math.Inf(1)}

	// Integer lines can't represent infinity, so they use the extreme ints.
	Infinity2I = image.Pt(math.MaxInt, math.MinInt)
)

func IsInfinite2(v vec2.T) bool {
	return math.IsInf(v[0], 0) || math.IsInf(v[1], 0)
}

func IsInfinite3(v vec3.T) bool {
	return math.IsInf(v[0], 0) || math.IsInf(v[1], 0) || math.IsInf(v[2], 0)
}

func IsInfinite2I(p image.Point) bool {
	return p == Infinity2I
}
