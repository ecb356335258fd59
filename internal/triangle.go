package internal

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

type TriangleType int

const (
	Scalene TriangleType = iota
	Isosceles
	Equilateral
)

func (t TriangleType) String() string {
	switch t {
	case Scalene:
		return "scalene"
	case Isosceles:
		return "isosceles"
	case Equilateral:
		return "equilateral"
	}
	return fmt.Sprintf("TriangleType(%d)", int(t))
}

// Names a corner of a triangle
type TrianglePoint int

const (
	PointNone TrianglePoint = iota
	PointA
	PointB
	PointC
)

func (p TrianglePoint) String() string {
	switch p {
	case PointNone:
		return "none"
	case PointA:
		return "A"
	case PointB:
		return "B"
	case PointC:
		return "C"
	}
	return fmt.Sprintf("TrianglePoint(%d)", int(p))
}

// The result of classifying a triangle.
//
// Apex is the corner between the two equal sides of an isosceles triangle, and
// PointNone for the other types. RightAngle is the corner with the right angle,
// or PointNone.
type TriangleProperties struct {
	Type       TriangleType
	Apex       TrianglePoint
	RightAngle TrianglePoint
}

func (p TriangleProperties) IsRightAngle() bool {
	return p.RightAngle != PointNone
}

// Classification works on the dot product of the two edges leaving each
// corner. For corner A that is (B-A)·(C-A) = |AB||AC|cos(A), which by the
// cosine rule is (b² + c² - a²)/2, where a, b, c are the lengths of the sides
// opposite A, B, C. So:
//
//   - a corner's dot is zero iff its angle is right
//   - the dots at A and B are equal iff a = b, making C the apex, and likewise
//     for the other pairs
//   - all three are equal iff the triangle is equilateral
//
// Everything is compared exactly unless an explicit tolerance is given.
type cornerDots [3]float64

func classify(dots cornerDots, equal func(a, b float64) bool) TriangleProperties {
	var props TriangleProperties
	for i, dot := range dots {
		if equal(dot, 0) {
			props.RightAngle = TrianglePoint(i + 1)
			break
		}
	}

	ab := equal(dots[0], dots[1])
	bc := equal(dots[1], dots[2])
	ca := equal(dots[2], dots[0])
	switch {
	case ab && bc:
		props.Type = Equilateral
	case ab:
		props.Type, props.Apex = Isosceles, PointC
	case bc:
		props.Type, props.Apex = Isosceles, PointA
	case ca:
		props.Type, props.Apex = Isosceles, PointB
	default:
		props.Type = Scalene
	}
	return props
}

func exactlyEqual(a, b float64) bool {
	return a == b
}

func withinTolerance(tolerance float64) func(a, b float64) bool {
	return func(a, b float64) bool {
		return EqualWithin(a, b, tolerance)
	}
}

// Sign based point in triangle test on 2D coordinates. A point on an edge has
// a zero sign for that edge and counts as inside.
func containsPoint2(a, b, c, p vec2.T) bool {
	d1 := PerpDot(sub2(b, a), sub2(p, a))
	d2 := PerpDot(sub2(c, b), sub2(p, b))
	d3 := PerpDot(sub2(a, c), sub2(p, c))

	hasNegative := d1 < 0 || d2 < 0 || d3 < 0
	hasPositive := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNegative && hasPositive)
}

type Triangle2 struct {
	A, B, C vec2.T
}

func (t Triangle2) Centroid() vec2.T {
	sum := add2(add2(t.A, t.B), t.C)
	return vec2.T{sum[0] / 3, sum[1] / 3}
}

// Move the triangle so that its centroid is at the given point.
func (t *Triangle2) SetCentroid(centroid vec2.T) {
	delta := sub2(centroid, t.Centroid())
	t.A = add2(t.A, delta)
	t.B = add2(t.B, delta)
	t.C = add2(t.C, delta)
}

// Positive for counterclockwise triangles.
func (t Triangle2) SignedArea() float64 {
	return PerpDot(sub2(t.B, t.A), sub2(t.C, t.A)) / 2
}

func (t Triangle2) Area() float64 {
	return math.Abs(t.SignedArea())
}

func (t Triangle2) Contains(point vec2.T) bool {
	return containsPoint2(t.A, t.B, t.C, point)
}

func (t Triangle2) dots() cornerDots {
	return cornerDots{
		dot2(sub2(t.B, t.A), sub2(t.C, t.A)),
		dot2(sub2(t.A, t.B), sub2(t.C, t.B)),
		dot2(sub2(t.A, t.C), sub2(t.B, t.C)),
	}
}

// Classify the triangle in one pass. Dot products are compared exactly, so
// this is only reliable for triangles whose coordinates make them exact.
func (t Triangle2) Properties() TriangleProperties {
	return classify(t.dots(), exactlyEqual)
}

// Classify with dot products treated as equal when within tolerance of each
// other. Tolerance is in squared length units.
func (t Triangle2) ApproxProperties(tolerance float64) TriangleProperties {
	return classify(t.dots(), withinTolerance(tolerance))
}

func (t Triangle2) IsRightAngle() bool  { return t.Properties().IsRightAngle() }
func (t Triangle2) IsEquilateral() bool { return t.Properties().Type == Equilateral }
func (t Triangle2) IsScalene() bool     { return t.Properties().Type == Scalene }

// Equilateral triangles are isosceles too.
func (t Triangle2) IsIsosceles() bool { return t.Properties().Type != Scalene }

func (t Triangle2) String() string {
	return fmt.Sprintf("Triangle2{%v, %v, %v}", t.A, t.B, t.C)
}

type Triangle3 struct {
	A, B, C vec3.T
}

func (t Triangle3) Centroid() vec3.T {
	sum := add3(add3(t.A, t.B), t.C)
	return vec3.T{sum[0] / 3, sum[1] / 3, sum[2] / 3}
}

func (t *Triangle3) SetCentroid(centroid vec3.T) {
	delta := sub3(centroid, t.Centroid())
	t.A = add3(t.A, delta)
	t.B = add3(t.B, delta)
	t.C = add3(t.C, delta)
}

// (A-B) × (C-B). Its length is twice the area.
func (t Triangle3) Normal() vec3.T {
	return cross3(sub3(t.A, t.B), sub3(t.C, t.B))
}

func (t Triangle3) Area() float64 {
	return length3(cross3(sub3(t.A, t.B), sub3(t.B, t.C))) / 2
}

func (t Triangle3) SquaredArea() float64 {
	return lengthSqr3(cross3(sub3(t.A, t.B), sub3(t.B, t.C))) / 4
}

// Whether the point is in the triangle (edges included). The point must be
// exactly coplanar with the triangle.
func (t Triangle3) Contains(point vec3.T) bool {
	normal := t.Normal()
	if dot3(sub3(point, t.A), normal) != 0 {
		return false
	}

	// Now that we know the point is in the plane, we can flatten everything to
	// 2D by dropping one axis. Axis aligned triangles are flat along some axis,
	// which must be the one dropped. Otherwise drop the axis the normal points
	// along most, so the flattened triangle keeps as much area as possible.
	drop := t.constantAxis()
	if drop < 0 {
		drop = dominantAxis(normal)
	}
	return containsPoint2(
		flatten(t.A, drop),
		flatten(t.B, drop),
		flatten(t.C, drop),
		flatten(point, drop),
	)
}

// The axis all three corners share a coordinate on, or -1 if none.
func (t Triangle3) constantAxis() int {
	for axis := 0; axis < 3; axis++ {
		if t.A[axis] == t.B[axis] && t.B[axis] == t.C[axis] {
			return axis
		}
	}
	return -1
}

func dominantAxis(v vec3.T) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) > math.Abs(v[axis]) {
			axis = i
		}
	}
	return axis
}

func flatten(v vec3.T, drop int) vec2.T {
	switch drop {
	case 0:
		return vec2.T{v[1], v[2]}
	case 1:
		return vec2.T{v[0], v[2]}
	default:
		return vec2.T{v[0], v[1]}
	}
}

// In 3D the sign of a corner dot is not compared, only its magnitude.
func (t Triangle3) dots() cornerDots {
	return cornerDots{
		math.Abs(dot3(sub3(t.B, t.A), sub3(t.C, t.A))),
		math.Abs(dot3(sub3(t.A, t.B), sub3(t.C, t.B))),
		math.Abs(dot3(sub3(t.A, t.C), sub3(t.B, t.C))),
	}
}

func (t Triangle3) Properties() TriangleProperties {
	return classify(t.dots(), exactlyEqual)
}

func (t Triangle3) ApproxProperties(tolerance float64) TriangleProperties {
	return classify(t.dots(), withinTolerance(tolerance))
}

func (t Triangle3) IsRightAngle() bool  { return t.Properties().IsRightAngle() }
func (t Triangle3) IsEquilateral() bool { return t.Properties().Type == Equilateral }
func (t Triangle3) IsIsosceles() bool   { return t.Properties().Type != Scalene }
func (t Triangle3) IsScalene() bool     { return t.Properties().Type == Scalene }

func (t Triangle3) String() string {
	return fmt.Sprintf("Triangle3{%v, %v, %v}", t.A, t.B, t.C)
}
