// Exact line, plane, segment and triangle algebra for 2D and 3D.
//
// This package answers intersection, reflection, projection, containment and
// classification questions in closed form. Vectors are go3d's float64 vec2 and
// vec3 types, and image.Point for lines anchored on the integer grid.
//
// Nothing here returns an error. Degenerate cases are reported with sentinel
// values (a point at infinity for parallel lines and planes) or with an ok
// flag, and every Intersects has an Intersection counterpart that returns the
// flag. Floating point comparisons are exact unless a function takes an
// explicit tolerance.
package geom

import (
	"image"

	"github.com/osuushi/geom/internal"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

type Line2 = internal.Line2
type Line2I = internal.Line2I
type Line3 = internal.Line3
type Plane = internal.Plane
type Segment2 = internal.Segment2
type Segment2I = internal.Segment2I
type Segment3 = internal.Segment3
type Rect2 = internal.Rect2
type Rect2I = internal.Rect2I
type Triangle2 = internal.Triangle2
type Triangle3 = internal.Triangle3
type TriangleType = internal.TriangleType
type TrianglePoint = internal.TrianglePoint
type TriangleProperties = internal.TriangleProperties

const (
	Scalene     = internal.Scalene
	Isosceles   = internal.Isosceles
	Equilateral = internal.Equilateral

	PointNone = internal.PointNone
	PointA    = internal.PointA
	PointB    = internal.PointB
	PointC    = internal.PointC
)

// The default tolerance for the approximate APIs.
const Tolerance = internal.Tolerance

// Sentinels returned by the Intersects functions when there is no
// intersection.
var (
	Infinity2  = internal.Infinity2
	Infinity3  = internal.Infinity3
	Infinity2I = internal.Infinity2I
)

func NewLine2(direction, location vec2.T) Line2 {
	return internal.NewLine2(direction, location)
}

func NewLine2FromCoords(dx, dy, x, y float64) Line2 {
	return internal.NewLine2FromCoords(dx, dy, x, y)
}

// The line through a segment, along its normalized change and anchored at A.
func NewLine2FromSegment(s Segment2) Line2 {
	return internal.NewLine2FromSegment(s)
}

func NewLine2FromSegment2I(s Segment2I) Line2 {
	return internal.NewLine2FromSegment2I(s)
}

func NewLine2FromLine2I(l Line2I) Line2 {
	return internal.NewLine2FromLine2I(l)
}

func NewLine2I(direction vec2.T, location image.Point) Line2I {
	return internal.NewLine2I(direction, location)
}

func NewLine2IFromSegment(s Segment2I) Line2I {
	return internal.NewLine2IFromSegment(s)
}

// The anchor is rounded to the nearest grid point.
func NewLine2IFromLine2(l Line2) Line2I {
	return internal.NewLine2IFromLine2(l)
}

func NewLine3(direction, location vec3.T) Line3 {
	return internal.NewLine3(direction, location)
}

func NewLine3FromSegment(s Segment3) Line3 {
	return internal.NewLine3FromSegment(s)
}

func NewPlane(normal, location vec3.T) Plane {
	return internal.NewPlane(normal, location)
}

// The plane through location spanned by two directions.
func NewPlaneFromDirections(direction1, direction2, location vec3.T) Plane {
	return internal.NewPlaneFromDirections(direction1, direction2, location)
}

// The plane containing a triangle, with normal (A-B)×(C-B), anchored at A.
func NewPlaneFromTriangle(t Triangle3) Plane {
	return internal.NewPlaneFromTriangle(t)
}

func IsInfinite2(v vec2.T) bool      { return internal.IsInfinite2(v) }
func IsInfinite3(v vec3.T) bool      { return internal.IsInfinite3(v) }
func IsInfinite2I(p image.Point) bool { return internal.IsInfinite2I(p) }

// The 2D cross product, zero iff a and b are parallel.
func PerpDot(a, b vec2.T) float64 {
	return internal.PerpDot(a, b)
}

// Approximate float equality, for callers who have opted into it.
func EqualWithin(a, b, tolerance float64) bool { return internal.EqualWithin(a, b, tolerance) }

// EqualWithin at the default Tolerance.
func Equal(a, b float64) bool { return internal.Equal(a, b) }
