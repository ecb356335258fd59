package internal

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec2"
)

// Line2 is an infinite line in the plane, given by a direction (not necessarily
// unit length) and any point on the line.
//
// The direction is private so that the gradient cache can never go stale. Use
// Direction and SetDirection to get at it.
type Line2 struct {
	direction vec2.T
	Location  vec2.T

	// Gradient cache: dx/dy and dy/dx of the direction
	xPerY, yPerX float64
}

func NewLine2(direction, location vec2.T) Line2 {
	l := Line2{Location: location}
	l.SetDirection(direction)
	return l
}

func NewLine2FromCoords(dx, dy, x, y float64) Line2 {
	return NewLine2(vec2.T{dx, dy}, vec2.T{x, y})
}

// The line through a segment. Its direction is the normalized segment change,
// and it is anchored at the segment's start.
func NewLine2FromSegment(s Segment2) Line2 {
	return NewLine2(normalize2(s.Change()), s.A)
}

func NewLine2FromSegment2I(s Segment2I) Line2 {
	return NewLine2(normalize2(toVec2(s.Change())), toVec2(s.A))
}

func NewLine2FromLine2I(l Line2I) Line2 {
	return NewLine2(l.Direction(), toVec2(l.Location))
}

func (l Line2) Direction() vec2.T {
	return l.direction
}

func (l *Line2) SetDirection(direction vec2.T) {
	l.direction = direction
	l.xPerY, l.yPerX = gradients(direction)
}

func gradients(direction vec2.T) (xPerY, yPerX float64) {
	// These are allowed to be infinite (or NaN for a zero direction). GetX and
	// GetY check for the axis aligned cases before using them.
	return direction[0] / direction[1], direction[1] / direction[0]
}

// Find the x coordinate of the line at the given y. A vertical line answers
// with its own x no matter what y is asked for.
func (l Line2) GetX(y float64) float64 {
	return lineX(l.direction, l.Location, l.xPerY, y)
}

// Find the y coordinate of the line at the given x. A horizontal line answers
// with its own y no matter what x is asked for.
func (l Line2) GetY(x float64) float64 {
	return lineY(l.direction, l.Location, l.yPerX, x)
}

func lineX(direction, location vec2.T, xPerY, y float64) float64 {
	if direction[0] == 0 {
		return location[0]
	}
	return location[0] + xPerY*(y-location[1])
}

func lineY(direction, location vec2.T, yPerX, x float64) float64 {
	if direction[1] == 0 {
		return location[1]
	}
	return location[1] + yPerX*(x-location[0])
}

// Find where two lines cross. Parallel lines (including identical ones) give
// Infinity2.
func (l Line2) Intersects(other Line2) vec2.T {
	return intersectLines2(l.direction, l.Location, other.direction, other.Location)
}

// Like Intersects, but reports parallel lines with ok = false instead of a
// sentinel.
func (l Line2) Intersection(other Line2) (point vec2.T, ok bool) {
	point = l.Intersects(other)
	return point, !IsInfinite2(point)
}

func intersectLines2(dir1, loc1, dir2, loc2 vec2.T) vec2.T {
	// Both directions are scaled up by 10. The factor cancels out of t, since t
	// is measured along the scaled direction.
	d1 := scale2(dir1, 10)
	d2 := scale2(dir2, 10)

	denominator := PerpDot(d1, d2)
	if denominator == 0 {
		return Infinity2
	}

	t := PerpDot(sub2(loc2, loc1), d2) / denominator
	return add2(loc1, scale2(d1, t))
}

// Reflect a point across the line.
func (l Line2) ReflectPoint(point vec2.T) vec2.T {
	projected := l.ProjectPoint(point)
	return sub2(scale2(projected, 2), point)
}

// Find the closest point on the line.
func (l Line2) ProjectPoint(point vec2.T) vec2.T {
	return projectOntoLine2(l.direction, l.Location, point)
}

func projectOntoLine2(direction, location, point vec2.T) vec2.T {
	lengthSqr := lengthSqr2(direction)
	if lengthSqr == 0 {
		// A line with no direction is just its anchor
		return location
	}
	t := dot2(sub2(point, location), direction) / lengthSqr
	return add2(location, scale2(direction, t))
}

// Reflect another line across this one. The result is anchored at the point
// where the two lines cross, and points away from it toward the reflected
// anchor.
func (l Line2) ReflectLine(other Line2) Line2 {
	intersection := l.Intersects(other)
	if IsInfinite2(intersection) {
		// Parallel lines reflect to a parallel line
		return NewLine2(other.direction, l.ReflectPoint(other.Location))
	}

	// An anchor on the crossing point reflects onto it, which leaves no usable
	// direction. Step one direction length along the line instead.
	anchor := other.Location
	if lengthSqr2(sub2(anchor, intersection)) <= Epsilon*Epsilon {
		anchor = add2(intersection, other.direction)
	}
	reflected := l.ReflectPoint(anchor)
	return NewLine2(sub2(reflected, intersection), intersection)
}

// The perpendicular line through the same anchor.
func (l Line2) Perp() Line2 {
	return NewLine2(vec2.T{-l.direction[1], l.direction[0]}, l.Location)
}

// Exact containment test. Points computed through division will rarely land
// exactly on the line; use DistanceFromPoint for those.
func (l Line2) Contains(point vec2.T) bool {
	return PerpDot(sub2(point, l.Location), l.direction) == 0
}

// Unsigned distance of a point from the line.
func (l Line2) DistanceFromPoint(point vec2.T) float64 {
	projected := l.ProjectPoint(point)
	d := sub2(point, projected)
	return d.Length()
}

// Structural equality. Two lines through the same points with different
// anchors or direction lengths are not Equal.
func (l Line2) Equals(other Line2) bool {
	return l.direction == other.direction && l.Location == other.Location
}

func (l Line2) String() string {
	return fmt.Sprintf("Line2{dir: %v, loc: %v}", l.direction, l.Location)
}
