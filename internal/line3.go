package internal

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Line3 is an infinite line in space. Unlike the 2D lines there is no gradient
// cache, so the fields are exposed directly.
type Line3 struct {
	Direction vec3.T
	Location  vec3.T
}

func NewLine3(direction, location vec3.T) Line3 {
	return Line3{Direction: direction, Location: location}
}

func NewLine3FromSegment(s Segment3) Line3 {
	change := s.Change()
	return Line3{Direction: *change.Normalize(), Location: s.A}
}

// The point on the line at parameter t.
func (l Line3) At(t float64) vec3.T {
	return add3(l.Location, scale3(l.Direction, t))
}

// Find where two lines in space meet. Lines that are parallel, or skew (not
// coplanar), do not meet and give Infinity3. Coplanarity is tested exactly.
func (l Line3) Intersects(other Line3) vec3.T {
	normal := cross3(l.Direction, other.Direction)
	if isZero3(normal) {
		return Infinity3
	}

	between := sub3(other.Location, l.Location)
	if dot3(between, normal) != 0 {
		return Infinity3
	}

	t := dot3(cross3(between, other.Direction), normal) / lengthSqr3(normal)
	return l.At(t)
}

func (l Line3) Intersection(other Line3) (point vec3.T, ok bool) {
	point = l.Intersects(other)
	return point, !IsInfinite3(point)
}

func (l Line3) ProjectPoint(point vec3.T) vec3.T {
	lengthSqr := lengthSqr3(l.Direction)
	if lengthSqr == 0 {
		return l.Location
	}
	t := dot3(sub3(point, l.Location), l.Direction) / lengthSqr
	return l.At(t)
}

func (l Line3) ReflectPoint(point vec3.T) vec3.T {
	return sub3(scale3(l.ProjectPoint(point), 2), point)
}

// Reflect another line about this one. When the lines meet, the result is
// anchored at the meeting point; otherwise both an anchor and a second point
// are reflected and the result runs through them.
func (l Line3) ReflectLine(other Line3) Line3 {
	intersection := l.Intersects(other)
	if IsInfinite3(intersection) {
		anchor := l.ReflectPoint(other.Location)
		ahead := l.ReflectPoint(other.At(1))
		return NewLine3(sub3(ahead, anchor), anchor)
	}

	anchor := other.Location
	if lengthSqr3(sub3(anchor, intersection)) <= Epsilon*Epsilon {
		anchor = add3(intersection, other.Direction)
	}
	return NewLine3(sub3(l.ReflectPoint(anchor), intersection), intersection)
}

// Exact containment test.
func (l Line3) Contains(point vec3.T) bool {
	return isZero3(cross3(sub3(point, l.Location), l.Direction))
}

func (l Line3) DistanceFromPoint(point vec3.T) float64 {
	return length3(sub3(point, l.ProjectPoint(point)))
}

func (l Line3) Equals(other Line3) bool {
	return l.Direction == other.Direction && l.Location == other.Location
}

func (l Line3) String() string {
	return fmt.Sprintf("Line3{dir: %v, loc: %v}", l.Direction, l.Location)
}
