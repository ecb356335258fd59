package internal

import (
	"fmt"
	"image"

	"github.com/ungerik/go3d/float64/vec2"
)

// Line2I is a line anchored on the integer grid. The direction is still float
// valued, so the line itself passes through non-integer points; only the
// results that are points (intersections, reflections, projections) get
// rounded back onto the grid.
type Line2I struct {
	direction vec2.T
	Location  image.Point

	xPerY, yPerX float64
}

func NewLine2I(direction vec2.T, location image.Point) Line2I {
	l := Line2I{Location: location}
	l.SetDirection(direction)
	return l
}

func NewLine2IFromSegment(s Segment2I) Line2I {
	return NewLine2I(normalize2(toVec2(s.Change())), s.A)
}

// Converting a float line rounds its anchor to the nearest grid point.
func NewLine2IFromLine2(l Line2) Line2I {
	return NewLine2I(l.Direction(), roundToPoint(l.Location))
}

func (l Line2I) Direction() vec2.T {
	return l.direction
}

func (l *Line2I) SetDirection(direction vec2.T) {
	l.direction = direction
	l.xPerY, l.yPerX = gradients(direction)
}

func (l Line2I) GetX(y int) float64 {
	return lineX(l.direction, toVec2(l.Location), l.xPerY, float64(y))
}

func (l Line2I) GetY(x int) float64 {
	return lineY(l.direction, toVec2(l.Location), l.yPerX, float64(x))
}

// Parallel lines give Infinity2I.
func (l Line2I) Intersects(other Line2I) image.Point {
	point := intersectLines2(l.direction, toVec2(l.Location), other.direction, toVec2(other.Location))
	if IsInfinite2(point) {
		return Infinity2I
	}
	return roundToPoint(point)
}

func (l Line2I) Intersection(other Line2I) (point image.Point, ok bool) {
	point = l.Intersects(other)
	return point, !IsInfinite2I(point)
}

func (l Line2I) ProjectPoint(point image.Point) image.Point {
	return roundToPoint(projectOntoLine2(l.direction, toVec2(l.Location), toVec2(point)))
}

func (l Line2I) ReflectPoint(point image.Point) image.Point {
	// Reflect in float space and round once, so the rounding error isn't doubled
	p := toVec2(point)
	projected := projectOntoLine2(l.direction, toVec2(l.Location), p)
	return roundToPoint(sub2(scale2(projected, 2), p))
}

func (l Line2I) ReflectLine(other Line2I) Line2I {
	intersection := l.Intersects(other)
	if IsInfinite2I(intersection) {
		return NewLine2I(other.direction, l.ReflectPoint(other.Location))
	}

	crossing := toVec2(intersection)
	anchor := toVec2(other.Location)
	if lengthSqr2(sub2(anchor, crossing)) <= Epsilon*Epsilon {
		anchor = add2(crossing, other.direction)
	}
	projected := projectOntoLine2(l.direction, toVec2(l.Location), anchor)
	reflected := sub2(scale2(projected, 2), anchor)
	return NewLine2I(sub2(reflected, crossing), intersection)
}

func (l Line2I) Perp() Line2I {
	return NewLine2I(vec2.T{-l.direction[1], l.direction[0]}, l.Location)
}

func (l Line2I) Equals(other Line2I) bool {
	return l.direction == other.direction && l.Location == other.Location
}

func (l Line2I) String() string {
	return fmt.Sprintf("Line2I{dir: %v, loc: %v}", l.direction, l.Location)
}
