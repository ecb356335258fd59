package internal

import (
	"fmt"
	"image"
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Segments are finite lines between two endpoints. A and B may be equal, in
// which case the change is the zero vector and the segment intersects nothing.

type Segment2 struct {
	A, B vec2.T
}

type Segment2I struct {
	A, B image.Point
}

type Segment3 struct {
	A, B vec3.T
}

// Axis aligned bounding rectangle. Both Min and Max are inclusive.
type Rect2 struct {
	Min, Max vec2.T
}

func (r Rect2) Contains(p vec2.T) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Integer counterpart of Rect2, also inclusive at both ends. image.Rectangle
// isn't used here because it excludes its Max edge.
type Rect2I struct {
	Min, Max image.Point
}

func (r Rect2I) Contains(p image.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (s Segment2) Change() vec2.T {
	return sub2(s.B, s.A)
}

func (s Segment2) Length() float64 {
	change := s.Change()
	return change.Length()
}

func (s Segment2) Line() Line2 {
	return NewLine2FromSegment(s)
}

// The point at parameter t, where 0 is A and 1 is B.
func (s Segment2) At(t float64) vec2.T {
	return add2(s.A, scale2(s.Change(), t))
}

// Find where two segments cross. Unlike lines, segments often don't, so this
// returns ok = false (and a zero point) for parallel segments, and for
// segments whose lines cross outside of either segment. Crossing exactly at an
// endpoint counts.
//
// Collinear overlapping segments are parallel, so they report no
// intersection.
func (s Segment2) Intersects(other Segment2) (point vec2.T, ok bool) {
	r := s.Change()
	q := other.Change()

	denominator := PerpDot(r, q)
	if denominator == 0 {
		return vec2.T{}, false
	}

	between := sub2(other.A, s.A)
	t := PerpDot(between, q) / denominator
	u := PerpDot(between, r) / denominator
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vec2.T{}, false
	}
	return s.At(t), true
}

func (s Segment2) Bounds() Rect2 {
	return Rect2{
		Min: vec2.T{math.Min(s.A[0], s.B[0]), math.Min(s.A[1], s.B[1])},
		Max: vec2.T{math.Max(s.A[0], s.B[0]), math.Max(s.A[1], s.B[1])},
	}
}

func (s Segment2) String() string {
	return fmt.Sprintf("Segment2{%v → %v}", s.A, s.B)
}

func (s Segment2I) Change() image.Point {
	return s.B.Sub(s.A)
}

func (s Segment2I) Line() Line2I {
	return NewLine2IFromSegment(s)
}

func (s Segment2I) Bounds() Rect2I {
	r := image.Rectangle{Min: s.A, Max: s.B}.Canon()
	return Rect2I{Min: r.Min, Max: r.Max}
}

func (s Segment2I) String() string {
	return fmt.Sprintf("Segment2I{%v → %v}", s.A, s.B)
}

func (s Segment3) Change() vec3.T {
	return sub3(s.B, s.A)
}

func (s Segment3) Length() float64 {
	return length3(s.Change())
}

func (s Segment3) Line() Line3 {
	return NewLine3FromSegment(s)
}

func (s Segment3) At(t float64) vec3.T {
	return add3(s.A, scale3(s.Change(), t))
}

func (s Segment3) String() string {
	return fmt.Sprintf("Segment3{%v → %v}", s.A, s.B)
}
