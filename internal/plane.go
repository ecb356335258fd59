package internal

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Plane is an infinite plane given by a normal (not necessarily unit length)
// and any point on the plane.
//
// Field equality (Equals) and geometric equality (GeometricallyEquals) are
// different things: the same plane has many normal/anchor representations.
type Plane struct {
	Normal   vec3.T
	Location vec3.T
}

func NewPlane(normal, location vec3.T) Plane {
	return Plane{Normal: normal, Location: location}
}

// The plane through location spanned by two directions.
func NewPlaneFromDirections(direction1, direction2, location vec3.T) Plane {
	return Plane{Normal: cross3(direction1, direction2), Location: location}
}

func NewPlaneFromTriangle(t Triangle3) Plane {
	return Plane{Normal: t.Normal(), Location: t.A}
}

// How far the point sits along the plane's normal, relative to its anchor.
// This is signed: points on the side the normal points to are positive.
func (p Plane) DistanceFromPoint(point vec3.T) float64 {
	d := dot3(sub3(point, p.Location), p.Normal)
	lengthSqr := lengthSqr3(p.Normal)
	if lengthSqr == 1 {
		return d
	}
	return d / math.Sqrt(lengthSqr)
}

// Squared (and therefore unsigned) distance, without a square root.
func (p Plane) SquaredDistanceFromPoint(point vec3.T) float64 {
	d := dot3(sub3(point, p.Location), p.Normal)
	lengthSqr := lengthSqr3(p.Normal)
	if lengthSqr == 1 {
		return d * d
	}
	return d * d / lengthSqr
}

// The offset from the point to the plane, along the normal.
func (p Plane) offsetTo(point vec3.T) vec3.T {
	lengthSqr := lengthSqr3(p.Normal)
	if lengthSqr == 0 {
		return vec3.Zero
	}
	return scale3(p.Normal, -dot3(sub3(point, p.Location), p.Normal)/lengthSqr)
}

func (p Plane) ProjectPoint(point vec3.T) vec3.T {
	return add3(point, p.offsetTo(point))
}

func (p Plane) ReflectPoint(point vec3.T) vec3.T {
	return add3(point, scale3(p.offsetTo(point), 2))
}

// Project a line onto the plane. The direction is n × (n × d), which lies in
// the plane. Note that it points opposite to the in-plane component of d, and
// is scaled by |n|². A line parallel to the normal projects to a line with a
// zero direction (a single point).
func (p Plane) ProjectLine(line Line3) Line3 {
	return Line3{
		Direction: cross3(p.Normal, cross3(p.Normal, line.Direction)),
		Location:  p.ProjectPoint(line.Location),
	}
}

// Reflect a line across the plane. A line that crosses the plane is anchored
// at the crossing point in the result.
func (p Plane) ReflectLine(line Line3) Line3 {
	intersection := p.IntersectsLine(line)
	if IsInfinite3(intersection) {
		// Parallel to the plane, so there's no crossing point to anchor to
		anchor := p.ReflectPoint(line.Location)
		ahead := p.ReflectPoint(line.At(1))
		return NewLine3(sub3(ahead, anchor), anchor)
	}

	ahead := add3(line.Location, line.Direction)
	if lengthSqr3(sub3(ahead, intersection)) <= Epsilon*Epsilon {
		ahead = add3(intersection, line.Direction)
	}
	return NewLine3(sub3(p.ReflectPoint(ahead), intersection), intersection)
}

// Find the line where two planes meet. Parallel planes give a line whose
// direction and anchor are both Infinity3.
func (p Plane) IntersectsPlane(other Plane) Line3 {
	direction := cross3(p.Normal, other.Normal)
	if isZero3(direction) {
		return Line3{Direction: Infinity3, Location: Infinity3}
	}

	d1 := dot3(p.Normal, p.Location)
	d2 := dot3(other.Normal, other.Location)

	// We need any point on both planes. That means solving two plane equations
	// for three unknowns, so one coordinate gets fixed to zero. Usually that is
	// x, but if either normal points straight along x, fixing x leaves an
	// equation with no unknowns, so we fix y instead and solve in the X-Z plane.
	// If the chosen pair of axes still can't be solved (the meeting line lies in
	// the fixed coordinate's plane), fall back to the remaining axes.
	var order [3]int // which coordinate to fix, in order of preference
	if alongX(p.Normal) || alongX(other.Normal) {
		order = [3]int{1, 0, 2}
	} else {
		order = [3]int{0, 1, 2}
	}

	for _, fixed := range order {
		i, j := otherAxes(fixed)
		if location, ok := solvePlanePair(p.Normal, other.Normal, d1, d2, i, j); ok {
			return Line3{Direction: direction, Location: location}
		}
	}
	// Unreachable for a non-zero direction: some component of it is non-zero,
	// and that component is the determinant for fixing that axis.
	return Line3{Direction: Infinity3, Location: Infinity3}
}

func (p Plane) PlaneIntersection(other Plane) (line Line3, ok bool) {
	line = p.IntersectsPlane(other)
	return line, !IsInfinite3(line.Direction)
}

func alongX(normal vec3.T) bool {
	return normal[1] == 0 && normal[2] == 0
}

func otherAxes(fixed int) (int, int) {
	switch fixed {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// Solve n1[i]*a + n1[j]*b = d1, n2[i]*a + n2[j]*b = d2 by Cramer's rule,
// returning the point with a and b on axes i and j and zero on the third.
func solvePlanePair(n1, n2 vec3.T, d1, d2 float64, i, j int) (vec3.T, bool) {
	determinant := n1[i]*n2[j] - n1[j]*n2[i]
	if determinant == 0 {
		return vec3.T{}, false
	}
	var location vec3.T
	location[i] = (d1*n2[j] - d2*n1[j]) / determinant
	location[j] = (n1[i]*d2 - n2[i]*d1) / determinant
	return location, true
}

// Find where a line crosses the plane. Lines parallel to the plane (including
// lines lying in it) give Infinity3.
func (p Plane) IntersectsLine(line Line3) vec3.T {
	denominator := dot3(line.Direction, p.Normal)
	if denominator == 0 {
		return Infinity3
	}
	t := dot3(sub3(p.Location, line.Location), p.Normal) / denominator
	return line.At(t)
}

func (p Plane) LineIntersection(line Line3) (point vec3.T, ok bool) {
	point = p.IntersectsLine(line)
	return point, !IsInfinite3(point)
}

// Exact containment test.
func (p Plane) ContainsPoint(point vec3.T) bool {
	return dot3(sub3(point, p.Location), p.Normal) == 0
}

func (p Plane) ContainsLine(line Line3) bool {
	return p.ContainsPoint(line.Location) && dot3(line.Direction, p.Normal) == 0
}

// Whether two planes are the same set of points, regardless of how each is
// represented.
func (p Plane) GeometricallyEquals(other Plane) bool {
	if !isZero3(cross3(p.Normal, other.Normal)) {
		return false
	}
	// With parallel normals, both planes are level sets of dot(x, n) for the
	// shared normal direction. They're the same plane iff the anchors sit on the
	// same level, i.e. the other anchor is at distance zero from this plane.
	return p.ContainsPoint(other.Location)
}

func (p Plane) Equals(other Plane) bool {
	return p.Normal == other.Normal && p.Location == other.Location
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane{normal: %v, loc: %v}", p.Normal, p.Location)
}
