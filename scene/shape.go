package scene

import (
	"image"
	"strings"

	"github.com/osuushi/geom"
	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
	"gopkg.in/yaml.v3"
)

// Kind names the geometry a Shape holds. It is also the YAML key for that
// geometry.
type Kind string

const (
	KindPoint2    Kind = "point2"
	KindPoint3    Kind = "point3"
	KindLine2     Kind = "line2"
	KindLine2I    Kind = "line2i"
	KindLine3     Kind = "line3"
	KindPlane     Kind = "plane"
	KindSegment2  Kind = "segment2"
	KindSegment2I Kind = "segment2i"
	KindSegment3  Kind = "segment3"
	KindTriangle2 Kind = "triangle2"
	KindTriangle3 Kind = "triangle3"
)

// Whether shapes of this kind live in the plane, and can be drawn.
func (k Kind) Is2D() bool {
	switch k {
	case KindPoint2, KindLine2, KindLine2I, KindSegment2, KindSegment2I, KindTriangle2:
		return true
	}
	return false
}

type LineSpec2 struct {
	Direction vec2.T `yaml:"direction"`
	Location  vec2.T `yaml:"location"`
}

type LineSpec2I struct {
	Direction vec2.T `yaml:"direction"`
	Location  [2]int `yaml:"location"`
}

type LineSpec3 struct {
	Direction vec3.T `yaml:"direction"`
	Location  vec3.T `yaml:"location"`
}

type PlaneSpec struct {
	Normal   vec3.T `yaml:"normal"`
	Location vec3.T `yaml:"location"`
}

// Shape is one named piece of geometry in a scene. Exactly one of the geometry
// fields must be set.
type Shape struct {
	Name string `yaml:"name,omitempty"`

	Point2    *vec2.T     `yaml:"point2,omitempty,flow"`
	Point3    *vec3.T     `yaml:"point3,omitempty,flow"`
	Line2     *LineSpec2  `yaml:"line2,omitempty,flow"`
	Line2I    *LineSpec2I `yaml:"line2i,omitempty,flow"`
	Line3     *LineSpec3  `yaml:"line3,omitempty,flow"`
	Plane     *PlaneSpec  `yaml:"plane,omitempty,flow"`
	Segment2  *[2]vec2.T  `yaml:"segment2,omitempty,flow"`
	Segment2I *[2][2]int  `yaml:"segment2i,omitempty,flow"`
	Segment3  *[2]vec3.T  `yaml:"segment3,omitempty,flow"`
	Triangle2 *[3]vec2.T  `yaml:"triangle2,omitempty,flow"`
	Triangle3 *[3]vec3.T  `yaml:"triangle3,omitempty,flow"`
}

func (s Shape) kinds() []Kind {
	var kinds []Kind
	add := func(set bool, kind Kind) {
		if set {
			kinds = append(kinds, kind)
		}
	}
	add(s.Point2 != nil, KindPoint2)
	add(s.Point3 != nil, KindPoint3)
	add(s.Line2 != nil, KindLine2)
	add(s.Line2I != nil, KindLine2I)
	add(s.Line3 != nil, KindLine3)
	add(s.Plane != nil, KindPlane)
	add(s.Segment2 != nil, KindSegment2)
	add(s.Segment2I != nil, KindSegment2I)
	add(s.Segment3 != nil, KindSegment3)
	add(s.Triangle2 != nil, KindTriangle2)
	add(s.Triangle3 != nil, KindTriangle3)
	return kinds
}

func (s Shape) Kind() (Kind, error) {
	kinds := s.kinds()
	switch len(kinds) {
	case 0:
		return "", errors.Errorf("shape %q has no geometry", s.Name)
	case 1:
		return kinds[0], nil
	default:
		names := make([]string, len(kinds))
		for i, kind := range kinds {
			names[i] = string(kind)
		}
		return "", errors.Errorf("shape %q has more than one geometry: %s", s.Name, strings.Join(names, ", "))
	}
}

// The field holding the shape's geometry.
func (s Shape) geometry(kind Kind) interface{} {
	switch kind {
	case KindPoint2:
		return s.Point2
	case KindPoint3:
		return s.Point3
	case KindLine2:
		return s.Line2
	case KindLine2I:
		return s.Line2I
	case KindLine3:
		return s.Line3
	case KindPlane:
		return s.Plane
	case KindSegment2:
		return s.Segment2
	case KindSegment2I:
		return s.Segment2I
	case KindSegment3:
		return s.Segment3
	case KindTriangle2:
		return s.Triangle2
	case KindTriangle3:
		return s.Triangle3
	}
	return nil
}

// MarshalYAML writes the name and the one geometry the shape holds. The struct
// tags can't do this alone, since omitempty also drops geometry that happens to
// be all zeros.
func (s Shape) MarshalYAML() (interface{}, error) {
	kind, err := s.Kind()
	if err != nil {
		return nil, err
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	if s.Name != "" {
		if err := appendField(node, "name", s.Name); err != nil {
			return nil, err
		}
	}
	if err := appendField(node, string(kind), s.geometry(kind)); err != nil {
		return nil, err
	}
	setFlow(node.Content[len(node.Content)-1])
	return node, nil
}

func appendField(node *yaml.Node, key string, value interface{}) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &v)
	return nil
}

func setFlow(node *yaml.Node) {
	node.Style |= yaml.FlowStyle
	for _, child := range node.Content {
		setFlow(child)
	}
}

// Value converts the shape into the geom value it describes: a vec2.T or
// vec3.T for points, and the matching geom type for everything else.
func (s Shape) Value() (interface{}, error) {
	kind, err := s.Kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPoint2:
		return *s.Point2, nil
	case KindPoint3:
		return *s.Point3, nil
	case KindLine2:
		return geom.NewLine2(s.Line2.Direction, s.Line2.Location), nil
	case KindLine2I:
		return geom.NewLine2I(s.Line2I.Direction, pointFromArray(s.Line2I.Location)), nil
	case KindLine3:
		return geom.NewLine3(s.Line3.Direction, s.Line3.Location), nil
	case KindPlane:
		return geom.NewPlane(s.Plane.Normal, s.Plane.Location), nil
	case KindSegment2:
		return geom.Segment2{A: s.Segment2[0], B: s.Segment2[1]}, nil
	case KindSegment2I:
		return geom.Segment2I{A: pointFromArray(s.Segment2I[0]), B: pointFromArray(s.Segment2I[1])}, nil
	case KindSegment3:
		return geom.Segment3{A: s.Segment3[0], B: s.Segment3[1]}, nil
	case KindTriangle2:
		return geom.Triangle2{A: s.Triangle2[0], B: s.Triangle2[1], C: s.Triangle2[2]}, nil
	case KindTriangle3:
		return geom.Triangle3{A: s.Triangle3[0], B: s.Triangle3[1], C: s.Triangle3[2]}, nil
	}
	return nil, errors.Errorf("shape %q has unknown kind %q", s.Name, kind)
}

// NewShape is the inverse of Shape.Value.
func NewShape(name string, value interface{}) (Shape, error) {
	shape := Shape{Name: name}
	switch v := value.(type) {
	case vec2.T:
		shape.Point2 = &v
	case vec3.T:
		shape.Point3 = &v
	case geom.Line2:
		shape.Line2 = &LineSpec2{Direction: v.Direction(), Location: v.Location}
	case geom.Line2I:
		shape.Line2I = &LineSpec2I{Direction: v.Direction(), Location: arrayFromPoint(v.Location)}
	case geom.Line3:
		shape.Line3 = &LineSpec3{Direction: v.Direction, Location: v.Location}
	case geom.Plane:
		shape.Plane = &PlaneSpec{Normal: v.Normal, Location: v.Location}
	case geom.Segment2:
		shape.Segment2 = &[2]vec2.T{v.A, v.B}
	case geom.Segment2I:
		shape.Segment2I = &[2][2]int{arrayFromPoint(v.A), arrayFromPoint(v.B)}
	case geom.Segment3:
		shape.Segment3 = &[2]vec3.T{v.A, v.B}
	case geom.Triangle2:
		shape.Triangle2 = &[3]vec2.T{v.A, v.B, v.C}
	case geom.Triangle3:
		shape.Triangle3 = &[3]vec3.T{v.A, v.B, v.C}
	default:
		return Shape{}, errors.Errorf("no shape kind for %T", value)
	}
	return shape, nil
}

// The kind of a value produced by Shape.Value.
func kindOf(value interface{}) Kind {
	switch value.(type) {
	case vec2.T:
		return KindPoint2
	case vec3.T:
		return KindPoint3
	case geom.Line2:
		return KindLine2
	case geom.Line2I:
		return KindLine2I
	case geom.Line3:
		return KindLine3
	case geom.Plane:
		return KindPlane
	case geom.Segment2:
		return KindSegment2
	case geom.Segment2I:
		return KindSegment2I
	case geom.Segment3:
		return KindSegment3
	case geom.Triangle2:
		return KindTriangle2
	case geom.Triangle3:
		return KindTriangle3
	}
	return ""
}

func pointFromArray(a [2]int) image.Point {
	return image.Pt(a[0], a[1])
}

func arrayFromPoint(p image.Point) [2]int {
	return [2]int{p.X, p.Y}
}
