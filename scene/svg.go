package scene

import (
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/geom"
	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/vec2"
)

// LoadSVG imports shapes from an SVG document. This is not a full (or even
// correct) SVG reader. It understands three elements, in document order:
//
//	<line>     becomes a segment2 from (x1, y1) to (x2, y2)
//	<polygon>  with exactly three points becomes a triangle2
//	<circle>   becomes a point2 at its center
//
// Everything else, including transforms, is ignored. Coordinates are taken as
// written, so y points down as it does in SVG. An element's id, if any, becomes
// the shape's name.
func LoadSVG(r io.Reader) (shapes []Shape, err error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	defer func() {
		recoveredErr := HandleScenePanicRecover(recover())
		if recoveredErr != nil {
			shapes, err = nil, recoveredErr
		}
	}()

	walkSVG(root, func(el *svgparser.Element) {
		var value interface{}
		switch el.Name {
		case "line":
			value = geom.Segment2{
				A: vec2.T{svgNumber(el, "x1"), svgNumber(el, "y1")},
				B: vec2.T{svgNumber(el, "x2"), svgNumber(el, "y2")},
			}
		case "polygon":
			points := svgPoints(el)
			if len(points) != 3 {
				fatalf("polygon %q has %d points, only triangles are supported", el.Attributes["id"], len(points))
			}
			value = geom.Triangle2{A: points[0], B: points[1], C: points[2]}
		case "circle":
			value = vec2.T{svgNumber(el, "cx"), svgNumber(el, "cy")}
		default:
			return
		}

		shape, err := NewShape(el.Attributes["id"], value)
		if err != nil {
			fatalf("%v", err)
		}
		shapes = append(shapes, shape)
	})
	return shapes, nil
}

func walkSVG(el *svgparser.Element, visit func(*svgparser.Element)) {
	visit(el)
	for _, child := range el.Children {
		walkSVG(child, visit)
	}
}

// Missing coordinates are zero, as in SVG.
func svgNumber(el *svgparser.Element, attribute string) float64 {
	text, ok := el.Attributes[attribute]
	if !ok {
		return 0
	}
	return parseSVGNumber(text)
}

func parseSVGNumber(text string) float64 {
	text = strings.TrimSuffix(strings.TrimSpace(text), "px")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		fatalf("invalid number %q in svg", text)
	}
	return f
}

// A points attribute is a list of numbers separated by whitespace and/or
// commas, taken in x, y pairs.
func svgPoints(el *svgparser.Element) []vec2.T {
	fields := strings.FieldsFunc(el.Attributes["points"], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		fatalf("polygon %q has an odd number of coordinates", el.Attributes["id"])
	}
	points := make([]vec2.T, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		points = append(points, vec2.T{parseSVGNumber(fields[i]), parseSVGNumber(fields[i+1])})
	}
	return points
}
