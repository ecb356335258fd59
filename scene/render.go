package scene

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/geom"
	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/vec2"
)

// Padding around the shapes, in pixels, so that points on the edge of the
// bounds are still visible.
const renderPadding = 40

// Radius of a drawn point, in pixels.
const pointRadius = 4

// Render draws the 2D shapes in the scene, with y pointing up and every finite
// shape scaled to fit. Lines have no extent, so only their anchors count toward
// the bounds, and they are drawn across the whole image. 3D shapes are skipped.
func Render(s *Scene, width, height int) (*gg.Context, error) {
	if _, err := s.Resolve(); err != nil {
		return nil, err
	}

	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	var shapes []namedValue
	for _, shape := range s.Shapes {
		kind, _ := shape.Kind()
		if !kind.Is2D() {
			continue
		}
		value, _ := shape.Value()
		shapes = append(shapes, namedValue{shape.Name, value})
	}
	if len(shapes) == 0 {
		return c, nil
	}

	minX, minY, maxX, maxY := renderBounds(shapes)
	scale := math.Min(
		float64(width-renderPadding*2)/(maxX-minX),
		float64(height-renderPadding*2)/(maxY-minY),
	)
	if math.IsInf(scale, 1) || math.IsNaN(scale) || scale <= 0 {
		// Everything sits on one point (or one axis aligned line), so there's
		// nothing to fit.
		scale = 1
	}

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	// Translate for padding
	c.Translate(renderPadding, renderPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	// Longest line that could be visible, in scene units.
	reach := math.Hypot(float64(width), float64(height)) / scale

	c.SetLineWidth(2)
	for _, shape := range shapes {
		drawShape(c, shape.value, scale, reach)
	}
	for _, shape := range shapes {
		drawLabel(c, shape)
	}
	return c, nil
}

// RenderPNG renders the scene and writes it to path.
func RenderPNG(s *Scene, path string, width, height int) error {
	c, err := Render(s, width, height)
	if err != nil {
		return err
	}
	if err := c.SavePNG(path); err != nil {
		return errors.Wrapf(err, "saving %q", path)
	}
	return nil
}

// Cat prints a PNG to an iTerm compatible terminal.
func Cat(path string, w io.Writer) error {
	return errors.Wrapf(imgcat.CatFile(path, w), "printing %q", path)
}

type namedValue struct {
	name  string
	value interface{}
}

// The points of a shape that count toward the rendered bounds.
func boundingPoints(value interface{}) []vec2.T {
	switch v := value.(type) {
	case vec2.T:
		return []vec2.T{v}
	case geom.Line2:
		return []vec2.T{v.Location}
	case geom.Line2I:
		return []vec2.T{{float64(v.Location.X), float64(v.Location.Y)}}
	case geom.Segment2:
		return []vec2.T{v.A, v.B}
	case geom.Segment2I:
		return []vec2.T{
			{float64(v.A.X), float64(v.A.Y)},
			{float64(v.B.X), float64(v.B.Y)},
		}
	case geom.Triangle2:
		return []vec2.T{v.A, v.B, v.C}
	}
	return nil
}

func renderBounds(shapes []namedValue) (minX, minY, maxX, maxY float64) {
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, shape := range shapes {
		for _, p := range boundingPoints(shape.value) {
			minX = math.Min(minX, p[0])
			minY = math.Min(minY, p[1])
			maxX = math.Max(maxX, p[0])
			maxY = math.Max(maxY, p[1])
		}
	}
	return
}

func drawShape(c *gg.Context, value interface{}, scale, reach float64) {
	switch v := value.(type) {
	case vec2.T:
		c.DrawCircle(v[0], v[1], pointRadius/scale)
		c.SetRGB(1, 1, 0)
		c.Fill()
	case geom.Line2:
		drawLine(c, v.Location, v.Direction(), reach)
	case geom.Line2I:
		drawLine(c, vec2.T{float64(v.Location.X), float64(v.Location.Y)}, v.Direction(), reach)
	case geom.Segment2:
		c.DrawLine(v.A[0], v.A[1], v.B[0], v.B[1])
		c.SetRGB(0, 1, 1)
		c.Stroke()
	case geom.Segment2I:
		c.DrawLine(float64(v.A.X), float64(v.A.Y), float64(v.B.X), float64(v.B.Y))
		c.SetRGB(0, 1, 1)
		c.Stroke()
	case geom.Triangle2:
		c.MoveTo(v.A[0], v.A[1])
		c.LineTo(v.B[0], v.B[1])
		c.LineTo(v.C[0], v.C[1])
		c.ClosePath()
		c.SetRGBA(0.3, 0.2, 1, 0.5)
		c.FillPreserve()
		c.SetRGB(0, 1, 0)
		c.Stroke()
	}
}

func drawLine(c *gg.Context, location, direction vec2.T, reach float64) {
	length := direction.Length()
	if length == 0 {
		return
	}
	offset := direction.Scaled(reach / length)
	c.DrawLine(location[0]-offset[0], location[1]-offset[1], location[0]+offset[0], location[1]+offset[1])
	c.SetRGBA(1, 1, 1, 0.6)
	c.Stroke()
}

func drawLabel(c *gg.Context, shape namedValue) {
	points := boundingPoints(shape.value)
	var x, y float64
	for _, p := range points {
		x += p[0]
		y += p[1]
	}
	x /= float64(len(points))
	y /= float64(len(points))

	// We have to go back to identity to draw the text, so get the point in
	// native coordinates
	x, y = c.TransformPoint(x, y)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(shape.name, x, y-pointRadius*2, 0.5, 0.5)
	c.Pop()
}
