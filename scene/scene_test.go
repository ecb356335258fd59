package scene

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/osuushi/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestLoad(t *testing.T) {
	s := LoadFixtureScene("basic.yaml")
	require.Len(t, s.Shapes, 12)
	assert.Len(t, s.Queries, 12)

	assert.Equal(t, "diagonal", s.Shapes[0].Name)
	kind, err := s.Shapes[0].Kind()
	require.NoError(t, err)
	assert.Equal(t, KindLine2, kind)

	assert.Equal(t, Query{Op: "reflect", Args: []string{"flat", "p"}}, s.Queries[2])
	assert.Equal(t, "reflect(flat, p)", s.Queries[2].String())
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "shapes:\n  - name: a\n    pointy: [1, 2]\n",
		"wrong length":   "shapes:\n  - name: a\n    point2: [1, 2, 3]\n",
		"not a number":   "shapes:\n  - name: a\n    point3: [1, x, 3]\n",
		"not a sequence": "shapes: 3\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(text))
			assert.Error(t, err)
		})
	}

	t.Run("empty", func(t *testing.T) {
		s, err := Load(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, s.Shapes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile("/nonexistent/scene.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "/nonexistent/scene.yaml")
	})
}

func TestShapeKind(t *testing.T) {
	_, err := Shape{Name: "empty"}.Kind()
	assert.EqualError(t, err, `shape "empty" has no geometry`)

	p2 := vec2.T{1, 2}
	p3 := vec3.T{1, 2, 3}
	_, err = Shape{Name: "both", Point2: &p2, Point3: &p3}.Kind()
	assert.EqualError(t, err, `shape "both" has more than one geometry: point2, point3`)

	assert.True(t, KindSegment2I.Is2D())
	assert.False(t, KindPlane.Is2D())
}

func TestShapeValueRoundTrip(t *testing.T) {
	values := []interface{}{
		vec2.T{1, 2},
		vec3.T{1, 2, 3},
		geom.NewLine2(vec2.T{1, 1}, vec2.T{0, 3}),
		geom.NewLine2I(vec2.T{2, 1}, image.Pt(4, 5)),
		geom.NewLine3(vec3.T{0, 0, 1}, vec3.T{1, 1, 1}),
		geom.NewPlane(vec3.T{0, 1, 0}, vec3.T{0, 2, 0}),
		geom.Segment2{A: vec2.T{0, 0}, B: vec2.T{1, 1}},
		geom.Segment2I{A: image.Pt(0, 0), B: image.Pt(3, 4)},
		geom.Segment3{A: vec3.T{0, 0, 0}, B: vec3.T{1, 1, 1}},
		geom.Triangle2{A: vec2.T{0, 0}, B: vec2.T{1, 0}, C: vec2.T{0, 1}},
		geom.Triangle3{A: vec3.T{1, 0, 0}, B: vec3.T{0, 1, 0}, C: vec3.T{0, 0, 1}},
	}
	for _, value := range values {
		shape, err := NewShape("x", value)
		require.NoError(t, err)
		kind, err := shape.Kind()
		require.NoError(t, err)
		t.Run(string(kind), func(t *testing.T) {
			assert.Equal(t, kindOf(value), kind)
			back, err := shape.Value()
			require.NoError(t, err)
			assert.Equal(t, value, back)
		})
	}

	_, err := NewShape("x", 3)
	assert.Error(t, err)
}

func TestWriteAndReload(t *testing.T) {
	s := LoadFixtureScene("basic.yaml")
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	assert.Contains(t, buf.String(), "line2: {direction: [1, 1], location: [0, 0]}")

	reloaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, reloaded)

	t.Run("all zero geometry", func(t *testing.T) {
		origin := vec2.T{0, 0}
		flat := [3]vec3.T{}
		s := &Scene{Shapes: []Shape{
			{Name: "origin", Point2: &origin},
			{Name: "flat", Triangle3: &flat},
			{Name: "still", Line2: &LineSpec2{}},
		}}
		var buf bytes.Buffer
		require.NoError(t, s.Write(&buf))
		assert.Contains(t, buf.String(), "point2: [0, 0]")
		assert.Contains(t, buf.String(), "line2: {direction: [0, 0], location: [0, 0]}")

		reloaded, err := Load(&buf)
		require.NoError(t, err)
		assert.Equal(t, s, reloaded)
		shapes, err := reloaded.Resolve()
		require.NoError(t, err)
		assert.Equal(t, vec2.T{0, 0}, shapes["origin"])
	})

	t.Run("no geometry", func(t *testing.T) {
		s := &Scene{Shapes: []Shape{{Name: "ghost"}}}
		err := s.Write(&bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `shape "ghost" has no geometry`)
	})
}

func TestResolve(t *testing.T) {
	s := LoadFixtureScene("basic.yaml")
	shapes, err := s.Resolve()
	require.NoError(t, err)
	assert.Len(t, shapes, 12)
	assert.Equal(t, vec2.T{3, 1}, shapes["p"])

	unnamed := s.Shapes[len(s.Shapes)-1].Name
	assert.NotEmpty(t, unnamed)
	assert.Equal(t, vec2.T{0, 0}, shapes[unnamed])

	// Names stick
	_, err = s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, unnamed, s.Shapes[len(s.Shapes)-1].Name)

	t.Run("several unnamed", func(t *testing.T) {
		p := vec2.T{1, 2}
		s := Scene{Shapes: []Shape{{Point2: &p}, {Point2: &p}, {Point2: &p}}}
		shapes, err := s.Resolve()
		require.NoError(t, err)
		assert.Len(t, shapes, 3)
		for _, shape := range s.Shapes {
			assert.Equal(t, p, shapes[shape.Name])
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		p := vec2.T{0, 0}
		s := Scene{Shapes: []Shape{{Name: "a", Point2: &p}, {Name: "a", Point2: &p}}}
		_, err := s.Resolve()
		assert.EqualError(t, err, `duplicate shape name "a"`)
	})

	t.Run("bad shape", func(t *testing.T) {
		s := Scene{Shapes: []Shape{{Name: "a"}}}
		_, err := s.Resolve()
		assert.EqualError(t, err, `shape "a" has no geometry`)
	})
}
