package scene

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/osuushi/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEvaluate(t *testing.T) {
	s := LoadFixtureScene("basic.yaml")
	results, err := NewEvaluator(WithWorkers(3)).Evaluate(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, len(s.Queries))

	expected := []struct {
		value      string
		degenerate bool
	}{
		{"(2, 2)", false},
		{"(+Inf, +Inf)", true},
		{"(3, 3)", false},
		{"(2, 2)", false},
		{"line through (2, 0, 0) along (0, 1, 0)", false},
		{"(1, 1, 0)", false},
		{"scalene, apex none, right angle A", false},
		{"6", false},
		{"(1, 1)", false},
		{"(3, 5)", false},
		{"false", false},
		{"1", false},
	}
	for i, result := range results {
		t.Run(result.Query.String(), func(t *testing.T) {
			assert.Equal(t, s.Queries[i], result.Query)
			assert.Equal(t, expected[i].value, result.Value)
			assert.Equal(t, expected[i].degenerate, result.Degenerate)
		})
	}

	assert.Equal(t, "intersect(diagonal, flat) = (2, 2)", results[0].String())
}

func evaluateOne(t *testing.T, e *Evaluator, s *Scene, op string, args ...string) (Result, error) {
	t.Helper()
	shapes, err := s.Resolve()
	require.NoError(t, err)
	return e.EvaluateQuery(Query{Op: op, Args: args}, shapes)
}

func TestEvaluateQueryErrors(t *testing.T) {
	s := LoadFixtureScene("basic.yaml")
	e := NewEvaluator()

	cases := []struct {
		op      string
		args    []string
		message string
	}{
		{"explode", []string{"p"}, `unknown operation "explode"`},
		{"intersect", []string{"p"}, "intersect takes 2 argument(s), got 1"},
		{"area", []string{"nobody"}, `unknown shape "nobody"`},
		{"intersect", []string{"p", "floor"}, "can't intersect a point2 and a plane"},
		{"area", []string{"diagonal"}, "can't find the area of a line2"},
		{"contains", []string{"tri", "floor"}, "can't test containment of a plane in a triangle2"},
	}
	for _, c := range cases {
		t.Run(c.message, func(t *testing.T) {
			_, err := evaluateOne(t, e, s, c.op, c.args...)
			assert.EqualError(t, err, c.message)
		})
	}

	t.Run("off the grid", func(t *testing.T) {
		half := vec2.T{0.5, 1}
		s := &Scene{Shapes: []Shape{
			{Name: "half", Point2: &half},
			{Name: "grid", Line2I: &LineSpec2I{Direction: vec2.T{1, 0}}},
		}}
		_, err := evaluateOne(t, e, s, "reflect", "grid", "half")
		assert.EqualError(t, err, "point (0.5, 1) is not on the integer grid")
	})

	t.Run("through Evaluate", func(t *testing.T) {
		s := LoadFixtureScene("basic.yaml")
		s.Queries = append(s.Queries, Query{Op: "perp", Args: []string{"tri"}})
		results, err := e.Evaluate(context.Background(), s)
		assert.Nil(t, results)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query 12 perp(tri)")
		assert.Contains(t, err.Error(), "can't find the perpendicular of a triangle2")
	})
}

func TestEvaluateOperations(t *testing.T) {
	text := `
shapes:
  - {name: o, point2: [0, 0]}
  - {name: q, point2: [3, 4]}
  - {name: r, point3: [1, 2, 2]}
  - {name: s, point3: [0, 0, 0]}
  - {name: up, line3: {direction: [0, 0, 1], location: [0, 0, 0]}}
  - {name: across, line3: {direction: [1, 0, 0], location: [0, 0, 5]}}
  - {name: skew, line3: {direction: [0, 1, 0], location: [1, 0, 0]}}
  - {name: ceiling, plane: {normal: [0, 0, 2], location: [0, 0, 3]}}
  - {name: ceiling2, plane: {normal: [0, 0, -1], location: [7, 7, 3]}}
  - {name: flat, line2: {direction: [1, 0], location: [0, 1]}}
  - {name: a, line2i: {direction: [1, 1], location: [0, 0]}}
  - {name: b, line2i: {direction: [1, -1], location: [0, 4]}}
  - {name: c, line2i: {direction: [2, 2], location: [0, 3]}}
  - {name: seg, segment2: [[3, -1], [-2, 4]]}
  - {name: segi, segment2i: [[4, 1], [1, 3]]}
  - {name: diag, segment2i: [[0, 0], [2, 2]]}
  - {name: miss1, segment2: [[0, 0], [1, 1]]}
  - {name: miss2, segment2: [[0, 4], [1, 3]]}
  - {name: tri3, triangle3: [[0, 0, 5], [3, 0, 5], [0, 3, 5]]}
`
	s, err := Load(strings.NewReader(text))
	require.NoError(t, err)
	e := NewEvaluator()

	cases := []struct {
		op         string
		args       []string
		value      string
		degenerate bool
	}{
		{"distance", []string{"o", "q"}, "5", false},
		{"distance", []string{"s", "r"}, "3", false},
		{"distance", []string{"ceiling", "s"}, "-3", false},
		{"distance", []string{"up", "r"}, "2.23606797749979", false},
		{"intersect", []string{"up", "across"}, "(0, 0, 5)", false},
		{"intersect", []string{"up", "skew"}, "(+Inf, +Inf, +Inf)", true},
		{"intersect", []string{"across", "ceiling"}, "(+Inf, +Inf, +Inf)", true},
		{"intersect", []string{"up", "ceiling"}, "(0, 0, 3)", false},
		{"intersect", []string{"ceiling", "ceiling2"}, "none", true},
		{"intersect", []string{"a", "b"}, "(2, 2)", false},
		{"intersect", []string{"a", "c"}, "(inf, -inf)", true},
		{"intersect", []string{"miss1", "miss2"}, "none", true},
		{"contains", []string{"ceiling", "ceiling2"}, "true", false},
		{"contains", []string{"up", "s"}, "true", false},
		{"contains", []string{"tri3", "r"}, "false", false},
		{"project", []string{"ceiling", "r"}, "(1, 2, 3)", false},
		{"project", []string{"ceiling", "across"}, "line through (0, 0, 3) along (-4, 0, 0)", false},
		{"project", []string{"a", "q"}, "(4, 4)", false},
		{"reflect", []string{"ceiling", "r"}, "(1, 2, 4)", false},
		{"reflect", []string{"flat", "flat"}, "line through (0, 1) along (1, 0)", false},
		{"classify", []string{"tri3"}, "isosceles, apex A, right angle A", false},
		{"area", []string{"tri3"}, "4.5", false},
		{"centroid", []string{"tri3"}, "(1, 1, 5)", false},
		{"bounds", []string{"seg"}, "(-2, -1) to (3, 4)", false},
		{"bounds", []string{"segi"}, "(1, 1) to (4, 3)", false},
		{"bounds", []string{"diag"}, "(0, 0) to (2, 2)", false},
		{"perp", []string{"flat"}, "line through (0, 1) along (0, 1)", false},
		{"perp", []string{"a"}, "line through (0, 0) along (-1, 1)", false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s(%s)", c.op, strings.Join(c.args, ", ")), func(t *testing.T) {
			result, err := evaluateOne(t, e, s, c.op, c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.value, result.Value)
			assert.Equal(t, c.degenerate, result.Degenerate)
		})
	}
}

func TestEvaluateTolerance(t *testing.T) {
	text := "shapes:\n  - {name: t, triangle2: [[0, 0], [1, 0], [0.5, 0.8660254]]}\nqueries:\n  - {op: classify, args: [t]}\n"
	s, err := Load(strings.NewReader(text))
	require.NoError(t, err)

	results, err := NewEvaluator().Evaluate(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "isosceles, apex C, right angle none", results[0].Value)

	results, err = NewEvaluator(WithTolerance(geom.Tolerance)).Evaluate(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "equilateral, apex none, right angle none", results[0].Value)
}

func TestEvaluateCancelled(t *testing.T) {
	s := LoadFixtureScene("basic.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewEvaluator().Evaluate(ctx, s)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := LoadFixtureScene("basic.yaml")

	_, err := NewEvaluator(WithLogger(zap.New(core))).Evaluate(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("resolved scene").Len())

	evaluated := logs.FilterMessage("evaluated query")
	require.Equal(t, len(s.Queries), evaluated.Len())
	degenerate := 0
	for _, entry := range evaluated.All() {
		if entry.ContextMap()["degenerate"] == true {
			degenerate++
		}
	}
	assert.Equal(t, 1, degenerate)
}

func TestOperations(t *testing.T) {
	assert.Equal(t, []string{
		"area", "bounds", "centroid", "classify", "contains",
		"distance", "intersect", "perp", "project", "reflect",
	}, Operations())
}
