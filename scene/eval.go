package scene

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"sort"
	"strconv"

	"github.com/osuushi/geom"
	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the answer to one query. Degenerate is set when the geometry had
// no proper answer, such as parallel lines or segments that miss each other;
// Value then shows the sentinel (or "none").
type Result struct {
	Query      Query
	Value      string
	Degenerate bool
}

func (r Result) String() string {
	return r.Query.String() + " = " + r.Value
}

type Evaluator struct {
	logger    *zap.Logger
	tolerance float64
	workers   int
}

type EvaluatorOption func(*Evaluator)

func WithLogger(logger *zap.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithTolerance makes classify compare triangle sides within tolerance instead
// of exactly.
func WithTolerance(tolerance float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.tolerance = tolerance
	}
}

// WithWorkers bounds how many queries are evaluated at once.
func WithWorkers(workers int) EvaluatorOption {
	return func(e *Evaluator) {
		e.workers = workers
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		logger:  zap.NewNop(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// Evaluate answers every query in the scene, concurrently. Results are in
// query order. The first failing query cancels the rest and its error is
// returned.
func (e *Evaluator) Evaluate(ctx context.Context, s *Scene) ([]Result, error) {
	shapes, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("resolved scene", zap.Int("shapes", len(shapes)), zap.Int("queries", len(s.Queries)))

	results := make([]Result, len(s.Queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, query := range s.Queries {
		i, query := i, query
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := e.EvaluateQuery(query, shapes)
			if err != nil {
				return errors.Wrapf(err, "query %d %s", i, query)
			}
			e.logger.Debug("evaluated query",
				zap.Int("index", i),
				zap.Stringer("query", query),
				zap.String("value", result.Value),
				zap.Bool("degenerate", result.Degenerate),
			)
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvaluateQuery answers a single query against resolved shapes (see
// Scene.Resolve).
func (e *Evaluator) EvaluateQuery(query Query, shapes map[string]interface{}) (result Result, err error) {
	defer func() {
		recoveredErr := HandleScenePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()

	op, ok := operations[query.Op]
	if !ok {
		fatalf("unknown operation %q", query.Op)
	}
	if len(query.Args) != op.arity {
		fatalf("%s takes %d argument(s), got %d", query.Op, op.arity, len(query.Args))
	}
	args := make([]interface{}, len(query.Args))
	for i, name := range query.Args {
		value, ok := shapes[name]
		if !ok {
			fatalf("unknown shape %q", name)
		}
		args[i] = value
	}

	value, degenerate := op.apply(e, args)
	return Result{Query: query, Value: formatValue(value), Degenerate: degenerate}, nil
}

// Each operation returns its answer and whether that answer is degenerate.
// Argument combinations an operation doesn't support end in unsupported.
type operation struct {
	arity int
	apply func(e *Evaluator, args []interface{}) (interface{}, bool)
}

var operations = map[string]operation{
	"intersect": {2, intersect},
	"reflect":   {2, reflect},
	"project":   {2, project},
	"contains":  {2, contains},
	"distance":  {2, distance},
	"classify":  {1, classify},
	"area":      {1, area},
	"centroid":  {1, centroid},
	"bounds":    {1, bounds},
	"perp":      {1, perp},
}

// Operations lists the supported query operations.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unsupported(op string, args []interface{}) {
	if len(args) == 1 {
		fatalf("can't %s a %s", op, kindOf(args[0]))
	}
	fatalf("can't %s a %s and a %s", op, kindOf(args[0]), kindOf(args[1]))
}

func intersect(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch a := args[0].(type) {
	case geom.Line2:
		if b, ok := args[1].(geom.Line2); ok {
			p, ok := a.Intersection(b)
			return p, !ok
		}
	case geom.Line2I:
		if b, ok := args[1].(geom.Line2I); ok {
			p, ok := a.Intersection(b)
			return p, !ok
		}
	case geom.Line3:
		switch b := args[1].(type) {
		case geom.Line3:
			p, ok := a.Intersection(b)
			return p, !ok
		case geom.Plane:
			p, ok := b.LineIntersection(a)
			return p, !ok
		}
	case geom.Plane:
		switch b := args[1].(type) {
		case geom.Plane:
			line, ok := a.PlaneIntersection(b)
			if !ok {
				return nil, true
			}
			return line, false
		case geom.Line3:
			p, ok := a.LineIntersection(b)
			return p, !ok
		}
	case geom.Segment2:
		if b, ok := args[1].(geom.Segment2); ok {
			p, ok := a.Intersects(b)
			if !ok {
				return nil, true
			}
			return p, false
		}
	}
	unsupported("intersect", args)
	return nil, false
}

// The first argument is the mirror.
func reflect(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch mirror := args[0].(type) {
	case geom.Line2:
		switch target := args[1].(type) {
		case vec2.T:
			return mirror.ReflectPoint(target), false
		case geom.Line2:
			return mirror.ReflectLine(target), false
		}
	case geom.Line2I:
		switch target := args[1].(type) {
		case vec2.T:
			return mirror.ReflectPoint(gridPoint(target)), false
		case geom.Line2I:
			return mirror.ReflectLine(target), false
		}
	case geom.Line3:
		switch target := args[1].(type) {
		case vec3.T:
			return mirror.ReflectPoint(target), false
		case geom.Line3:
			return mirror.ReflectLine(target), false
		}
	case geom.Plane:
		switch target := args[1].(type) {
		case vec3.T:
			return mirror.ReflectPoint(target), false
		case geom.Line3:
			return mirror.ReflectLine(target), false
		}
	}
	unsupported("reflect", args)
	return nil, false
}

// The first argument is what gets projected onto.
func project(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch onto := args[0].(type) {
	case geom.Line2:
		if target, ok := args[1].(vec2.T); ok {
			return onto.ProjectPoint(target), false
		}
	case geom.Line2I:
		if target, ok := args[1].(vec2.T); ok {
			return onto.ProjectPoint(gridPoint(target)), false
		}
	case geom.Line3:
		if target, ok := args[1].(vec3.T); ok {
			return onto.ProjectPoint(target), false
		}
	case geom.Plane:
		switch target := args[1].(type) {
		case vec3.T:
			return onto.ProjectPoint(target), false
		case geom.Line3:
			return onto.ProjectLine(target), false
		}
	}
	unsupported("project", args)
	return nil, false
}

func contains(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch container := args[0].(type) {
	case geom.Line2:
		if target, ok := args[1].(vec2.T); ok {
			return container.Contains(target), false
		}
	case geom.Line3:
		if target, ok := args[1].(vec3.T); ok {
			return container.Contains(target), false
		}
	case geom.Plane:
		switch target := args[1].(type) {
		case vec3.T:
			return container.ContainsPoint(target), false
		case geom.Line3:
			return container.ContainsLine(target), false
		case geom.Plane:
			return container.GeometricallyEquals(target), false
		}
	case geom.Triangle2:
		if target, ok := args[1].(vec2.T); ok {
			return container.Contains(target), false
		}
	case geom.Triangle3:
		if target, ok := args[1].(vec3.T); ok {
			return container.Contains(target), false
		}
	}
	fatalf("can't test containment of a %s in a %s", kindOf(args[1]), kindOf(args[0]))
	return nil, false
}

// Distance from a plane is signed.
func distance(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch a := args[0].(type) {
	case vec2.T:
		if b, ok := args[1].(vec2.T); ok {
			d := vec2.Sub(&b, &a)
			return d.Length(), false
		}
	case vec3.T:
		if b, ok := args[1].(vec3.T); ok {
			d := vec3.Sub(&b, &a)
			return d.Length(), false
		}
	case geom.Line2:
		if b, ok := args[1].(vec2.T); ok {
			return a.DistanceFromPoint(b), false
		}
	case geom.Line3:
		if b, ok := args[1].(vec3.T); ok {
			return a.DistanceFromPoint(b), false
		}
	case geom.Plane:
		if b, ok := args[1].(vec3.T); ok {
			return a.DistanceFromPoint(b), false
		}
	}
	unsupported("distance", args)
	return nil, false
}

func classify(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch t := args[0].(type) {
	case geom.Triangle2:
		if e.tolerance > 0 {
			return t.ApproxProperties(e.tolerance), false
		}
		return t.Properties(), false
	case geom.Triangle3:
		if e.tolerance > 0 {
			return t.ApproxProperties(e.tolerance), false
		}
		return t.Properties(), false
	}
	unsupported("classify", args)
	return nil, false
}

func area(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch t := args[0].(type) {
	case geom.Triangle2:
		return t.Area(), false
	case geom.Triangle3:
		return t.Area(), false
	}
	unsupported("find the area of", args)
	return nil, false
}

func centroid(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch t := args[0].(type) {
	case geom.Triangle2:
		return t.Centroid(), false
	case geom.Triangle3:
		return t.Centroid(), false
	}
	unsupported("find the centroid of", args)
	return nil, false
}

func bounds(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch s := args[0].(type) {
	case geom.Segment2:
		return s.Bounds(), false
	case geom.Segment2I:
		return s.Bounds(), false
	}
	unsupported("bound", args)
	return nil, false
}

func perp(e *Evaluator, args []interface{}) (interface{}, bool) {
	switch l := args[0].(type) {
	case geom.Line2:
		return l.Perp(), false
	case geom.Line2I:
		return l.Perp(), false
	}
	unsupported("find the perpendicular of", args)
	return nil, false
}

// Integer lines work on grid points, so a point given to one must have integer
// coordinates.
func gridPoint(p vec2.T) image.Point {
	if p[0] != math.Trunc(p[0]) || p[1] != math.Trunc(p[1]) {
		fatalf("point %s is not on the integer grid", formatValue(p))
	}
	return image.Pt(int(p[0]), int(p[1]))
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0 // no -0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "none"
	case float64:
		return formatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	case vec2.T:
		return fmt.Sprintf("(%s, %s)", formatFloat(v[0]), formatFloat(v[1]))
	case vec3.T:
		return fmt.Sprintf("(%s, %s, %s)", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	case image.Point:
		if geom.IsInfinite2I(v) {
			return "(inf, -inf)"
		}
		return fmt.Sprintf("(%d, %d)", v.X, v.Y)
	case geom.Line2:
		return fmt.Sprintf("line through %s along %s", formatValue(v.Location), formatValue(v.Direction()))
	case geom.Line2I:
		return fmt.Sprintf("line through %s along %s", formatValue(v.Location), formatValue(v.Direction()))
	case geom.Line3:
		return fmt.Sprintf("line through %s along %s", formatValue(v.Location), formatValue(v.Direction))
	case geom.Rect2:
		return fmt.Sprintf("%s to %s", formatValue(v.Min), formatValue(v.Max))
	case geom.Rect2I:
		return fmt.Sprintf("%s to %s", formatValue(v.Min), formatValue(v.Max))
	case geom.TriangleProperties:
		return fmt.Sprintf("%s, apex %s, right angle %s", v.Type, v.Apex, v.RightAngle)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
