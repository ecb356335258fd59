// Package scene describes collections of named shapes and the questions to ask
// about them, in YAML or imported from SVG, and evaluates those questions with
// the geom package.
package scene

import (
	"io"
	"os"
	"strings"

	"github.com/osuushi/geom/internal/dbg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Query asks one question about shapes in the scene, by name. See Operations
// for the supported operations.
type Query struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args,flow"`
}

func (q Query) String() string {
	return q.Op + "(" + strings.Join(q.Args, ", ") + ")"
}

type Scene struct {
	Shapes  []Shape `yaml:"shapes"`
	Queries []Query `yaml:"queries,omitempty"`
}

// Load decodes a scene from YAML. Unknown keys are errors, so that a typo in a
// geometry key doesn't silently produce a shape with no geometry.
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, errors.Wrap(err, "decoding scene")
	}
	return &s, nil
}

func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening scene %q", path)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading scene %q", path)
	}
	return s, nil
}

func (s *Scene) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encoding scene")
	}
	return enc.Close()
}

// Resolve converts every shape into its geom value, keyed by name. Shapes
// without a name are given a readable one first, which is written back into
// the scene.
func (s *Scene) Resolve() (shapes map[string]interface{}, err error) {
	defer func() {
		recoveredErr := HandleScenePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()

	s.nameShapes()
	shapes = make(map[string]interface{}, len(s.Shapes))
	for _, shape := range s.Shapes {
		if _, ok := shapes[shape.Name]; ok {
			fatalf("duplicate shape name %q", shape.Name)
		}
		value, err := shape.Value()
		if err != nil {
			fatalf("%v", err)
		}
		shapes[shape.Name] = value
	}
	return shapes, nil
}

// Names are written back into the shapes, so the Namer only needs to outlive
// this call.
func (s *Scene) nameShapes() {
	namer := dbg.NewNamer()
	for _, shape := range s.Shapes {
		namer.Reserve(shape.Name)
	}
	for i := range s.Shapes {
		if s.Shapes[i].Name == "" {
			s.Shapes[i].Name = namer.Name(&s.Shapes[i])
		}
	}
}
