package scene

import (
	"embed"
	"log"
)

// Fixtures are available by name in this fixtures/ directory, with extension.
// Anything that goes wrong while loading one is fatal.

//go:embed fixtures
var fixtures embed.FS

func LoadFixtureScene(name string) *Scene {
	fixture, err := fixtures.Open("fixtures/" + name)
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	s, err := Load(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return s
}

func LoadFixtureSVG(name string) ([]Shape, error) {
	fixture, err := fixtures.Open("fixtures/" + name)
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()
	return LoadSVG(fixture)
}
