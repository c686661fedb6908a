package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neoflux-dev/neoflux/internal/diag"
)

// Shape selects a dependency-graph topology.
type Shape string

const (
	// ShapePropagate builds Width independent chains of Height memos off
	// a single source signal, each chain terminated by an effect.
	ShapePropagate Shape = "propagate"

	// ShapeDiamond builds Width diamonds: source fans out to two memos
	// that join in a third, watched by an effect.
	ShapeDiamond Shape = "diamond"

	// ShapeDense builds Height layers of Width memos where every memo
	// reads all memos of the previous layer.
	ShapeDense Shape = "dense"
)

// Scenario is one benchmarked graph topology.
type Scenario struct {
	Name   string `yaml:"name"`
	Shape  Shape  `yaml:"shape"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Iterations overrides the suite-level sample count when positive.
	Iterations int `yaml:"iterations,omitempty"`
}

func (s Scenario) validate() error {
	switch s.Shape {
	case ShapePropagate, ShapeDiamond, ShapeDense:
	default:
		return fmt.Errorf("scenario %q: unknown shape %q", s.Name, s.Shape)
	}
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("scenario %q: width and height must be positive", s.Name)
	}
	return nil
}

// DefaultSuite is the built-in scenario set, a sweep over chain width
// and depth plus the two non-chain topologies.
func DefaultSuite() []Scenario {
	var suite []Scenario
	for _, w := range []int{1, 10, 100, 1000} {
		for _, h := range []int{1, 10, 100, 1000} {
			// 1000x1000 builds a million memos; keep the sweep bounded.
			if w*h > 100_000 {
				continue
			}
			suite = append(suite, Scenario{
				Name:   fmt.Sprintf("propagate %d x %d", w, h),
				Shape:  ShapePropagate,
				Width:  w,
				Height: h,
			})
		}
	}
	suite = append(suite,
		Scenario{Name: "diamond x 100", Shape: ShapeDiamond, Width: 100, Height: 1},
		Scenario{Name: "dense 10 x 10", Shape: ShapeDense, Width: 10, Height: 10},
	)
	return suite
}

// suiteFile is the YAML document shape for a scenario file.
type suiteFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadSuite reads scenarios from a YAML file.
func LoadSuite(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f suiteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, diag.Newf(diag.CategoryCLI, "invalid scenario file %s: %v", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, diag.Newf(diag.CategoryCLI, "scenario file %s defines no scenarios", path)
	}
	for _, s := range f.Scenarios {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	return f.Scenarios, nil
}
