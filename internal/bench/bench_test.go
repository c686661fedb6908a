package bench

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPropagate(t *testing.T) {
	s := Scenario{Name: "propagate 2x3", Shape: ShapePropagate, Width: 2, Height: 3}
	r, err := Run(s, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// source + 2 chains of (3 memos + 1 effect)
	if r.Nodes != 1+2*4 {
		t.Errorf("Nodes = %d, want 9", r.Nodes)
	}
	if r.Iterations != 10 {
		t.Errorf("Iterations = %d", r.Iterations)
	}
	if r.Max <= 0 {
		t.Errorf("Max = %v, want positive", r.Max)
	}
}

func TestRunDiamond(t *testing.T) {
	s := Scenario{Name: "diamond", Shape: ShapeDiamond, Width: 5, Height: 1}
	r, err := Run(s, 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Nodes != 1+5*4 {
		t.Errorf("Nodes = %d, want 21", r.Nodes)
	}
}

func TestRunDense(t *testing.T) {
	s := Scenario{Name: "dense", Shape: ShapeDense, Width: 3, Height: 2}
	r, err := Run(s, 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// source + 2 layers of 3 memos + 3 effects
	if r.Nodes != 1+6+3 {
		t.Errorf("Nodes = %d, want 10", r.Nodes)
	}
}

func TestScenarioIterationsOverride(t *testing.T) {
	s := Scenario{Name: "override", Shape: ShapePropagate, Width: 1, Height: 1, Iterations: 3}
	r, err := Run(s, 100)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Iterations != 3 {
		t.Errorf("Iterations = %d, want override 3", r.Iterations)
	}
}

func TestRunRejectsInvalidShape(t *testing.T) {
	if _, err := Run(Scenario{Name: "bad", Shape: "spiral", Width: 1, Height: 1}, 1); err == nil {
		t.Fatal("want error for unknown shape")
	}
}

func TestDefaultSuiteBounded(t *testing.T) {
	for _, s := range DefaultSuite() {
		if s.Width*s.Height > 100_000 {
			t.Errorf("scenario %q too large: %d nodes per chain set", s.Name, s.Width*s.Height)
		}
		if err := s.validate(); err != nil {
			t.Errorf("built-in scenario invalid: %v", err)
		}
	}
}

func TestLoadSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	doc := `scenarios:
  - name: tiny chain
    shape: propagate
    width: 2
    height: 2
  - name: wide diamond
    shape: diamond
    width: 50
    height: 1
    iterations: 25
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	suite, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	if len(suite) != 2 {
		t.Fatalf("len = %d", len(suite))
	}
	if suite[0].Shape != ShapePropagate || suite[1].Iterations != 25 {
		t.Errorf("suite = %+v", suite)
	}
}

func TestLoadSuiteRejectsEmptyAndInvalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("scenarios: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSuite(empty); err == nil {
		t.Error("want error for empty suite")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("scenarios:\n  - name: x\n    shape: spiral\n    width: 1\n    height: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSuite(bad); err == nil {
		t.Error("want error for invalid shape")
	}
}

func TestRender(t *testing.T) {
	r, err := Run(Scenario{Name: "render sample", Shape: ShapePropagate, Width: 1, Height: 1}, 3)
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	Render(&b, []Result{r})
	out := b.String()
	if !strings.Contains(out, "render sample") {
		t.Errorf("table missing scenario name:\n%s", out)
	}
	if !strings.Contains(out, "SCENARIO") || !strings.Contains(out, "P99") {
		t.Errorf("table missing headers:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	r, err := Run(Scenario{Name: "json sample", Shape: ShapeDiamond, Width: 1, Height: 1}, 3)
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := RenderJSON(&b, []Result{r}); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(b.String()), &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "json sample" {
		t.Errorf("rows = %v", rows)
	}
	if _, ok := rows[0]["p99Ns"]; !ok {
		t.Error("missing p99Ns field")
	}
}
