package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/neoflux-dev/neoflux/internal/diag"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q", cfg.Inspector.Addr)
	}
	if cfg.Persist.Backend != "dir" {
		t.Errorf("Persist.Backend = %q", cfg.Persist.Backend)
	}
	if cfg.Bench.Iterations != DefaultBenchIterations {
		t.Errorf("Bench.Iterations = %d", cfg.Bench.Iterations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"name": "demo",
		"debug": {"enabled": true, "logLevel": "debug"},
		"inspector": {"addr": "localhost:9999"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if !cfg.Debug.Enabled || cfg.Debug.LogLevel != "debug" {
		t.Errorf("Debug = %+v", cfg.Debug)
	}
	if cfg.Inspector.Addr != "localhost:9999" {
		t.Errorf("Inspector.Addr = %q", cfg.Inspector.Addr)
	}
	// Sections the file omits keep their defaults.
	if cfg.Bench.Iterations != DefaultBenchIterations {
		t.Errorf("Bench.Iterations = %d, want default", cfg.Bench.Iterations)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != "C001" {
		t.Fatalf("err = %v, want C001", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"name": "demo",}`)

	_, err := Load(path)
	var d *diag.Diagnostic
	if !errors.As(err, &d) || d.Code != "C002" {
		t.Fatalf("err = %v, want C002", err)
	}
}

func TestLoadValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad log level", `{"debug": {"logLevel": "verbose"}}`},
		{"bad inspector addr", `{"inspector": {"addr": "no-port"}}`},
		{"bad backend", `{"persist": {"backend": "redis"}}`},
		{"zero iterations", `{"bench": {"iterations": -5}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.content)
			_, err := Load(path)
			var d *diag.Diagnostic
			if !errors.As(err, &d) || d.Code != "C003" {
				t.Fatalf("err = %v, want C003", err)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := filepath.Join(root, FileName)
	if path != want {
		t.Errorf("Find = %q, want %q", path, want)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty for defaults", cfg.Path())
	}
	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q", cfg.Inspector.Addr)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Default()
	cfg.Name = "roundtrip"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "roundtrip" {
		t.Errorf("Name = %q", loaded.Name)
	}
}
