package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/neoflux-dev/neoflux/internal/diag"
)

const (
	// FileName is the name of the configuration file.
	FileName = "neoflux.json"

	// DefaultInspectorAddr is where the inspector listens.
	DefaultInspectorAddr = "localhost:9230"

	// DefaultSnapshotDir is where the dir backend stores snapshots.
	DefaultSnapshotDir = ".neoflux/snapshots"

	// DefaultBenchIterations is the per-scenario sample count.
	DefaultBenchIterations = 100
)

// Config is the complete neoflux.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Debug controls runtime debug logging.
	Debug DebugConfig `json:"debug,omitempty"`

	// Inspector configures the devtools server.
	Inspector InspectorConfig `json:"inspector,omitempty"`

	// Metrics configures Prometheus export.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Bench configures the benchmark harness.
	Bench BenchConfig `json:"bench,omitempty"`

	// Persist configures snapshot storage.
	Persist PersistConfig `json:"persist,omitempty"`

	// configPath is where the config was loaded from, "" for defaults.
	configPath string
}

// DebugConfig controls runtime debug logging.
type DebugConfig struct {
	// Enabled routes flush/disposal diagnostics through slog at debug
	// level.
	Enabled bool `json:"enabled,omitempty"`

	// LogLevel is the minimum level for CLI logging.
	LogLevel string `json:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// InspectorConfig configures the devtools server.
type InspectorConfig struct {
	// Addr is the inspector listen address.
	Addr string `json:"addr,omitempty" validate:"omitempty,hostname_port"`

	// Metrics mounts the Prometheus endpoint on the inspector when true.
	Metrics bool `json:"metrics,omitempty"`
}

// MetricsConfig configures Prometheus export.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" validate:"omitempty,alphanum"`

	// Subsystem is the metrics subsystem.
	Subsystem string `json:"subsystem,omitempty" validate:"omitempty,alphanum"`
}

// BenchConfig configures the benchmark harness.
type BenchConfig struct {
	// Scenarios is the path to a YAML scenario file. Empty runs the
	// built-in suite.
	Scenarios string `json:"scenarios,omitempty"`

	// Iterations is the per-scenario sample count.
	Iterations int `json:"iterations,omitempty" validate:"omitempty,min=1,max=1000000"`
}

// PersistConfig configures snapshot storage.
type PersistConfig struct {
	// Backend selects the snapshot backend.
	Backend string `json:"backend,omitempty" validate:"omitempty,oneof=dir s3"`

	// Dir is the local snapshot directory (dir backend).
	Dir string `json:"dir,omitempty"`

	// Bucket is the S3 bucket (s3 backend).
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the S3 key prefix (s3 backend).
	Prefix string `json:"prefix,omitempty"`
}

// Default returns the configuration used when no neoflux.json exists.
func Default() *Config {
	return &Config{
		Debug: DebugConfig{
			LogLevel: "info",
		},
		Inspector: InspectorConfig{
			Addr: DefaultInspectorAddr,
		},
		Metrics: MetricsConfig{
			Namespace: "neoflux",
		},
		Bench: BenchConfig{
			Iterations: DefaultBenchIterations,
		},
		Persist: PersistConfig{
			Backend: "dir",
			Dir:     DefaultSnapshotDir,
		},
	}
}

// validate is shared; validator instances cache struct metadata.
var validate = validator.New()

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, diag.New("C001").Wrap(err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, diag.New("C002").Wrap(err).
			WithSuggestion("check for trailing commas or unquoted keys")
	}
	cfg.configPath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find searches for neoflux.json in dir and its parents, returning the
// path of the first hit.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", diag.New("C001")
		}
		dir = parent
	}
}

// LoadOrDefault finds and loads the project configuration, falling back
// to defaults when no file exists. Parse and validation failures of an
// existing file are still errors.
func LoadOrDefault(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		var d *diag.Diagnostic
		if errors.As(err, &d) && d.Code == "C001" {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

// Validate checks field constraints, wrapping failures in a C003
// diagnostic.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return diag.New("C003", fmt.Sprintf("%s failed %q", first.Namespace(), first.Tag())).Wrap(err)
		}
		return diag.New("C003", err.Error()).Wrap(err)
	}
	return nil
}

// Path returns where the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}

// Save writes the configuration to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
