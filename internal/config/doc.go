// Package config loads and validates neoflux.json.
//
// The file is optional: Find walks from a starting directory to the
// filesystem root looking for it, and LoadOrDefault falls back to
// Default when nothing is found. Field constraints are declared as
// validator struct tags and surfaced as C003 diagnostics.
package config
