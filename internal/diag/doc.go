// Package diag provides structured diagnostics for the CLI and the
// configuration loader.
//
// Each diagnostic carries a stable code (R001, C001, ...), a category, a
// short message, and optional detail, suggestion, example, and
// documentation link, rendered for the terminal by Format. Diagnostics
// wrap underlying errors and support errors.Is/As.
//
// The reactive core does not return Diagnostics on its hot paths; the
// codes exist so the surfaces users interact with (CLI, config, bench,
// inspector) can point at the same documented failure modes.
package diag
