// Package features groups the higher-level state abstractions built on
// the reactive core.
//
// # Subsystems
//
//   - store: path-addressed reactive state trees
//   - resource: async data loading with loading/error/ready states
//   - action: structured async mutations with concurrency policies
//
// Each subsystem is its own sub-package and can be imported
// independently:
//
//	import "github.com/neoflux-dev/neoflux/pkg/features/store"
//	import "github.com/neoflux-dev/neoflux/pkg/features/resource"
//	import "github.com/neoflux-dev/neoflux/pkg/features/action"
//
// The root neoflux package re-exports the common entry points.
package features
