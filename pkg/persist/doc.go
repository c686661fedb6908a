// Package persist saves and restores store snapshots through pluggable
// backends.
//
// A Backend is a small blob interface with directory and S3
// implementations. SaveStore and LoadStore bridge it to the reactive
// store: snapshots travel as JSON, so exports are diffable and readable.
//
//	backend, _ := persist.NewDirBackend(".neoflux/snapshots")
//	_ = persist.SaveStore(ctx, backend, "app-state.json", s)
//	restored, _ := persist.LoadStore(ctx, backend, "app-state.json")
package persist
