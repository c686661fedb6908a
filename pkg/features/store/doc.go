// Package store provides a path-addressable reactive state tree.
//
// A Store holds one nested map of values. Paths are dot-separated keys into
// that tree ("user.profile.name"). Reads are tracked per path, so an effect
// or memo that reads one path reruns only when a write touches that path,
// an ancestor of it, or a descendant of it. Writes to sibling paths never
// wake unrelated readers.
//
// Usage:
//
//	s := store.New(map[string]any{
//	    "user": map[string]any{"name": "Ada", "age": 36},
//	})
//
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    name, _ := s.Get("user.name")
//	    fmt.Println("name is", name)
//	    return nil
//	})
//
//	s.Set("user.name", "Grace") // effect reruns
//	s.Set("user.age", 41)       // effect does not
//
// Writes rebuild the containers along the written path instead of mutating
// them, so values handed out by Get and Snapshot are never changed behind a
// reader's back.
package store
