// Package neoflux provides the public API for the neoflux reactive
// state engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/neoflux-dev/neoflux"
//
// Usage:
//
//	count := neoflux.NewSignal(0)
//	doubled := neoflux.NewMemo(func() int { return count.Get() * 2 })
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//		fmt.Println(doubled.Get())
//		return nil
//	})
//	count.Set(1)
//
// The full surface lives in the subpackages: pkg/neoflux (core),
// pkg/features/{store,resource,action}, pkg/observe, pkg/inspect, and
// pkg/persist. This package only re-exports the common entry points.
package neoflux
