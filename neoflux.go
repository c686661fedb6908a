package neoflux

import (
	"context"
	"time"

	"github.com/neoflux-dev/neoflux/pkg/features/action"
	"github.com/neoflux-dev/neoflux/pkg/features/resource"
	"github.com/neoflux-dev/neoflux/pkg/features/store"
	core "github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// =============================================================================
// Reactive primitives (re-export from pkg/neoflux)
// =============================================================================

// Signal is a writable reactive value.
type Signal[T any] = core.Signal[T]

// Memo is a cached derived value that recomputes lazily when its
// sources change.
type Memo[T any] = core.Memo[T]

// Effect is a side effect that reruns when its tracked sources change.
type Effect = core.Effect

// Cleanup is run before an effect reruns and when it is disposed.
type Cleanup = core.Cleanup

// Readable is the read side shared by signals and memos.
type Readable[T any] = core.Readable[T]

// Writable extends Readable with write access.
type Writable[T any] = core.Writable[T]

// NewSignal creates a reactive signal holding initial.
//
// Example:
//
//	count := neoflux.NewSignal(0)
//	count.Set(count.Peek() + 1)
func NewSignal[T any](initial T) *Signal[T] {
	return core.NewSignal(initial)
}

// NewMemo creates a derived value that automatically tracks the
// signals and memos its compute function reads.
func NewMemo[T any](compute func() T) *Memo[T] {
	return core.NewMemo(compute)
}

// CreateEffect registers a side effect that runs once immediately and
// again whenever a tracked source changes.
var CreateEffect = core.CreateEffect

// EffectOption configures CreateEffect.
type EffectOption = core.EffectOption

// EffectName attaches a name for logging and the inspector.
var EffectName = core.EffectName

// Batch groups signal writes into a single flush.
var Batch = core.Batch

// BatchValue is Batch for functions that return a value.
func BatchValue[T any](fn func() T) T {
	return core.BatchValue(fn)
}

// Untracked runs fn without recording dependencies.
var Untracked = core.Untracked

// UntrackedValue is Untracked for functions that return a value.
func UntrackedValue[T any](fn func() T) T {
	return core.UntrackedValue(fn)
}

// =============================================================================
// Ownership and scopes
// =============================================================================

// Owner is a disposal scope for signals, memos, and effects.
type Owner = core.Owner

// NewOwner creates a child scope of parent.
var NewOwner = core.NewOwner

// CreateRoot runs fn under a fresh scope and hands it the scope's
// dispose function.
func CreateRoot[T any](fn func(dispose func()) T) T {
	return core.CreateRoot(fn)
}

// CurrentOwner returns the scope owning nodes created on this
// goroutine, or nil outside any scope.
var CurrentOwner = core.CurrentOwner

// OnCleanup registers fn to run when the current scope is disposed.
var OnCleanup = core.OnCleanup

// =============================================================================
// Typed signals
// =============================================================================

type (
	BoolSignal    = core.BoolSignal
	IntSignal     = core.IntSignal
	Int64Signal   = core.Int64Signal
	Float64Signal = core.Float64Signal
	StringSignal  = core.StringSignal
)

// MapSignal is a Signal[map[K]V] with per-key helpers.
type MapSignal[K comparable, V any] = core.MapSignal[K, V]

// SliceSignal is a Signal[[]T] with element helpers.
type SliceSignal[T any] = core.SliceSignal[T]

var (
	NewBoolSignal    = core.NewBoolSignal
	NewIntSignal     = core.NewIntSignal
	NewInt64Signal   = core.NewInt64Signal
	NewFloat64Signal = core.NewFloat64Signal
	NewStringSignal  = core.NewStringSignal
)

// NewMapSignal creates a map signal seeded with initial.
func NewMapSignal[K comparable, V any](initial map[K]V) *MapSignal[K, V] {
	return core.NewMapSignal(initial)
}

// NewSliceSignal creates a slice signal seeded with initial.
func NewSliceSignal[T any](initial []T) *SliceSignal[T] {
	return core.NewSliceSignal(initial)
}

// =============================================================================
// Effect helpers
// =============================================================================

// Interval runs fn on a fixed period until the returned Cleanup or the
// owning scope stops it.
var Interval = core.Interval

// IntervalImmediate makes Interval fire once up front.
var IntervalImmediate = core.IntervalImmediate

// IntervalOption configures Interval.
type IntervalOption = core.IntervalOption

// Timeout runs fn once after d.
var Timeout = core.Timeout

// Debounce returns a Readable that trails source by d.
func Debounce[T any](source Readable[T], d time.Duration) Readable[T] {
	return core.Debounce(source, d)
}

// Stream is a push source that SubscribeStream can watch.
type Stream[T any] = core.Stream[T]

// SubscribeStream pipes stream values into fn until cleaned up.
func SubscribeStream[T any](stream Stream[T], fn func(T)) Cleanup {
	return core.SubscribeStream(stream, fn)
}

// GoLatest runs async work keyed by key, cancelling superseded runs.
// It wraps the core launcher in an effect that re-launches whenever the
// signals read by key change; core.GoLatest exposes the launcher form
// for callers that drive it themselves.
func GoLatest[K comparable, R any](
	key func() K,
	work func(ctx context.Context, key K) (R, error),
	apply func(R, error),
	opts ...core.GoLatestOption,
) *Effect {
	launch := core.GoLatest(work, apply, opts...)
	return core.CreateEffect(func() core.Cleanup {
		return launch(key())
	})
}

// GoLatestForceRestart restarts the work even when the key is unchanged.
var GoLatestForceRestart = core.GoLatestForceRestart

// =============================================================================
// Joins
// =============================================================================

// Join2 derives a memo from two sources.
func Join2[T0, T1, R any](s0 Readable[T0], s1 Readable[T1], fn func(T0, T1) R) *Memo[R] {
	return core.Join2(s0, s1, fn)
}

// Join3 derives a memo from three sources.
func Join3[T0, T1, T2, R any](s0 Readable[T0], s1 Readable[T1], s2 Readable[T2], fn func(T0, T1, T2) R) *Memo[R] {
	return core.Join3(s0, s1, s2, fn)
}

// Join4 derives a memo from four sources. Join5 through Join8 live in
// pkg/neoflux.
func Join4[T0, T1, T2, T3, R any](s0 Readable[T0], s1 Readable[T1], s2 Readable[T2], s3 Readable[T3], fn func(T0, T1, T2, T3) R) *Memo[R] {
	return core.Join4(s0, s1, s2, s3, fn)
}

// =============================================================================
// Resources (re-export from pkg/features/resource)
// =============================================================================

// Resource is reactive async state around a fetcher.
type Resource[T any] = resource.Resource[T]

// ResourceOption configures NewResource.
type ResourceOption[T any] = resource.Option[T]

// ResourceState is the lifecycle state of a resource.
type ResourceState = resource.State

// NewResource creates a lazy resource; the first read starts the fetch.
func NewResource[T any](fetcher func(ctx context.Context) (T, error), opts ...ResourceOption[T]) *Resource[T] {
	return resource.New(fetcher, opts...)
}

// NewResourceWithSource refetches whenever the tracked source value
// changes.
func NewResourceWithSource[S comparable, T any](
	source func() S,
	fetcher func(ctx context.Context, src S) (T, error),
	opts ...ResourceOption[T],
) *Resource[T] {
	return resource.NewWithSource(source, fetcher, opts...)
}

// =============================================================================
// Actions (re-export from pkg/features/action)
// =============================================================================

// Action is a structured async mutation with state tracking.
type Action[A, R any] = action.Action[A, R]

// ActionOption configures NewAction.
type ActionOption[R any] = action.Option[R]

// ActionPolicy decides what Run does while a run is in flight.
type ActionPolicy = action.Policy

// NewAction creates an action around do.
func NewAction[A, R any](do func(ctx context.Context, arg A) (R, error), opts ...ActionOption[R]) *Action[A, R] {
	return action.New(do, opts...)
}

// =============================================================================
// Store (re-export from pkg/features/store)
// =============================================================================

// Store is path-addressed reactive state.
type Store = store.Store

// StoreKey is a typed handle on one store path.
type StoreKey[T any] = store.Key[T]

// NewStore creates a store seeded with initial.
var NewStore = store.New

// NewStoreKey creates a typed handle for path.
func NewStoreKey[T any](s *Store, path string) StoreKey[T] {
	return store.NewKey[T](s, path)
}

// =============================================================================
// Errors
// =============================================================================

// CircularDependencyError is the panic value for memo cycles.
type CircularDependencyError = core.CircularDependencyError

// UpdateStormError is the panic value when a flush exceeds its run
// budget.
type UpdateStormError = core.UpdateStormError
