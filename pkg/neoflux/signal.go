package neoflux

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// cellBase provides the type-erased half of every reactive cell: identity,
// the subscriber list, and a version counter that advances exactly when the
// cell's value really changed. Signal[T] and Memo[T] embed it.
type cellBase struct {
	id uint64

	// version counts observable value changes. Effects record the versions
	// of their sources after each run and skip the next run when none have
	// advanced, which is what turns "marked dirty" into "actually changed".
	version atomic.Uint64

	// refresh, when non-nil, brings the cell's value up to date before its
	// version is compared. Memos install their recompute here; signals are
	// always current and leave it nil.
	refresh func()

	// subs are the listeners subscribed to this cell.
	subs  []Listener
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (b *cellBase) subscribe(l Listener) {
	if l == nil {
		return
	}
	b.subMu.Lock()
	defer b.subMu.Unlock()

	lid := l.ID()
	for _, existing := range b.subs {
		if existing.ID() == lid {
			return
		}
	}
	b.subs = append(b.subs, l)
}

// unsubscribe removes a listener. Order is not preserved; the removed slot
// is backfilled with the last element.
func (b *cellBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}
	b.subMu.Lock()
	defer b.subMu.Unlock()

	lid := l.ID()
	for i, existing := range b.subs {
		if existing.ID() == lid {
			b.subs[i] = b.subs[len(b.subs)-1]
			b.subs = b.subs[:len(b.subs)-1]
			return
		}
	}
}

// propagate marks every subscriber dirty inside a propagation frame.
// The frame guarantees staleness finishes spreading through the graph
// before the flush runs any effect, so no effect can observe a
// half-invalidated diamond. Subscribers are snapshotted first; marking is
// done without holding the lock.
func (b *cellBase) propagate() {
	b.subMu.RLock()
	subs := make([]Listener, len(b.subs))
	copy(subs, b.subs)
	b.subMu.RUnlock()

	tc := getTrackingContext()
	tc.beginPropagation()
	defer tc.endPropagation()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// refreshValue asks the cell to bring its value current (memo recompute).
func (b *cellBase) refreshValue() {
	if b.refresh != nil {
		b.refresh()
	}
}

// track subscribes the currently running listener to this cell and records
// the reverse edge on the listener so it can be torn down next run.
func (b *cellBase) track() {
	listener := getCurrentListener()
	if listener == nil {
		return
	}
	b.subscribe(listener)
	if d, ok := listener.(dependent); ok {
		d.addSource(b)
	}
}

// Signal is a reactive value cell. Reading it during a tracked evaluation
// (a memo computation or an effect body) subscribes that evaluation to the
// cell; writing a different value notifies subscribers. Writing an equal
// value, per the configured equality, does nothing at all.
type Signal[T any] struct {
	base cellBase

	// value is the current signal value.
	value T

	// mu protects value.
	mu sync.RWMutex

	// equal decides whether a write changed the value. nil means
	// defaultEquals.
	equal func(T, T) bool

	// owner, when set, is the scope this signal was created under.
	// Writes become no-ops once the owner is disposed.
	owner *Owner

	// disposed guards the dispose event when the owner tears down.
	disposed atomic.Bool

	// name is an optional diagnostic label carried on observer events.
	name string
}

// NewSignal creates a signal holding initial. The signal is adopted by the
// current owner, if any: after that owner is disposed, writes are ignored
// and reads keep returning the last value.
func NewSignal[T any](initial T) *Signal[T] {
	s := &Signal[T]{
		base:  cellBase{id: nextID()},
		value: initial,
		owner: getCurrentOwner(),
	}
	s.base.version.Store(1)
	emit(Event{Kind: KindSignalCreate, NodeID: s.base.id})
	if s.owner != nil {
		s.owner.adopt(s)
	}
	return s
}

// disposeNode implements ownedNode. Disposal only announces the signal's
// end to observers; reads keep returning the last value, and the
// owner-disposed check already turns writes into no-ops.
func (s *Signal[T]) disposeNode() {
	if s.disposed.Swap(true) {
		return
	}
	emit(Event{Kind: KindDispose, NodeID: s.base.id, Name: s.name})
}

// WithEquals configures a custom equality function and returns the signal.
// Useful when reflect.DeepEqual is too expensive or has the wrong
// semantics for T.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// WithName attaches a diagnostic name, visible on observer events and in
// the inspector. Purely informational.
func (s *Signal[T]) WithName(name string) *Signal[T] {
	s.name = name
	return s
}

// Get returns the current value and subscribes the running listener.
func (s *Signal[T]) Get() T {
	// Track before reading so the version recorded for this edge can lag
	// the value returned but never lead it. A write racing between the
	// two steps costs one redundant downstream run, never a missed one.
	s.base.track()

	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()
	return value
}

// Peek returns the current value without creating a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers if it changed.
// Writing to a signal whose owner has been disposed is a no-op.
func (s *Signal[T]) Set(value T) {
	if s.owner != nil && s.owner.IsDisposed() {
		return
	}

	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.didChange()
	}
}

// Update atomically derives the new value from the current one.
func (s *Signal[T]) Update(fn func(T) T) {
	if s.owner != nil && s.owner.IsDisposed() {
		return
	}

	s.mu.Lock()
	newValue := fn(s.value)
	changed := !s.equals(s.value, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.didChange()
	}
}

// didChange advances the version and pushes staleness to subscribers.
func (s *Signal[T]) didChange() {
	s.base.version.Add(1)
	emit(Event{Kind: KindSignalWrite, NodeID: s.base.id, Name: s.name})
	s.base.propagate()
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals compares with == for the common comparable kinds and falls
// back to reflect.DeepEqual for everything else (slices, maps, structs).
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
