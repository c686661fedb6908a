package neoflux

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

// Memo is a cached derivation that tracks its own dependencies. When a
// dependency changes the memo is only marked stale; the value recomputes
// lazily on the next read. Memos subscribe like signals, so derivations
// chain: signal -> memo -> memo -> effect.
//
// The dependency set is rediscovered on every recomputation. A run that
// takes a different branch subscribes to exactly the cells that branch
// read, and edges from the previous run are dropped.
type Memo[T any] struct {
	base cellBase

	// compute derives the memo's value.
	compute func() T

	// value is the cached result of the last computation.
	value   T
	valueMu sync.RWMutex

	// valid is false while the cached value may be out of date.
	valid atomic.Bool

	// initialized is set after the first computation. Before that a
	// refresh must always compute, whatever the source versions say.
	initialized atomic.Bool

	// sources are the cells read during the last computation, with the
	// version each one had at read time. A stale mark only means "may
	// have changed"; unchanged versions let the refresh keep the cached
	// value without running compute again.
	sources    []*cellBase
	sourceVers []uint64
	sourcesMu  sync.Mutex

	// equal decides whether a recomputation changed the value. nil means
	// defaultEquals. An unchanged recomputation does not advance the
	// version, so downstream effects skip their run.
	equal func(T, T) bool

	// computeMu serializes refreshes. Concurrent readers of a stale memo
	// queue here; the first one computes and the rest reuse its result.
	computeMu sync.Mutex

	// computingGID is the goroutine currently evaluating, or 0. The same
	// goroutine arriving twice means the computation reads itself.
	computingGID atomic.Int64

	// markedDuringCompute records an invalidation that arrived while a
	// computation was in flight. That computation may have read its
	// sources before the mark, so its result cannot be marked clean.
	markedDuringCompute atomic.Bool

	// disposed stops tracking and recomputation; reads return the last
	// cached value.
	disposed atomic.Bool

	// name is an optional diagnostic label.
	name string
}

// NewMemo creates a memo with the given computation. Nothing runs until the
// first Get. The memo is adopted by the current owner and stops updating
// when that owner is disposed.
func NewMemo[T any](compute func() T) *Memo[T] {
	m := &Memo[T]{
		base:    cellBase{id: nextID()},
		compute: compute,
	}
	m.base.refresh = m.refreshIfStale
	if owner := getCurrentOwner(); owner != nil {
		owner.adopt(m)
	}
	emit(Event{Kind: KindMemoCreate, NodeID: m.base.id})
	return m
}

// WithEquals configures a custom equality function and returns the memo.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// WithName attaches a diagnostic name, visible on observer events.
func (m *Memo[T]) WithName(name string) *Memo[T] {
	m.name = name
	return m
}

// Get returns the memo's value, recomputing first if a dependency changed
// since the last evaluation, and subscribes the running listener.
//
// Reading a disposed memo returns the last cached value without
// recomputing and without subscribing; disposal stops tracking, it does
// not poison the cell.
func (m *Memo[T]) Get() T {
	if m.disposed.Load() {
		return m.Peek()
	}

	m.refreshIfStale()
	// Track after the refresh so the version recorded for this edge
	// belongs to the value the caller is about to see. A write racing
	// past this point costs one redundant downstream run, never a missed
	// one.
	m.base.track()

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// Peek returns the memo's value without subscribing the running listener.
// The value is still brought current first, so Peek observes the same
// value Get would, minus the dependency edge. On a disposed memo Peek
// returns the last cached value.
func (m *Memo[T]) Peek() T {
	if !m.disposed.Load() {
		m.refreshIfStale()
	}
	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cached value and forwards the mark to this
// memo's own subscribers. The value itself is not recomputed here.
// Implements the Listener interface.
func (m *Memo[T]) MarkDirty() {
	if m.disposed.Load() {
		return
	}
	// CAS keeps the forwarding idempotent: the first mark spreads, repeat
	// marks from sibling sources are absorbed.
	if m.valid.CompareAndSwap(true, false) {
		m.base.propagate()
		return
	}
	// Already stale. An evaluation may be in flight that read its sources
	// before this mark arrived; its result must not be marked clean.
	if m.computingGID.Load() != 0 {
		m.markedDuringCompute.Store(true)
	}
}

// ID returns the unique identifier for this memo.
// Implements the Listener interface.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// addSource records a cell read during the current computation together
// with its version at read time.
// Implements the dependent interface.
func (m *Memo[T]) addSource(source *cellBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
	m.sourceVers = append(m.sourceVers, source.version.Load())
}

// refreshIfStale brings the cached value current. When the memo is marked
// stale but every source still has the version the cache was computed
// from, the mark was a false alarm (an upstream memo recomputed to an
// equal value) and the cache is revalidated without running compute.
//
// The same goroutine re-entering while an evaluation is in flight means
// the computation reads itself, directly or through other cells. That is
// unbounded recursion, so it fails hard with a CircularDependencyError
// instead of silently returning stale data.
func (m *Memo[T]) refreshIfStale() {
	if m.disposed.Load() || m.valid.Load() {
		return
	}

	gid := goid.Get()
	if m.computingGID.Load() == gid {
		panic(&CircularDependencyError{NodeID: m.base.id, Name: m.name})
	}

	m.computeMu.Lock()
	defer m.computeMu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if m.disposed.Load() || m.valid.Load() {
		return
	}

	m.computingGID.Store(gid)
	defer m.computingGID.Store(0)

	if m.initialized.Load() && !m.sourcesAdvanced() {
		m.settle()
		return
	}

	m.recompute()
	m.settle()
}

// sourcesAdvanced refreshes every recorded source and reports whether any
// version moved past the one the cache was computed from. Refreshing
// recurses source-ward, so a chain of stale memos settles root first.
func (m *Memo[T]) sourcesAdvanced() bool {
	m.sourcesMu.Lock()
	sources := make([]*cellBase, len(m.sources))
	copy(sources, m.sources)
	vers := make([]uint64, len(m.sourceVers))
	copy(vers, m.sourceVers)
	m.sourcesMu.Unlock()

	for i, source := range sources {
		source.refreshValue()
		if source.version.Load() != vers[i] {
			return true
		}
	}
	return false
}

// settle marks the cache clean, unless an invalidation arrived while the
// evaluation ran, in which case the memo stays stale and the next read
// tries again.
func (m *Memo[T]) settle() {
	m.valid.Store(true)
	if m.markedDuringCompute.Swap(false) {
		m.valid.Store(false)
	}
}

// recompute runs the computation, rediscovers dependencies, and advances
// the version if the value changed. Caller holds computeMu.
func (m *Memo[T]) recompute() {
	// Drop edges from the previous run; the new run resubscribes what it
	// actually reads.
	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourceVers = m.sourceVers[:0]
	m.sourcesMu.Unlock()

	start := time.Now()

	old := setCurrentListener(m)
	var newValue T
	func() {
		// Restore the listener even if the computation panics, so the
		// caller's tracking context is not corrupted by the escape.
		defer setCurrentListener(old)
		newValue = m.compute()
	}()

	m.valueMu.Lock()
	changed := !m.equals(m.value, newValue)
	if changed {
		m.value = newValue
	}
	m.valueMu.Unlock()

	m.initialized.Store(true)

	// Version advances strictly after the value store; readers record the
	// version before reading the value. Together that means a recorded
	// version can lag the value a reader saw but never lead it.
	if changed {
		m.base.version.Add(1)
	}
	emit(Event{
		Kind:     KindMemoRecompute,
		NodeID:   m.base.id,
		Name:     m.name,
		Duration: time.Since(start),
		Sources:  m.sourceIDs(),
	})
}

// disposeNode detaches the memo from every source and freezes its value.
// Called by the owning scope; implements ownedNode.
func (m *Memo[T]) disposeNode() {
	if m.disposed.Swap(true) {
		return
	}

	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = nil
	m.sourceVers = nil
	m.sourcesMu.Unlock()

	emit(Event{Kind: KindDispose, NodeID: m.base.id, Name: m.name})
}

func (m *Memo[T]) sourceIDs() []uint64 {
	if !observing() {
		return nil
	}
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	ids := make([]uint64, len(m.sources))
	for i, s := range m.sources {
		ids[i] = s.id
	}
	return ids
}

func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}

var _ dependent = (*Memo[int])(nil)
