package neoflux

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"
)

// Effect is a reactive side effect. The body runs once immediately when the
// effect is created, which discovers its dependencies; afterwards it
// re-runs whenever one of them changes value. A body may return a Cleanup,
// which is invoked before the next run and once more on disposal.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup returned by the last run.
	cleanup Cleanup

	// sources are the cells read during the last run, with the version
	// each one had at read time. The flush compares versions to decide
	// whether the body needs to run at all: being marked dirty only means
	// "a dependency may have changed", and a memo that recomputed back to
	// an equal value must not re-trigger the body.
	sources    []*cellBase
	sourceVers []uint64
	sourcesMu  sync.Mutex

	// owner is the scope this effect belongs to.
	owner *Owner

	// pending is set while the effect sits in the flush queue.
	pending atomic.Bool

	// runMu serializes executions. The creating goroutine's first run and
	// a flush on a worker goroutine must not overlap: cleanup runs exactly
	// once per body run, never concurrently with it.
	runMu sync.Mutex

	// runningGID is the goroutine currently inside run, or 0. A body that
	// writes one of its own sources flushes on the same goroutine before
	// returning; that nested attempt is recorded in rerun and honored
	// after the body finishes instead of recursing.
	runningGID atomic.Int64
	rerun      atomic.Bool

	// disposed stops all future runs.
	disposed atomic.Bool

	// name is an optional diagnostic label.
	name string
}

// EffectOption configures an Effect at creation.
type EffectOption interface {
	applyEffect(e *Effect)
}

type effectOptionFunc func(*Effect)

func (f effectOptionFunc) applyEffect(e *Effect) { f(e) }

// EffectName attaches a diagnostic name to the effect, visible on observer
// events and in the inspector.
func EffectName(name string) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.name = name
	})
}

// CreateEffect creates an effect and runs its body synchronously before
// returning. The effect is adopted by the current owner; it can also be
// disposed individually through the returned handle.
//
// Example:
//
//	count := neoflux.NewSignal(0)
//	eff := neoflux.CreateEffect(func() neoflux.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	count.Set(1) // body runs again
//	eff.Dispose()
func CreateEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: getCurrentOwner(),
	}
	for _, opt := range opts {
		opt.applyEffect(e)
	}
	if e.owner != nil {
		e.owner.adopt(e)
	}

	emit(Event{Kind: KindEffectCreate, NodeID: e.id, Name: e.name})

	// First run is unconditional: it exists to discover dependencies.
	e.run()
	return e
}

// MarkDirty queues the effect for the current flush.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) {
		getTrackingContext().enqueue(e)
	}
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// runScheduled is called by the flush. The effect body only runs when one
// of the previously read cells actually changed value; memos are refreshed
// first so the comparison sees settled values.
// Implements the scheduled interface.
func (e *Effect) runScheduled() {
	if !e.pending.CompareAndSwap(true, false) {
		return
	}
	if e.disposed.Load() {
		return
	}
	if !e.sourcesChanged() {
		return
	}
	e.run()
}

// sourcesChanged refreshes every source recorded by the last run and
// reports whether any version advanced. Refreshing a stale memo pulls its
// recomputation here, which is what makes memos settle before any effect
// that reads them runs, sources before derivatives.
func (e *Effect) sourcesChanged() bool {
	e.sourcesMu.Lock()
	sources := make([]*cellBase, len(e.sources))
	copy(sources, e.sources)
	vers := make([]uint64, len(e.sourceVers))
	copy(vers, e.sourceVers)
	e.sourcesMu.Unlock()

	for i, source := range sources {
		source.refreshValue()
		if source.version.Load() != vers[i] {
			return true
		}
	}
	return false
}

// run executes cleanup, rediscovers dependencies, and runs the body.
// Runs are serialized on runMu; a nested attempt from the running
// goroutine (the body wrote one of its own sources) is deferred and the
// body reruns once it returns, so it still settles on final values.
func (e *Effect) run() {
	gid := goid.Get()
	if e.runningGID.Load() == gid {
		e.rerun.Store(true)
		return
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()
	e.runningGID.Store(gid)
	defer e.runningGID.Store(0)

	for {
		if e.disposed.Load() {
			return
		}
		e.pending.Store(false)
		e.rerun.Store(false)

		if e.cleanup != nil {
			e.cleanup()
			e.cleanup = nil
		}

		// Drop edges from the previous run before re-tracking.
		e.sourcesMu.Lock()
		for _, source := range e.sources {
			source.unsubscribe(e)
		}
		e.sources = e.sources[:0]
		e.sourceVers = e.sourceVers[:0]
		e.sourcesMu.Unlock()

		start := time.Now()

		var cl Cleanup
		old := setCurrentListener(e)
		func() {
			// A panicking body must not leave this effect installed as the
			// tracking listener for the rest of the goroutine.
			defer setCurrentListener(old)
			cl = e.fn()
		}()

		if e.disposed.Load() {
			// Disposed from inside the body. The dispose path could not see
			// this cleanup, so it runs here.
			if cl != nil {
				cl()
			}
		} else {
			e.cleanup = cl
		}

		emit(Event{
			Kind:     KindEffectRun,
			NodeID:   e.id,
			Name:     e.name,
			Duration: time.Since(start),
			Sources:  e.sourceIDs(),
		})

		if !e.rerun.Load() {
			return
		}
	}
}

// addSource records a cell read during the current run together with its
// version at read time.
// Implements the dependent interface.
func (e *Effect) addSource(source *cellBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
	e.sourceVers = append(e.sourceVers, source.version.Load())
}

// Dispose runs the pending cleanup and permanently detaches the effect
// from every cell it reads. A disposed effect never runs again, even if a
// still-live signal it used to read changes afterwards.
func (e *Effect) Dispose() {
	e.disposeNode()
}

// disposeNode implements ownedNode for scope teardown.
func (e *Effect) disposeNode() {
	if e.disposed.Swap(true) {
		return
	}

	// Wait out a run in flight on another goroutine so its cleanup is not
	// raced. A body disposing its own effect already holds runMu; run
	// handles that cleanup itself after the body returns.
	if e.runningGID.Load() != goid.Get() {
		e.runMu.Lock()
		defer e.runMu.Unlock()
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourceVers = nil
	e.sourcesMu.Unlock()

	emit(Event{Kind: KindDispose, NodeID: e.id, Name: e.name})
}

func (e *Effect) sourceIDs() []uint64 {
	if !observing() {
		return nil
	}
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	ids := make([]uint64, len(e.sources))
	for i, s := range e.sources {
		ids[i] = s.id
	}
	return ids
}

// OnMount runs fn once inside a fresh effect with no dependencies. It is a
// readable way to attach startup work to the current scope.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		fn()
		return nil
	})
}

// OnUpdate tracks the cells read by deps and invokes callback on every
// change after the first run. Use it when the initial value should not
// trigger the reaction.
func OnUpdate(deps func(), callback func()) *Effect {
	first := true
	return CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}

var _ dependent = (*Effect)(nil)
var _ scheduled = (*Effect)(nil)
