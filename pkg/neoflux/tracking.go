package neoflux

import (
	"sync"
	"time"

	"github.com/petermattis/goid"
)

// maxFlushTasks bounds how many queued runs a single flush may execute.
// An effect that keeps writing its own dependencies would otherwise spin
// forever; hitting the bound panics with an UpdateStormError.
const maxFlushTasks = 100_000

// trackingContext holds the reactive evaluation state for one goroutine:
// which owner adopts new primitives, which listener is collecting
// dependencies, how deep we are in write/batch propagation, and the queue
// of effects waiting for the next flush.
//
// Keeping this per goroutine (instead of a process-global current-listener
// variable) makes re-entrancy explicit: every evaluation saves and restores
// the fields it touches, and independent goroutines never observe each
// other's tracking state.
type trackingContext struct {
	// currentOwner adopts signals, memos, and effects created while set.
	currentOwner *Owner

	// currentListener is subscribed by every tracked read.
	// nil means reads do not create dependencies.
	currentListener Listener

	// batchDepth counts nested propagation frames: explicit Batch calls
	// plus the implicit frame every write opens around its notifications.
	// The pending queue flushes when it returns to zero.
	batchDepth int

	// pending is the flush queue, deduplicated by ID through pendingSet.
	pending    []scheduled
	pendingSet map[uint64]struct{}

	// flushing guards against re-entrant flushes while the queue drains.
	flushing bool
}

// trackingContexts maps goroutine ID to its tracking context.
var trackingContexts sync.Map

// getTrackingContext returns the tracking context for the current
// goroutine, creating one on first use.
func getTrackingContext() *trackingContext {
	gid := goid.Get()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

// releaseTrackingContext drops the current goroutine's tracking context.
// Long-lived worker goroutines that are done with reactive work may call
// this to avoid holding an entry in the context map; it is never required
// for correctness.
func releaseTrackingContext() {
	trackingContexts.Delete(goid.Get())
}

// getCurrentListener returns the listener currently collecting
// dependencies, or nil when no tracking is active.
func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener installs l as the tracking listener and returns the
// previous one so callers can restore it.
func setCurrentListener(l Listener) Listener {
	tc := getTrackingContext()
	old := tc.currentListener
	tc.currentListener = l
	return old
}

// getCurrentOwner returns the owner that adopts newly created primitives,
// or nil outside any root.
func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner installs o as the current owner and returns the previous
// one so callers can restore it.
func setCurrentOwner(o *Owner) *Owner {
	tc := getTrackingContext()
	old := tc.currentOwner
	tc.currentOwner = o
	return old
}

// beginPropagation opens a propagation frame. Every signal write opens one
// around its notifications so that staleness marking finishes before any
// effect runs; Batch opens one around its whole body.
func (tc *trackingContext) beginPropagation() {
	tc.batchDepth++
}

// endPropagation closes a propagation frame and flushes the pending queue
// when the outermost frame closes. Callers invoke it via defer so a panic
// in user code cannot leave the depth counter stuck above zero.
func (tc *trackingContext) endPropagation() {
	tc.batchDepth--
	if tc.batchDepth == 0 {
		tc.flush()
	}
}

// enqueue appends s to the flush queue unless it is already pending.
func (tc *trackingContext) enqueue(s scheduled) {
	id := s.ID()
	if _, ok := tc.pendingSet[id]; ok {
		return
	}
	if tc.pendingSet == nil {
		tc.pendingSet = make(map[uint64]struct{})
	}
	tc.pendingSet[id] = struct{}{}
	tc.pending = append(tc.pending, s)
}

// flush drains the pending queue in enqueue order, running each scheduled
// item once. Items enqueued while draining (an effect writing a signal)
// join the same drain. If an item panics, the remaining queue is kept for
// the next flush; writes that produced it stay applied.
func (tc *trackingContext) flush() {
	if tc.flushing || len(tc.pending) == 0 {
		return
	}
	tc.flushing = true
	defer func() { tc.flushing = false }()

	start := time.Now()
	ran := 0
	for len(tc.pending) > 0 {
		s := tc.pending[0]
		tc.pending = tc.pending[1:]
		delete(tc.pendingSet, s.ID())

		ran++
		if ran > maxFlushTasks {
			panic(&UpdateStormError{Ran: ran})
		}
		s.runScheduled()
	}
	tc.pending = nil

	emit(Event{Kind: KindFlush, Duration: time.Since(start), Count: ran})
	debugf("flush complete", "ran", ran)
}

// WithOwner runs fn with owner installed as the current owner. It is used
// when handing reactive work to another goroutine that should create
// primitives under an existing scope:
//
//	go func() {
//	    neoflux.WithOwner(owner, func() {
//	        ticker := neoflux.NewSignal(time.Now())
//	        ...
//	    })
//	}()
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with l collecting dependencies. Internal machinery
// for evaluations; exposed for advanced integrations that implement their
// own Listener.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}
