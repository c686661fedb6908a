package neoflux

import (
	"sync/atomic"
	"time"
)

// EventKind identifies what happened inside the reactive graph.
type EventKind uint8

const (
	// KindSignalCreate fires once when a signal is constructed.
	KindSignalCreate EventKind = iota
	// KindSignalWrite fires when a write actually changes a signal's value.
	// Writes rejected by the equality function emit nothing.
	KindSignalWrite
	// KindMemoCreate fires once when a memo is constructed.
	KindMemoCreate
	// KindMemoRecompute fires after a memo's compute function runs.
	KindMemoRecompute
	// KindEffectCreate fires once when an effect is constructed.
	KindEffectCreate
	// KindEffectRun fires after an effect's body runs.
	KindEffectRun
	// KindFlush fires after a flush drains the scheduled-effect queue.
	KindFlush
	// KindDispose fires when a memo, effect, or owner is torn down.
	KindDispose
)

var eventKindNames = [...]string{
	KindSignalCreate:  "signal.create",
	KindSignalWrite:   "signal.write",
	KindMemoCreate:    "memo.create",
	KindMemoRecompute: "memo.recompute",
	KindEffectCreate:  "effect.create",
	KindEffectRun:     "effect.run",
	KindFlush:         "flush",
	KindDispose:       "dispose",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event describes one occurrence in the reactive graph. Which fields are
// populated depends on Kind: creates carry NodeID and Name, recomputes and
// effect runs add Sources and Duration, flushes carry Duration and Count.
type Event struct {
	Kind   EventKind
	NodeID uint64
	// Name is the debug name given with WithName or EffectName, or "".
	Name string
	// Sources lists the cell IDs the node depended on after this run.
	Sources []uint64
	// Duration is how long the compute, effect body, or flush took.
	Duration time.Duration
	// Count is the number of effect runs in a flush.
	Count int
}

// Observer receives every reactive event on the goroutine that produced
// it. Implementations must be safe for concurrent use and must return
// quickly; a slow observer stalls writes. The metrics and inspector
// integrations in pkg/observe and pkg/inspect are built on this hook.
//
// An observer must not create or write reactive primitives from inside
// ReactiveEvent.
type Observer interface {
	ReactiveEvent(Event)
}

// observerBox wraps the interface so a single atomic pointer can hold
// observers of differing concrete types.
type observerBox struct {
	obs Observer
}

var currentObserver atomic.Pointer[observerBox]

// SetObserver installs obs as the process-wide observer and returns the
// previous one, or nil. Passing nil removes the hook, which restores the
// zero-overhead path.
func SetObserver(obs Observer) Observer {
	var prev *observerBox
	if obs == nil {
		prev = currentObserver.Swap(nil)
	} else {
		prev = currentObserver.Swap(&observerBox{obs: obs})
	}
	if prev == nil {
		return nil
	}
	return prev.obs
}

// observing reports whether an observer is installed. Callers use it to
// skip building event payloads nobody will see.
func observing() bool {
	return currentObserver.Load() != nil
}

func emit(ev Event) {
	box := currentObserver.Load()
	if box == nil {
		return
	}
	box.obs.ReactiveEvent(ev)
}
