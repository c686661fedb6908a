package action

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// ErrQueueFull is set as the action's error when a queued Run is rejected
// because the queue is at capacity.
var ErrQueueFull = errors.New("neoflux: action queue is full")

// State is the lifecycle phase of an Action.
type State int

const (
	// Idle is the initial state, before any Run call.
	Idle State = iota
	// Running means the work function is executing.
	Running
	// Succeeded means the last run completed and Result holds its value.
	Succeeded
	// Failed means the last run returned an error.
	Failed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Policy defines how an Action handles Run calls that arrive while work
// is already in flight.
type Policy int

const (
	// CancelLatest cancels the in-flight work and starts the new run.
	// The default.
	CancelLatest Policy = iota
	// DropWhileRunning rejects Run calls while work is in flight.
	DropWhileRunning
	// Queue buffers Run calls up to a bound and executes them in order.
	Queue
)

// Action is a user-triggered async mutation with reactive state. The work
// function runs on its own goroutine; state, result and error are
// committed through a batch so dependents observe each transition as one
// atomic change.
type Action[A, R any] struct {
	do func(ctx context.Context, arg A) (R, error)

	state  *neoflux.Signal[State]
	result *neoflux.Signal[R]
	err    *neoflux.Signal[error]

	cfg config[R]

	// seq numbers runs; only the newest sequence may commit.
	seq atomic.Uint64

	// mu guards cancel and the queue.
	mu         sync.Mutex
	cancel     context.CancelFunc
	currentSeq uint64
	queue      []A
}

// New creates an action around the work function do.
//
//	save := action.New(
//	    func(ctx context.Context, p Profile) (Profile, error) {
//	        return api.SaveProfile(ctx, p)
//	    },
//	    action.WithPolicy[Profile](action.DropWhileRunning),
//	)
//	accepted := save.Run(profile)
func New[A, R any](do func(ctx context.Context, arg A) (R, error), opts ...Option[R]) *Action[A, R] {
	a := &Action[A, R]{
		do:     do,
		state:  neoflux.NewSignal(Idle),
		result: neoflux.NewSignal(*new(R)),
		err:    neoflux.NewSignal[error](nil),
	}
	a.cfg.policy = CancelLatest
	for _, opt := range opts {
		opt(&a.cfg)
	}
	if a.cfg.policy == Queue && a.cfg.queueMax <= 0 {
		a.cfg.queueMax = 10
	}
	return a
}

// Run submits arg. The return value reports whether the call was accepted
// (started or queued):
//
//   - CancelLatest: cancels in-flight work, starts arg. Always true.
//   - DropWhileRunning: false while work is in flight.
//   - Queue: queued behind in-flight work; false (and the action fails
//     with ErrQueueFull) when the queue is at capacity.
func (a *Action[A, R]) Run(arg A) bool {
	switch a.cfg.policy {
	case DropWhileRunning:
		if a.state.Peek() == Running {
			return false
		}
		a.start(arg)
		return true
	case Queue:
		a.mu.Lock()
		if a.state.Peek() == Running {
			if len(a.queue) >= a.cfg.queueMax {
				a.mu.Unlock()
				neoflux.Batch(func() {
					a.err.Set(ErrQueueFull)
					a.state.Set(Failed)
				})
				if a.cfg.onError != nil {
					a.cfg.onError(ErrQueueFull)
				}
				return false
			}
			a.queue = append(a.queue, arg)
			a.mu.Unlock()
			return true
		}
		a.mu.Unlock()
		a.start(arg)
		return true
	default: // CancelLatest
		a.mu.Lock()
		if a.cancel != nil {
			a.cancel()
		}
		a.mu.Unlock()
		a.start(arg)
		return true
	}
}

// Cancel cancels in-flight work and drops any queued calls. A cancelled
// run never commits; the action returns to Idle if it was Running.
func (a *Action[A, R]) Cancel() {
	a.mu.Lock()
	a.seq.Add(1) // orphan the in-flight run
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.queue = nil
	a.mu.Unlock()

	if a.state.Peek() == Running {
		a.state.Set(Idle)
	}
}

// Reset cancels like Cancel and additionally clears the stored result and
// error.
func (a *Action[A, R]) Reset() {
	a.Cancel()
	neoflux.Batch(func() {
		a.state.Set(Idle)
		a.result.Set(*new(R))
		a.err.Set(nil)
	})
}

// State returns the current lifecycle phase. Tracked.
func (a *Action[A, R]) State() State {
	return a.state.Get()
}

// Result returns the last successful result and true, or the zero value
// and false before any success. Tracked.
func (a *Action[A, R]) Result() (R, bool) {
	if a.state.Get() == Succeeded {
		return a.result.Get(), true
	}
	return *new(R), false
}

// Err returns the error of the last failed run, or nil. Tracked.
func (a *Action[A, R]) Err() error {
	return a.err.Get()
}

// IsRunning reports whether work is in flight. Tracked.
func (a *Action[A, R]) IsRunning() bool {
	return a.state.Get() == Running
}

// start begins one run: assign a sequence, open a cancellable context,
// flip to Running, and execute the work on its own goroutine.
func (a *Action[A, R]) start(arg A) {
	seq := a.seq.Add(1)
	ctx, cancel := context.WithCancel(context.Background())

	a.mu.Lock()
	a.cancel = cancel
	a.currentSeq = seq
	a.mu.Unlock()

	neoflux.Batch(func() {
		a.state.Set(Running)
		a.err.Set(nil)
	})
	if a.cfg.onStart != nil {
		a.cfg.onStart()
	}

	go a.work(ctx, seq, arg)
}

func (a *Action[A, R]) work(ctx context.Context, seq uint64, arg A) {
	ctx, finish := a.startSpan(ctx, seq)

	result, err := a.do(ctx, arg)

	if ctx.Err() != nil {
		finish(ctx.Err())
		return
	}
	if a.seq.Load() != seq {
		// A newer run started; this outcome is stale.
		finish(context.Canceled)
		return
	}

	neoflux.Batch(func() {
		if err != nil {
			a.err.Set(err)
			a.state.Set(Failed)
		} else {
			a.result.Set(result)
			a.err.Set(nil)
			a.state.Set(Succeeded)
		}
	})

	if err != nil {
		if a.cfg.onError != nil {
			a.cfg.onError(err)
		}
	} else if a.cfg.onSuccess != nil {
		a.cfg.onSuccess(result)
	}

	finish(err)

	if a.cfg.policy == Queue {
		a.drainQueue()
	}
}

// drainQueue starts the next queued call, if any.
func (a *Action[A, R]) drainQueue() {
	a.mu.Lock()
	if len(a.queue) == 0 {
		a.mu.Unlock()
		return
	}
	next := a.queue[0]
	a.queue = a.queue[1:]
	a.mu.Unlock()

	a.start(next)
}

// startSpan opens a tracing span for the run when a tracer is configured.
func (a *Action[A, R]) startSpan(ctx context.Context, seq uint64) (context.Context, func(err error)) {
	if a.cfg.tracer == nil {
		return ctx, func(error) {}
	}

	name := a.cfg.name
	if name == "" {
		name = "action"
	}
	ctx, span := a.cfg.tracer.Start(ctx, "action.run")
	span.SetAttributes(
		attribute.String("neoflux.action.name", name),
		attribute.Int64("neoflux.action.seq", int64(seq)),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
