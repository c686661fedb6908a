package resource

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// State is the lifecycle phase of a Resource.
type State int

const (
	// Idle means no fetch has been triggered yet.
	Idle State = iota
	// Loading means a fetch is in flight.
	Loading
	// Ready means the last fetch succeeded and Data holds its result.
	Ready
	// Failed means the last fetch errored. Data keeps the previous value.
	Failed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resource manages asynchronous data fetching as reactive state. Reads of
// State, Data, Err and Loading are tracked like signal reads, so memos and
// effects depending on them re-run as the fetch progresses.
type Resource[T any] struct {
	fetch func(ctx context.Context) (T, error)

	state *neoflux.Signal[State]
	data  *neoflux.Signal[T]
	err   *neoflux.Signal[error]

	cfg config[T]

	// mu guards the fetch bookkeeping below.
	mu sync.Mutex

	// seq numbers fetches. Only the fetch holding the current sequence
	// may commit its outcome; anything older is discarded unseen.
	seq uint64

	// cancel aborts the in-flight fetch when a newer one supersedes it.
	cancel context.CancelFunc

	// lastFetch is when the last successful fetch committed, for the
	// stale-time check.
	lastFetch time.Time

	// started flips on the first fetch trigger; reads before that kick
	// off the initial fetch.
	started bool
}

// New creates a resource around fetcher. The first fetch starts lazily on
// the first read (or explicit Refetch), so options are always in effect
// before any fetch runs.
func New[T any](fetcher func(ctx context.Context) (T, error), opts ...Option[T]) *Resource[T] {
	if fetcher == nil {
		panic(ErrFetcherNil)
	}
	r := &Resource[T]{
		fetch: fetcher,
		state: neoflux.NewSignal(Idle),
		data:  neoflux.NewSignal(*new(T)),
		err:   neoflux.NewSignal[error](nil),
	}
	for _, opt := range opts {
		opt(&r.cfg)
	}
	return r
}

// NewWithSource creates a resource that refetches whenever source changes
// value. The source function is read inside an effect, so any signals or
// memos it touches become triggers. The first fetch starts immediately
// with the source's current value; each change assigns a fresh sequence,
// cancelling whatever was in flight.
func NewWithSource[S comparable, T any](
	source func() S,
	fetcher func(ctx context.Context, src S) (T, error),
	opts ...Option[T],
) *Resource[T] {
	var mu sync.Mutex
	var current S

	r := New(func(ctx context.Context) (T, error) {
		mu.Lock()
		src := current
		mu.Unlock()
		return fetcher(ctx, src)
	}, opts...)

	neoflux.CreateEffect(func() neoflux.Cleanup {
		src := source()
		mu.Lock()
		current = src
		mu.Unlock()
		r.Refetch()
		return nil
	})

	return r
}

// State returns the current lifecycle phase. Tracked.
func (r *Resource[T]) State() State {
	r.ensureStarted()
	return r.state.Get()
}

// Data returns the last successfully fetched value. Tracked. While no
// fetch has succeeded it returns the zero value; after a failure it keeps
// returning the previous success.
func (r *Resource[T]) Data() T {
	r.ensureStarted()
	return r.data.Get()
}

// DataOr returns Data when the resource is Ready, fallback otherwise.
func (r *Resource[T]) DataOr(fallback T) T {
	if r.State() == Ready {
		return r.data.Get()
	}
	return fallback
}

// Err returns the error of the last failed fetch, or nil. Tracked.
// A successful fetch clears it.
func (r *Resource[T]) Err() error {
	r.ensureStarted()
	return r.err.Get()
}

// Loading reports whether a fetch is in flight. Tracked.
func (r *Resource[T]) Loading() bool {
	return r.State() == Loading
}

// Refetch forces a new fetch cycle with a fresh sequence number,
// regardless of source changes or stale time. The in-flight fetch, if
// any, has its context cancelled and its outcome discarded.
func (r *Resource[T]) Refetch() {
	r.launch(true)
}

// Fetch triggers a fetch unless fresh data is already present: with a
// configured stale time, a Ready resource fetched within that window is
// left alone. A fetch already in flight is likewise left to finish.
func (r *Resource[T]) Fetch() {
	r.launch(false)
}

// Invalidate clears the stale-time bookkeeping so the next Fetch runs.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	r.lastFetch = time.Time{}
	r.mu.Unlock()
}

// Mutate applies a local, optimistic update to the data without fetching.
// The value is replaced by the next committed fetch.
func (r *Resource[T]) Mutate(fn func(T) T) {
	r.data.Update(fn)
}

// ensureStarted kicks off the initial fetch on the first read.
func (r *Resource[T]) ensureStarted() {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		r.launch(false)
	}
}

// launch begins a fetch cycle: bump the sequence, cancel the previous
// fetch, flip state to Loading, and hand the work to a goroutine.
func (r *Resource[T]) launch(force bool) {
	r.mu.Lock()
	if !force && r.started {
		fresh := r.state.Peek() == Ready &&
			r.cfg.staleTime > 0 &&
			time.Since(r.lastFetch) < r.cfg.staleTime
		if fresh || r.state.Peek() == Loading {
			r.mu.Unlock()
			return
		}
	}
	r.started = true
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	r.state.Set(Loading)

	go r.run(ctx, seq)
}

// run executes one fetch cycle, retrying per configuration, and commits
// the outcome only if its sequence is still the newest.
func (r *Resource[T]) run(ctx context.Context, seq uint64) {
	ctx, finish := r.startSpan(ctx, seq)

	var value T
	var err error

	attempts := 1 + r.cfg.retryCount
	attempt := 0
	for ; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(r.cfg.retryDelay):
			case <-ctx.Done():
				finish(attempt, ctx.Err())
				return
			}
		}
		value, err = r.fetch(ctx)
		if err == nil || ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		// Superseded while fetching; the newer cycle owns the state now.
		finish(attempt+1, ctx.Err())
		return
	}

	r.mu.Lock()
	if seq != r.seq {
		r.mu.Unlock()
		finish(attempt+1, context.Canceled)
		return
	}
	if err == nil {
		r.lastFetch = time.Now()
	}
	r.mu.Unlock()

	// Commit state, data and error in one batch so dependents observe a
	// single consistent transition.
	neoflux.Batch(func() {
		if err != nil {
			r.err.Set(err)
			r.state.Set(Failed)
		} else {
			r.data.Set(value)
			r.err.Set(nil)
			r.state.Set(Ready)
		}
	})

	if err != nil {
		if r.cfg.onError != nil {
			r.cfg.onError(err)
		}
	} else if r.cfg.onSuccess != nil {
		r.cfg.onSuccess(value)
	}

	finish(attempt+1, err)
}

// startSpan opens a tracing span for the fetch cycle when a tracer is
// configured. The returned finish func records the attempt count and
// outcome and ends the span; without a tracer both are no-ops.
func (r *Resource[T]) startSpan(ctx context.Context, seq uint64) (context.Context, func(attempts int, err error)) {
	if r.cfg.tracer == nil {
		return ctx, func(int, error) {}
	}

	name := r.cfg.name
	if name == "" {
		name = "resource"
	}
	ctx, span := r.cfg.tracer.Start(ctx, "resource.fetch")
	span.SetAttributes(
		attribute.String("neoflux.resource.name", name),
		attribute.Int64("neoflux.resource.seq", int64(seq)),
	)
	return ctx, func(attempts int, err error) {
		span.SetAttributes(attribute.Int("neoflux.resource.attempts", attempts))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
