package action

import "go.opentelemetry.io/otel/trace"

// config holds the per-action settings applied by Options.
type config[R any] struct {
	policy    Policy
	queueMax  int
	name      string
	tracer    trace.Tracer
	onStart   func()
	onSuccess func(R)
	onError   func(error)
}

// Option configures an Action at creation. The type parameter is the
// action's result type, so OnSuccess callbacks stay typed.
type Option[R any] func(*config[R])

// WithPolicy sets the concurrency policy. The default is CancelLatest.
func WithPolicy[R any](p Policy) Option[R] {
	return func(c *config[R]) {
		c.policy = p
	}
}

// WithQueue selects the Queue policy with the given capacity. A
// non-positive capacity falls back to 10.
func WithQueue[R any](capacity int) Option[R] {
	return func(c *config[R]) {
		c.policy = Queue
		c.queueMax = capacity
	}
}

// WithName attaches a diagnostic name, used on tracing spans.
func WithName[R any](name string) Option[R] {
	return func(c *config[R]) {
		c.name = name
	}
}

// WithTracer enables OpenTelemetry spans around each run, recording the
// sequence number and outcome.
func WithTracer[R any](tracer trace.Tracer) Option[R] {
	return func(c *config[R]) {
		c.tracer = tracer
	}
}

// OnStart registers a callback invoked when a run is accepted, after the
// state flips to Running.
func OnStart[R any](fn func()) Option[R] {
	return func(c *config[R]) {
		c.onStart = fn
	}
}

// OnSuccess registers a callback invoked after a run commits its result.
// It runs on the work goroutine, after the state batch.
func OnSuccess[R any](fn func(R)) Option[R] {
	return func(c *config[R]) {
		c.onSuccess = fn
	}
}

// OnError registers a callback invoked after a run commits a failure or a
// queued call is rejected with ErrQueueFull.
func OnError[R any](fn func(error)) Option[R] {
	return func(c *config[R]) {
		c.onError = fn
	}
}
