package resource

import (
	"time"

	"go.opentelemetry.io/otel/trace"
)

// config holds the per-resource settings applied by Options.
type config[T any] struct {
	staleTime  time.Duration
	retryCount int
	retryDelay time.Duration
	onSuccess  func(T)
	onError    func(error)
	name       string
	tracer     trace.Tracer
}

// Option configures a Resource at creation.
type Option[T any] func(*config[T])

// WithStaleTime sets how long a successful fetch stays fresh. While
// fresh, Fetch is a no-op; Refetch always fetches.
func WithStaleTime[T any](d time.Duration) Option[T] {
	return func(c *config[T]) {
		c.staleTime = d
	}
}

// WithRetry retries a failing fetch up to count more times, waiting delay
// between attempts. Retries stop early when the fetch is superseded.
func WithRetry[T any](count int, delay time.Duration) Option[T] {
	return func(c *config[T]) {
		c.retryCount = count
		c.retryDelay = delay
	}
}

// OnSuccess registers a callback invoked after a fetch commits
// successfully. It runs on the fetch goroutine, after the state batch.
func OnSuccess[T any](fn func(T)) Option[T] {
	return func(c *config[T]) {
		c.onSuccess = fn
	}
}

// OnError registers a callback invoked after a fetch commits a failure.
// Superseded fetches never invoke it.
func OnError[T any](fn func(error)) Option[T] {
	return func(c *config[T]) {
		c.onError = fn
	}
}

// WithName attaches a diagnostic name, used on tracing spans.
func WithName[T any](name string) Option[T] {
	return func(c *config[T]) {
		c.name = name
	}
}

// WithTracer enables OpenTelemetry spans around each fetch cycle,
// recording the sequence number, attempt count, and outcome.
func WithTracer[T any](tracer trace.Tracer) Option[T] {
	return func(c *config[T]) {
		c.tracer = tracer
	}
}
