package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// Default tracer name for neoflux instrumentation.
const defaultTracerName = "neoflux"

// OTelConfig configures the OpenTelemetry tracing observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "neoflux").
	TracerName string

	// IncludeNames includes node debug names as span attributes.
	// Enabled by default.
	IncludeNames bool

	// Filter determines which events to trace. Return true to trace the
	// event, false to skip. If nil, flushes, effect runs, and memo
	// recomputations are traced.
	Filter func(ev neoflux.Event) bool

	// AttributeExtractor extracts custom attributes for each traced
	// event.
	AttributeExtractor func(ev neoflux.Event) []attribute.KeyValue

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider
}

// OTelOption configures the OpenTelemetry tracing observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeNames enables/disables node names as span attributes.
func WithIncludeNames(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeNames = include
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ev neoflux.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev neoflux.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:   defaultTracerName,
		IncludeNames: true,
	}
}

// Tracer returns a tracer for manual instrumentation of resource fetches
// and action runs, resolved against the configured (or global) provider:
//
//	user := resource.New(fetchUser,
//	    resource.WithTracer[*User](observe.Tracer()),
//	)
func Tracer(opts ...OTelOption) trace.Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider != nil {
		return config.TracerProvider.Tracer(config.TracerName)
	}
	return otel.Tracer(config.TracerName)
}

// Tracing is a neoflux.Observer that emits a span per traced event. The
// producing code has already finished when the event arrives, so spans
// are recorded retroactively with explicit timestamps covering the
// reported duration.
type Tracing struct {
	config OTelConfig
	tracer trace.Tracer
}

// NewTracing creates the tracing observer.
func NewTracing(opts ...OTelOption) *Tracing {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return &Tracing{config: config, tracer: tracer}
}

// ReactiveEvent implements neoflux.Observer.
func (t *Tracing) ReactiveEvent(ev neoflux.Event) {
	if t.config.Filter != nil {
		if !t.config.Filter(ev) {
			return
		}
	} else {
		switch ev.Kind {
		case neoflux.KindFlush, neoflux.KindEffectRun, neoflux.KindMemoRecompute:
		default:
			return
		}
	}

	end := time.Now()
	start := end.Add(-ev.Duration)

	attrs := []attribute.KeyValue{
		attribute.String("neoflux.event", ev.Kind.String()),
	}
	if ev.NodeID != 0 {
		attrs = append(attrs, attribute.Int64("neoflux.node_id", int64(ev.NodeID)))
	}
	if t.config.IncludeNames && ev.Name != "" {
		attrs = append(attrs, attribute.String("neoflux.node_name", ev.Name))
	}
	if ev.Kind == neoflux.KindFlush {
		attrs = append(attrs, attribute.Int("neoflux.flush.effects", ev.Count))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(ev)...)
	}

	_, span := t.tracer.Start(context.Background(), "neoflux."+ev.Kind.String(),
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
	)
	span.End(trace.WithTimestamp(end))
}
