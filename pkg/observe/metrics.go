package observe

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// MetricsConfig configures the Prometheus metrics observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "neoflux").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// FlushBuckets are the histogram buckets for flush duration in
	// seconds. Default: sub-millisecond oriented buckets; reactive
	// flushes are far faster than HTTP requests.
	FlushBuckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithFlushBuckets sets the flush-duration histogram buckets.
func WithFlushBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.FlushBuckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "neoflux",
		FlushBuckets: []float64{
			1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1,
		},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics is a neoflux.Observer exporting Prometheus metrics:
//
//   - neoflux_signal_writes_total: committed signal writes (equality-
//     rejected writes never reach the observer)
//   - neoflux_memo_recomputes_total: memo compute runs
//   - neoflux_effect_runs_total: effect body runs
//   - neoflux_disposals_total: memo, effect, and owner disposals
//   - neoflux_flush_duration_seconds: histogram of flush duration
//   - neoflux_flush_effects: histogram of effect runs per flush
//   - neoflux_live_nodes{kind}: created-minus-disposed nodes by kind
//
// Install it with neoflux.SetObserver(observe.NewMetrics()); combine it
// with other observers through Multi.
type Metrics struct {
	signalWrites   prometheus.Counter
	memoRecomputes prometheus.Counter
	effectRuns     prometheus.Counter
	disposals      prometheus.Counter
	flushDuration  prometheus.Histogram
	flushEffects   prometheus.Histogram
	liveNodes      *prometheus.GaugeVec

	// kinds remembers each created node's kind so a dispose event can
	// decrement the right gauge.
	mu    sync.Mutex
	kinds map[uint64]string
}

// NewMetrics creates and registers the metrics observer.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		signalWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Total number of committed signal writes",
			ConstLabels: config.ConstLabels,
		}),

		memoRecomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "memo_recomputes_total",
			Help:        "Total number of memo recomputations",
			ConstLabels: config.ConstLabels,
		}),

		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect body runs",
			ConstLabels: config.ConstLabels,
		}),

		disposals: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "disposals_total",
			Help:        "Total number of node and scope disposals",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Duration of pending-effect flushes in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.FlushBuckets,
		}),

		flushEffects: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_effects",
			Help:        "Number of effect runs per flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 25, 100, 1000},
		}),

		liveNodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_nodes",
			Help:        "Created-minus-disposed reactive nodes by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		kinds: make(map[uint64]string),
	}
}

// ReactiveEvent implements neoflux.Observer.
func (m *Metrics) ReactiveEvent(ev neoflux.Event) {
	switch ev.Kind {
	case neoflux.KindSignalCreate:
		m.created(ev.NodeID, "signal")
	case neoflux.KindSignalWrite:
		m.signalWrites.Inc()
	case neoflux.KindMemoCreate:
		m.created(ev.NodeID, "memo")
	case neoflux.KindMemoRecompute:
		m.memoRecomputes.Inc()
	case neoflux.KindEffectCreate:
		m.created(ev.NodeID, "effect")
	case neoflux.KindEffectRun:
		m.effectRuns.Inc()
	case neoflux.KindFlush:
		m.flushDuration.Observe(ev.Duration.Seconds())
		m.flushEffects.Observe(float64(ev.Count))
	case neoflux.KindDispose:
		m.disposals.Inc()
		m.disposed(ev.NodeID)
	}
}

func (m *Metrics) created(id uint64, kind string) {
	m.mu.Lock()
	m.kinds[id] = kind
	m.mu.Unlock()
	m.liveNodes.WithLabelValues(kind).Inc()
}

func (m *Metrics) disposed(id uint64) {
	m.mu.Lock()
	kind, ok := m.kinds[id]
	if ok {
		delete(m.kinds, id)
	}
	m.mu.Unlock()
	if ok {
		m.liveNodes.WithLabelValues(kind).Dec()
	}
}

// Multi fans events out to several observers in order. Use it to install
// metrics and the inspector feed side by side:
//
//	neoflux.SetObserver(observe.Multi(metrics, feed))
func Multi(observers ...neoflux.Observer) neoflux.Observer {
	return multiObserver(observers)
}

type multiObserver []neoflux.Observer

func (m multiObserver) ReactiveEvent(ev neoflux.Event) {
	for _, obs := range m {
		obs.ReactiveEvent(ev)
	}
}
