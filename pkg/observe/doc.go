// Package observe provides opt-in observability for the reactive runtime.
//
// Everything here is built on the neoflux.Observer hook, which costs
// nothing while no observer is installed. Metrics exports Prometheus
// counters, histograms, and gauges for graph activity; Tracing emits
// OpenTelemetry spans for flushes, effect runs, and memo recomputations;
// Tracer resolves a tracer for the manual instrumentation points in the
// resource and action packages.
//
//	metrics := observe.NewMetrics(observe.WithNamespace("myapp"))
//	neoflux.SetObserver(metrics)
//	http.Handle("/metrics", promhttp.Handler())
package observe
