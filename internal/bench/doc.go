// Package bench measures propagation latency across a set of graph
// topologies.
//
// A scenario names a shape (propagate, diamond, dense) and its
// dimensions; the runner builds the graph under a disposable root,
// drives repeated source writes through it, and samples the per-write
// latency. Scenarios come from the built-in suite or a YAML file.
package bench
