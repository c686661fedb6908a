// Package inspect is an embeddable devtools server exposing the live
// reactive graph.
//
// A Feed consumes runtime events through the neoflux.Observer hook and
// keeps a model of every live signal, memo, and effect with its current
// dependency edges. The Server publishes that model over HTTP: a JSON
// snapshot endpoint and a WebSocket event stream with per-client
// event-kind filters.
//
//	feed := inspect.NewFeed()
//	neoflux.SetObserver(feed)
//
//	srv := inspect.New(feed, inspect.WithAddr("localhost:9230"))
//	go srv.Run(ctx)
//
// With no observer installed the runtime pays nothing; with only a feed
// installed and no connected clients, events update the model but skip
// serialization entirely.
package inspect
