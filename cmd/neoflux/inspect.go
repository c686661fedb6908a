package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/neoflux-dev/neoflux/internal/config"
	"github.com/neoflux-dev/neoflux/pkg/inspect"
	"github.com/neoflux-dev/neoflux/pkg/neoflux"
	"github.com/neoflux-dev/neoflux/pkg/observe"
)

func inspectCmd() *cobra.Command {
	var (
		addr    string
		demo    bool
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run the live graph inspector",
		Long: `Start the inspector server and stream reactive events to connected
clients.

Endpoints:
  GET  /api/snapshot         current dependency graph
  GET  /api/events           WebSocket event stream
  POST /api/filter/{client}  narrow a client's event kinds
  GET  /metrics              Prometheus metrics (with --metrics)

The inspector observes the current process, so on its own it has
nothing to show; --demo runs a small reactive graph alongside it.

Examples:
  neoflux inspect --demo
  neoflux inspect --addr=localhost:9231 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(addr, demo, metrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from neoflux.json)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Run the demo graph to generate events")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")

	return cmd
}

func runInspect(addr string, demo, metrics bool) error {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Inspector.Addr
	}
	if cfg.Inspector.Metrics {
		metrics = true
	}

	logger := newLogger(cfg)
	feed := inspect.NewFeed()

	opts := []inspect.Option{
		inspect.WithAddr(addr),
		inspect.WithLogger(logger),
	}

	observer := neoflux.Observer(feed)
	if metrics {
		registry := prometheus.NewRegistry()
		observer = observe.Multi(feed, observe.NewMetrics(
			observe.WithNamespace(cfg.Metrics.Namespace),
			observe.WithSubsystem(cfg.Metrics.Subsystem),
			observe.WithRegistry(registry),
		))
		opts = append(opts, inspect.WithMetricsHandler(
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	prev := neoflux.SetObserver(observer)
	defer neoflux.SetObserver(prev)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if demo {
		go runDemoGraph(ctx, false)
	}

	printBanner()
	success("Inspector listening on http://%s", addr)
	info("snapshot:  http://%s/api/snapshot", addr)
	info("events:    ws://%s/api/events", addr)
	if metrics {
		info("metrics:   http://%s/metrics", addr)
	}
	if !demo {
		warn("no demo graph; the feed only carries this process's events")
	}

	return inspect.New(feed, opts...).Run(ctx)
}

// newLogger builds the CLI's slog logger from the config's debug
// section.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Debug.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
