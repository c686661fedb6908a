package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Config configures the inspector server.
type Config struct {
	// Addr is the listen address (default: "localhost:9230").
	Addr string

	// Logger receives server lifecycle and client logs
	// (default: slog.Default()).
	Logger *slog.Logger

	// MetricsHandler, when set, is mounted at /metrics. Pass
	// promhttp.Handler() to co-host the Prometheus endpoint.
	MetricsHandler http.Handler

	// CheckOrigin overrides the WebSocket origin check. The default
	// accepts all origins; the inspector is a development tool expected
	// to run on localhost.
	CheckOrigin func(r *http.Request) bool
}

// Option configures the inspector server.
type Option func(*Config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.Addr = addr
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetricsHandler mounts handler at /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(c *Config) {
		c.MetricsHandler = handler
	}
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// Server serves the devtools inspector API for one Feed:
//
//	GET  /api/snapshot        current graph snapshot as JSON
//	GET  /api/events          WebSocket stream of runtime events
//	POST /api/filter/{client} replace a stream client's event-kind filter
//	GET  /metrics             Prometheus metrics, when configured
type Server struct {
	feed     *Feed
	config   Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// New creates an inspector server over feed.
func New(feed *Feed, opts ...Option) *Server {
	config := Config{
		Addr: "localhost:9230",
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	checkOrigin := config.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	return &Server{
		feed:   feed,
		config: config,
		logger: config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Handler returns the inspector's HTTP handler, for embedding into an
// existing server instead of running standalone.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Get("/api/events", s.handleEvents)
	r.Post("/api/filter/{client}", s.handleFilter)
	if s.config.MetricsHandler != nil {
		r.Handle("/metrics", s.config.MetricsHandler)
	}
	return r
}

// Run serves the inspector until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("inspector listening", "addr", s.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.feed.Snapshot()); err != nil {
		s.logger.Error("snapshot encode failed", "error", err)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn)
	s.feed.hub.add(c)
	s.logger.Debug("inspector client connected", "client", c.id)

	// Tell the client its ID so it can address /api/filter.
	hello, _ := json.Marshal(map[string]string{"client": c.id})
	c.send <- hello

	go c.writePump()
	go c.readPump(func() {
		s.feed.hub.remove(c.id)
		s.logger.Debug("inspector client disconnected", "client", c.id)
	})
}

type filterRequest struct {
	Kinds []string `json:"kinds"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "client")
	c, ok := s.feed.hub.get(id)
	if !ok {
		http.Error(w, "unknown client", http.StatusNotFound)
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad filter body", http.StatusBadRequest)
		return
	}

	c.setFilter(req.Kinds)
	w.WriteHeader(http.StatusNoContent)
}
