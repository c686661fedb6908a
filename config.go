package neoflux

import (
	"log/slog"
	"os"

	core "github.com/neoflux-dev/neoflux/pkg/neoflux"
)

// =============================================================================
// Observability hooks
// =============================================================================

// Event is one observer notification from the core.
type Event = core.Event

// EventKind discriminates Event.
type EventKind = core.EventKind

// Observer receives Events when installed via SetObserver.
type Observer = core.Observer

// SetObserver installs obs process-wide, returning the previous
// observer. Pass nil to remove it; with no observer installed the hook
// costs one atomic load per event site.
var SetObserver = core.SetObserver

// SetDebugLogger routes core debug diagnostics (disposed writes, flush
// settling) through logger. Pass nil to silence them.
var SetDebugLogger = core.SetDebugLogger

// DebugMode toggles a default debug logger on stderr. It is a
// convenience over SetDebugLogger for quick sessions; applications
// with their own slog setup should pass that in instead.
func DebugMode(enabled bool) {
	if !enabled {
		core.SetDebugLogger(nil)
		return
	}
	core.SetDebugLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
