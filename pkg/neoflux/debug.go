package neoflux

import (
	"log/slog"
	"sync/atomic"
)

var debugLogger atomic.Pointer[slog.Logger]

// SetDebugLogger routes internal diagnostics through logger at debug
// level. Passing nil silences them, which is the default. The hot paths
// never format anything while no logger is installed.
func SetDebugLogger(logger *slog.Logger) {
	if logger == nil {
		debugLogger.Store(nil)
		return
	}
	debugLogger.Store(logger)
}

func debugf(msg string, args ...any) {
	if logger := debugLogger.Load(); logger != nil {
		logger.Debug(msg, args...)
	}
}
