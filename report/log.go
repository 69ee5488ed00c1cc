package report

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogHandler writes recovered panics through a zerolog logger. The zero
// value logs to stderr.
type LogHandler struct {
	// Verbose includes the recovery stack trace in the event.
	Verbose bool

	logger zerolog.Logger
	set    bool
}

// NewLogHandler creates a handler writing through logger.
func NewLogHandler(logger zerolog.Logger) *LogHandler {
	return &LogHandler{logger: logger, set: true}
}

// HandlePanic logs a recovered panic.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if h == nil || err == nil {
		return
	}
	logger := h.logger
	if !h.set {
		logger = defaultLogger()
	}
	ev := logger.Error().
		Str("op", err.Op).
		Interface("value", err.Value).
		Time("at", err.Timestamp)
	if err.Source != "" {
		ev = ev.Str("source", err.Source)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic in callback dispatch")
}

var defaultLogger = sync.OnceValue(func() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
})
