// Package report delivers panics recovered during callback dispatch to a
// process-wide handler, so one bad subscriber cannot silently take down the
// emission loop that invoked it.
package report

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// PanicError describes a panic recovered while dispatching a callback.
type PanicError struct {
	// Op is the dispatch operation, e.g. "state.Notifier.notify".
	Op string
	// Source identifies the emitting object, when known.
	Source string
	// Value is the value passed to panic().
	Value any
	// StackTrace is the call stack at recovery time.
	StackTrace string
	// Timestamp is when the panic was recovered.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("panic in %s (source %s): %v", e.Op, e.Source, e.Value)
	}
	return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
}

// Handler receives recovered panics.
type Handler interface {
	HandlePanic(err *PanicError)
}

var (
	handlerMu sync.RWMutex
	handler   Handler = &LogHandler{}
)

// SetHandler configures the process-wide handler. Pass nil to restore the
// default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		handler = &LogHandler{}
	} else {
		handler = h
	}
}

func currentHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// ReportPanic sends err to the current handler. If err.Timestamp is zero, it
// is set to the current time.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := currentHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Handle recovers a panic in the calling frame and reports it. It must be
// deferred directly:
//
//	defer report.Handle("state.Notifier.notify", n.ID())
func Handle(op, source string) {
	v := recover()
	if v == nil {
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Source:     source,
		Value:      v,
		StackTrace: string(debug.Stack()),
	})
}
