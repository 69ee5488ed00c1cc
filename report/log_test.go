package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLogHandler_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(zerolog.New(&buf))

	h.HandlePanic(&PanicError{
		Op:        "state.Notifier.notify",
		Source:    "01ARZ",
		Value:     "boom",
		Timestamp: time.Unix(0, 0),
	})

	out := buf.String()
	if !strings.Contains(out, "state.Notifier.notify") {
		t.Fatalf("expected op in output, got %q", out)
	}
	if !strings.Contains(out, "01ARZ") {
		t.Fatalf("expected source in output, got %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Fatalf("expected panic value in output, got %q", out)
	}
	if strings.Contains(out, "stack") {
		t.Fatalf("expected no stack without verbose, got %q", out)
	}
}

func TestLogHandler_Verbose(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(zerolog.New(&buf))
	h.Verbose = true

	h.HandlePanic(&PanicError{Op: "op", Value: 1, StackTrace: "goroutine 1"})
	if !strings.Contains(buf.String(), "goroutine 1") {
		t.Fatalf("expected stack trace in verbose output, got %q", buf.String())
	}
}
