package verify

import (
	"bytes"
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger whose records go to t.Log, so
// they only show up for failing or verbose tests.
func NewTestLogger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
