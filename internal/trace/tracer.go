package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level     // tracing level
	Format     Format    // output format (FormatAuto for detection by path)
	Output     io.Writer // if nil, OutputPath is opened
	OutputPath string    // file path ("-" or "" for stderr)
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			format = FormatNDJSON
		}
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

// openOutput opens the output writer from config.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return nopCloser{cfg.Output}, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from closing writers the tracer does not own.
type nopCloser struct{ io.Writer }

// Span is an open KindSpanBegin event.
type Span struct {
	t     Tracer
	scope Scope
	name  string
	path  string
	start time.Time
}

// Begin emits a span start and returns the span to end.
func Begin(t Tracer, scope Scope, name, path string) Span {
	sp := Span{t: t, scope: scope, name: name, path: path, start: time.Now()}
	if t != nil && t.Enabled() {
		t.Emit(&Event{Time: sp.start, Kind: KindSpanBegin, Scope: scope, Name: name, Path: path})
	}
	return sp
}

// End emits the matching span end.
func (s Span) End(detail string) {
	if s.t == nil || !s.t.Enabled() {
		return
	}
	now := time.Now()
	s.t.Emit(&Event{Time: now, Kind: KindSpanEnd, Scope: s.scope, Name: s.name, Path: s.path, Detail: detail, Elapsed: now.Sub(s.start)})
}
