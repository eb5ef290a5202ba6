package trace

import (
	"io"
	"sync"
	"time"
)

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	start  time.Time
	seq    uint64
	err    error
}

// NewStreamTracer creates a new StreamTracer. FormatAuto writes text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{
		w:      w,
		level:  level,
		format: format,
		start:  time.Now(),
	}
}

// Emit writes an event to the output. It is safe for concurrent use.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	ev.Seq = t.seq
	// первая ошибка записи запоминается и возвращается из Close
	if t.err != nil {
		return
	}
	if _, err := t.w.Write(FormatEvent(ev, t.format, t.start)); err != nil {
		t.err = err
	}
}

// Close reports the first write error and closes the writer if it
// implements io.Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.err
	if closer, ok := t.w.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Level returns the current tracing level.
func (t *StreamTracer) Level() Level {
	return t.level
}

// Enabled returns true if tracing is active.
func (t *StreamTracer) Enabled() bool {
	return t.level > LevelOff
}
