package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // by output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format. start is
// the tracer creation time; text output shows offsets from it.
func FormatEvent(ev *Event, format Format, start time.Time) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev, start)
}

type jsonEvent struct {
	Time      string  `json:"time"`
	Seq       uint64  `json:"seq"`
	Kind      string  `json:"kind"`
	Scope     string  `json:"scope"`
	Name      string  `json:"name"`
	Path      string  `json:"path,omitempty"`
	Detail    string  `json:"detail,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
}

// formatNDJSON formats an event as newline-delimited JSON.
func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		Name:      ev.Name,
		Path:      ev.Path,
		Detail:    ev.Detail,
		ElapsedMS: float64(ev.Elapsed) / float64(time.Millisecond),
	}
	data, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// formatText formats an event as human-readable text.
// Format: [offset] [indent]→/← name path (detail) elapsed
func formatText(ev *Event, start time.Time) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%9.3fms] ", float64(ev.Time.Sub(start))/float64(time.Millisecond))

	if ev.Scope == ScopePhase {
		sb.WriteString("  ")
	}
	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("\u2192 ") // →
	case KindSpanEnd:
		sb.WriteString("\u2190 ") // ←
	case KindPoint:
		sb.WriteString("\u2022 ") // •
	}
	sb.WriteString(ev.Name)
	if ev.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(ev.Path)
	}
	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " %.3fms", float64(ev.Elapsed)/float64(time.Millisecond))
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}
