package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of an operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of an operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeRun covers a whole command (diag, fix).
	ScopeRun Scope = iota + 1
	// ScopePhase covers one phase of one file.
	ScopePhase
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePhase:
		return "phase"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time    time.Time     // wall-clock timestamp, set by Emit when zero
	Seq     uint64        // per-tracer sequence number, set by Emit
	Kind    Kind          // event kind
	Scope   Scope         // granularity level
	Name    string        // e.g. "diag", "parse", "fix"
	Path    string        // file path for phase events
	Detail  string        // optional detail message
	Elapsed time.Duration // span duration on KindSpanEnd
}
