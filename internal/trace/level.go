package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelRun                // command boundaries
	LevelPhase              // per-file phases
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelRun:
		return "run"
	case LevelPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "run":
		return LevelRun, nil
	case "phase":
		return LevelPhase, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|run|phase)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelRun:
		return scope == ScopeRun
	case LevelPhase:
		return scope <= ScopePhase
	}
	return false
}
