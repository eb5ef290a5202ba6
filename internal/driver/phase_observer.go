package driver

import (
	"time"

	"sharplint/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pass phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// FileDone is sent once per file after its last phase.
	FileDone
)

// PhaseEvent describes a timing phase boundary of one file.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	// Note is the phase note, set on PhaseEnd.
	Note string
	// Err is the file error, set on FileDone.
	Err error
}

// PhaseObserver receives phase events. Files are processed in parallel, so
// an observer must be safe for concurrent use.
type PhaseObserver func(PhaseEvent)

// phase starts a timer phase and notifies the observer on both ends.
func (o *Options) phase(tm *observ.Timer, path, name string) func(note string) {
	start := time.Now()
	if o.Observer != nil {
		o.Observer(PhaseEvent{Path: path, Name: name, Status: PhaseStart})
	}
	done := tm.Track(name)
	return func(note string) {
		done(note)
		if o.Observer != nil {
			o.Observer(PhaseEvent{Path: path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Note: note})
		}
	}
}

func (o *Options) fileDone(path string, err error) {
	if o.Observer != nil {
		o.Observer(PhaseEvent{Path: path, Status: FileDone, Err: err})
	}
}
