package diag

import "sharplint/internal/source"

// DedupReporter drops a diagnostic identical to one already reported at the
// same span. Parser recovery revisits the same token several times; only the
// first report of each position survives.
type DedupReporter struct {
	next Reporter
	seen map[reportAt]struct{}
}

type reportAt struct {
	code Code
	span source.Span
	msg  string
}

// NewDedupReporter wraps next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportAt]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r == nil || r.next == nil {
		return
	}
	at := reportAt{code: code, span: primary, msg: msg}
	if _, dup := r.seen[at]; dup {
		return
	}
	r.seen[at] = struct{}{}
	r.next.Report(code, sev, primary, msg)
}
