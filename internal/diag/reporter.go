package diag

import "sharplint/internal/source"

// Reporter: минимальный контракт получения front-end диагностик (лексер, парсер).
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтр дублей).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct {
	Bag  *Bag
	File *source.File
}

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(NewSyntax(code, sev, r.File, primary, msg))
}

// ReportBuilder accumulates a rule diagnostic before it is returned from a check.
type ReportBuilder struct {
	diag Diagnostic
}

// NewReportBuilder starts a rule diagnostic anchored at anchor.
func NewReportBuilder(ruleID string, sev Severity, anchor Anchor, msg string) *ReportBuilder {
	return &ReportBuilder{diag: New(ruleID, sev, anchor, msg)}
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Diagnostic returns the accumulated diagnostic.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
