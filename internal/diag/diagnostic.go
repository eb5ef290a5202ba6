package diag

import (
	"fmt"

	"sharplint/internal/source"
	"sharplint/internal/syntax"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Anchor ties a diagnostic to a node of one specific tree generation.
// Front-end diagnostics (lexer, parser) have no tree and only carry Span.
type Anchor struct {
	Tree *syntax.Tree
	Node syntax.NodeID
	Span source.Span
}

// At anchors at node id of t; the span excludes the node's outer trivia.
func At(t *syntax.Tree, id syntax.NodeID) Anchor {
	return Anchor{Tree: t, Node: id, Span: t.Span(id)}
}

// Valid reports whether the anchor still refers to a node of t.
func (a Anchor) Valid(t *syntax.Tree) bool {
	return a.Tree != nil && a.Tree == t && t.Valid(a.Node)
}

// Diagnostic is an immutable finding. Start and End are resolved once, at
// construction time, against the anchored document.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Anchor   Anchor
	Start    source.LineCol
	End      source.LineCol
	Notes    []Note
}

// New builds a rule diagnostic anchored in a tree.
func New(ruleID string, sev Severity, anchor Anchor, msg string) Diagnostic {
	d := Diagnostic{
		RuleID:   ruleID,
		Severity: sev,
		Message:  msg,
		Anchor:   anchor,
	}
	if anchor.Tree != nil {
		d.Start, d.End = anchor.Tree.File().Resolve(anchor.Span)
	}
	return d
}

// NewSyntax builds a front-end diagnostic located in file.
func NewSyntax(code Code, sev Severity, file *source.File, span source.Span, msg string) Diagnostic {
	d := Diagnostic{
		RuleID:   code.ID(),
		Severity: sev,
		Message:  msg,
		Anchor:   Anchor{Span: span},
	}
	if file != nil {
		d.Start, d.End = file.Resolve(span)
	}
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Span: sp, Msg: msg})
	return d
}

// WithSeverity returns a copy with a different severity (configuration overrides).
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// Location formats the start position as "line:col".
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%d:%d", d.Start.Line, d.Start.Col)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s: %s", d.Location(), d.Severity, d.RuleID, d.Message)
}

// Record is the tree-free form of a diagnostic used for caching and JSON output.
type Record struct {
	RuleID    string         `json:"rule" msgpack:"rule"`
	Severity  string         `json:"severity" msgpack:"severity"`
	Message   string         `json:"message" msgpack:"message"`
	Path      string         `json:"path" msgpack:"path"`
	Start     source.LineCol `json:"start" msgpack:"start"`
	End       source.LineCol `json:"end" msgpack:"end"`
	SpanStart uint32         `json:"offset" msgpack:"offset"`
	SpanEnd   uint32         `json:"end_offset" msgpack:"end_offset"`
}

// Record flattens the diagnostic for the given document path.
func (d Diagnostic) Record(path string) Record {
	return Record{
		RuleID:    d.RuleID,
		Severity:  d.Severity.String(),
		Message:   d.Message,
		Path:      path,
		Start:     d.Start,
		End:       d.End,
		SpanStart: d.Anchor.Span.Start,
		SpanEnd:   d.Anchor.Span.End,
	}
}
