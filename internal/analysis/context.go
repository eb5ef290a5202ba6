package analysis

import (
	"sharplint/internal/diag"
	"sharplint/internal/semantic"
	"sharplint/internal/syntax"
)

// Context is the read-only view a rule gets for one node visit.
type Context struct {
	Tree  *syntax.Tree
	Model semantic.Model

	rule     *Rule
	severity diag.Severity
}

// Rule returns the descriptor of the rule being run.
func (c *Context) Rule() Rule { return *c.rule }

// Report builds a diagnostic of the current rule anchored at node at, with
// the message formatted from args.
func (c *Context) Report(at syntax.NodeID, args ...any) diag.Diagnostic {
	return diag.New(c.rule.ID, c.severity, diag.At(c.Tree, at), c.rule.Message(args...))
}
