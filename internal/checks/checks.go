package checks

import (
	"slices"

	"sharplint/internal/analysis"
	"sharplint/internal/fix"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// Rule ids.
const (
	IfStatementWithoutBraces        = "IfStatementWithoutBraces"
	LoopStatementWithoutBraces      = "LoopStatementWithoutBraces"
	TestMethodWithoutPublicModifier = "TestMethodWithoutPublicModifier"
	RemoveTestSuffix                = "RemoveTestSuffix"
	AsyncMethodWithoutAsyncSuffix   = "AsyncMethodWithoutAsyncSuffix"
	CatchNullReferenceException     = "CatchNullReferenceException"
)

// Categories.
const (
	CategoryGeneral    = "General"
	CategoryTests      = "Tests"
	CategoryAsync      = "Async"
	CategoryExceptions = "Exceptions"
)

// DefaultTestAttributes are the attribute names that mark a test method in
// NUnit, MSTest and xUnit.
var DefaultTestAttributes = []string{"Test", "TestMethod", "Fact", "Theory", "TestCase"}

// Options tune the rule table.
type Options struct {
	// TestAttributes replaces DefaultTestAttributes when non-empty.
	TestAttributes []string
}

func (o Options) testAttributes() map[string]bool {
	names := o.TestAttributes
	if len(names) == 0 {
		names = DefaultTestAttributes
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Rules returns the shipped rules in registration order.
func Rules(opts Options) []analysis.Rule {
	attrs := opts.testAttributes()
	return []analysis.Rule{
		ifBracesRule(),
		loopBracesRule(),
		testMethodPublicRule(attrs),
		removeTestSuffixRule(attrs),
		asyncSuffixRule(),
		catchNullReferenceRule(),
	}
}

// Registry builds the registry of every shipped rule with default options.
func Registry() *analysis.Registry {
	return analysis.MustRegistry(Rules(Options{})...)
}

// Fixes returns the fix providers of the shipped rules.
func Fixes() *fix.Set {
	return fix.MustSet(
		ifBracesFix(),
		loopBracesFix(),
		testMethodPublicFix(),
		removeTestSuffixFix(),
		asyncSuffixFix(),
	)
}

// clause describes a statement with an embedded sub-statement:
// the keyword, the last token before the sub-statement and the sub-statement.
type clause struct {
	keyword syntax.NodeID
	header  syntax.NodeID
	body    syntax.NodeID
}

var clauseKeywords = []token.Kind{token.KwIf, token.KwElse, token.KwWhile, token.KwDo, token.KwFor, token.KwForeach}

func clauseOf(t *syntax.Tree, id syntax.NodeID) (clause, bool) {
	var c clause
	for _, child := range t.Children(id) {
		n := t.Node(child)
		if n.IsToken() {
			if c.keyword == syntax.NoNode && slices.Contains(clauseKeywords, n.TokenKind()) {
				c.keyword = child
			}
			c.header = child
			continue
		}
		if n.Kind().IsStatement() {
			c.body = child
			break
		}
	}
	ok := c.keyword != syntax.NoNode && c.header != syntax.NoNode && c.body != syntax.NoNode
	return c, ok
}

func isTestMethod(ctx *analysis.Context, id syntax.NodeID, attrs map[string]bool) bool {
	return ctx.Model.HasAttribute(ctx.Tree, id, func(name string) bool { return attrs[name] })
}
