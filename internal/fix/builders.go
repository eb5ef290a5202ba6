package fix

import (
	"sharplint/internal/diag"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// ComputeFunc is the body of a provider built with NewProvider.
type ComputeFunc func(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error)

type funcProvider struct {
	ruleID        string
	title         string
	applicability Applicability
	compute       ComputeFunc
}

func (p *funcProvider) RuleID() string               { return p.ruleID }
func (p *funcProvider) Title() string                { return p.title }
func (p *funcProvider) Applicability() Applicability { return p.applicability }

func (p *funcProvider) ComputeFix(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error) {
	return p.compute(d, t)
}

// Option mutates a provider during construction.
type Option func(*funcProvider)

// WithApplicability overrides applicability metadata.
func WithApplicability(app Applicability) Option {
	return func(p *funcProvider) {
		p.applicability = app
	}
}

// NewProvider wraps fn as the fix of ruleID.
func NewProvider(ruleID, title string, fn ComputeFunc, opts ...Option) Provider {
	p := &funcProvider{ruleID: ruleID, title: title, compute: fn}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// RenameToken replaces the text of token tok, trivia untouched.
func RenameToken(t *syntax.Tree, tok syntax.NodeID, text string) syntax.Edit {
	return syntax.Edit{Target: tok, Replacement: t.Node(tok).WithText(text)}
}

// ReplaceLeading replaces the leading trivia of the first token of id.
func ReplaceLeading(t *syntax.Tree, id syntax.NodeID, trivia []token.Trivia) syntax.Edit {
	return syntax.Edit{Target: id, Replacement: t.Node(id).WithLeading(trivia)}
}

// ReplaceTrailing replaces the trailing trivia of the last token of id.
func ReplaceTrailing(t *syntax.Tree, id syntax.NodeID, trivia []token.Trivia) syntax.Edit {
	return syntax.Edit{Target: id, Replacement: t.Node(id).WithTrailing(trivia)}
}
