package fix

import (
	"errors"
	"fmt"
	"sort"

	"sharplint/internal/diag"
	"sharplint/internal/syntax"
)

var (
	// ErrNotApplicable is returned by providers when the anchor of a
	// diagnostic no longer has the shape the fix expects. Apply skips such
	// fixes and keeps going.
	ErrNotApplicable = errors.New("fix not applicable")
	// ErrConflict is wrapped by ConflictError.
	ErrConflict = errors.New("conflicting fixes")
	// ErrNotConverged is returned by Converge when fixable diagnostics remain
	// after the round limit.
	ErrNotConverged = errors.New("fixes did not converge")
	// ErrDuplicateProvider reports two providers for one rule.
	ErrDuplicateProvider = errors.New("duplicate fix provider")
)

// Provider computes the edits that resolve diagnostics of one rule.
type Provider interface {
	RuleID() string
	Title() string
	// ComputeFix returns the edits for d against t, or an error wrapping
	// ErrNotApplicable when the anchor does not match t anymore.
	ComputeFix(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error)
}

// Applicability describes how safe it is to apply a fix without review.
type Applicability uint8

const (
	ApplicabilityAlwaysSafe Applicability = iota
	ApplicabilitySafeWithHeuristics
)

func (a Applicability) String() string {
	switch a {
	case ApplicabilityAlwaysSafe:
		return "always-safe"
	case ApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	}
	return "unknown"
}

// applicabilityOf: провайдеры без метода Applicability считаются безопасными.
func applicabilityOf(p Provider) Applicability {
	if a, ok := p.(interface{ Applicability() Applicability }); ok {
		return a.Applicability()
	}
	return ApplicabilityAlwaysSafe
}

// Set is an immutable table of providers keyed by rule id.
type Set struct {
	byRule map[string]Provider
	order  []string
}

// NewSet indexes providers; two providers for the same rule are an error.
func NewSet(providers ...Provider) (*Set, error) {
	s := &Set{byRule: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		id := p.RuleID()
		if _, dup := s.byRule[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, id)
		}
		s.byRule[id] = p
		s.order = append(s.order, id)
	}
	return s, nil
}

// MustSet is NewSet for static provider tables.
func MustSet(providers ...Provider) *Set {
	s, err := NewSet(providers...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the provider of a rule.
func (s *Set) Lookup(ruleID string) (Provider, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.byRule[ruleID]
	return p, ok
}

// Has reports whether diagnostics of ruleID can be fixed.
func (s *Set) Has(ruleID string) bool {
	_, ok := s.Lookup(ruleID)
	return ok
}

// RuleIDs returns the ids of rules with a provider, sorted.
func (s *Set) RuleIDs() []string {
	if s == nil {
		return nil
	}
	out := append([]string(nil), s.order...)
	sort.Strings(out)
	return out
}

// Target resolves the node d is anchored at inside t. The anchor must come
// from exactly this tree and, when kinds are given, have one of them.
func Target(d diag.Diagnostic, t *syntax.Tree, kinds ...syntax.Kind) (syntax.NodeID, error) {
	a := d.Anchor
	if a.Tree == nil || t == nil {
		return syntax.NoNode, fmt.Errorf("%w: diagnostic %s has no tree anchor", ErrNotApplicable, d.RuleID)
	}
	if a.Tree != t || a.Tree.Generation() != t.Generation() {
		return syntax.NoNode, fmt.Errorf("%w: diagnostic %s was computed for tree generation %d, not %d",
			ErrNotApplicable, d.RuleID, a.Tree.Generation(), t.Generation())
	}
	if !t.Valid(a.Node) {
		return syntax.NoNode, fmt.Errorf("%w: node #%d is out of range", ErrNotApplicable, a.Node)
	}
	if len(kinds) == 0 {
		return a.Node, nil
	}
	got := t.Kind(a.Node)
	for _, k := range kinds {
		if k == got {
			return a.Node, nil
		}
	}
	return syntax.NoNode, fmt.Errorf("%w: anchor is %s", ErrNotApplicable, got)
}

// RenderText returns the document text of t.
func RenderText(t *syntax.Tree) string {
	if t == nil {
		return ""
	}
	return t.Render()
}
