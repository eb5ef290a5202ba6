package fix

import (
	"errors"
	"fmt"
	"strings"

	"sharplint/internal/diag"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeAll takes every fixable diagnostic.
	ApplyModeAll ApplyMode = iota
	// ApplyModeOnce takes the first fixable diagnostic, preferring always-safe fixes.
	ApplyModeOnce
	// ApplyModeRule takes every fixable diagnostic of one rule, whatever its
	// applicability: naming the rule is the opt-in.
	ApplyModeRule
)

// SelectOptions configures how fixes are selected.
type SelectOptions struct {
	Mode   ApplyMode
	RuleID string
	// Unsafe admits fixes that are only safe with heuristics.
	Unsafe bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Index     int // позиция диагностики во входном списке
	RuleID    string
	Title     string
	Message   string
	Line      uint32
	Column    uint32
	EditCount int
}

// SkippedFix captures a diagnostic that produced no edits, with a reason.
type SkippedFix struct {
	Index  int
	RuleID string
	Title  string
	Reason string
}

// Result aggregates applied and skipped fixes of one batch.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Edits   int
}

// Changed reports whether the batch rewrote anything.
func (r *Result) Changed() bool { return r != nil && r.Edits > 0 }

// ConflictPair names two fixes of one batch whose edits cannot be combined.
type ConflictPair struct {
	First, Second         int // индексы диагностик
	FirstRule, SecondRule string
	Reason                string
}

// ConflictError rejects a whole batch. The tree is left unchanged.
type ConflictError struct {
	Pairs []ConflictPair
}

func (e *ConflictError) Error() string {
	var sb strings.Builder
	sb.WriteString("fix: conflicting fixes: ")
	for i, p := range e.Pairs {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s (#%d) vs %s (#%d): %s", p.FirstRule, p.First, p.SecondRule, p.Second, p.Reason)
	}
	return sb.String()
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Losers returns the diagnostic indices to drop so that the rest of the batch
// is conflict free: for every pair whose both sides are still alive the later
// one goes.
func (e *ConflictError) Losers() map[int]bool {
	out := make(map[int]bool)
	for _, p := range e.Pairs {
		if out[p.First] || out[p.Second] {
			continue
		}
		out[p.Second] = true
	}
	return out
}

type candidate struct {
	index int
	diag  diag.Diagnostic
	prov  Provider
	edits []syntax.Edit
}

// Apply computes the fix of every diagnostic that has a provider in set and
// applies them all as one batch. Diagnostics without a provider or whose
// provider reports ErrNotApplicable are recorded in Result.Skipped.
//
// On conflict the original tree is returned with a *ConflictError. Any other
// provider failure aborts the batch the same way.
func Apply(t *syntax.Tree, diagnostics []diag.Diagnostic, set *Set) (*syntax.Tree, *Result, error) {
	result := &Result{}
	if t == nil {
		return nil, result, fmt.Errorf("fix: tree is nil")
	}

	cands, skips, err := gatherCandidates(t, diagnostics, set)
	result.Skipped = append(result.Skipped, skips...)
	if err != nil {
		return t, result, err
	}
	if len(cands) == 0 {
		return t, result, nil
	}

	if err := checkConflicts(t, cands); err != nil {
		return t, result, err
	}

	all := make([]syntax.Edit, 0, len(cands)*2)
	for _, c := range cands {
		all = append(all, c.edits...)
	}
	next, err := t.Replace(all)
	if err != nil {
		return t, result, err
	}

	for _, c := range cands {
		result.Applied = append(result.Applied, AppliedFix{
			Index:     c.index,
			RuleID:    c.diag.RuleID,
			Title:     c.prov.Title(),
			Message:   c.diag.Message,
			Line:      c.diag.Start.Line,
			Column:    c.diag.Start.Col,
			EditCount: len(c.edits),
		})
	}
	result.Edits = len(all)
	return next, result, nil
}

// gatherCandidates computes edits in input order.
func gatherCandidates(t *syntax.Tree, diagnostics []diag.Diagnostic, set *Set) ([]candidate, []SkippedFix, error) {
	cands := make([]candidate, 0, len(diagnostics))
	skips := make([]SkippedFix, 0)
	for i, d := range diagnostics {
		p, ok := set.Lookup(d.RuleID)
		if !ok {
			skips = append(skips, SkippedFix{Index: i, RuleID: d.RuleID, Reason: "no fix provider"})
			continue
		}
		edits, err := p.ComputeFix(d, t)
		switch {
		case errors.Is(err, ErrNotApplicable):
			skips = append(skips, SkippedFix{Index: i, RuleID: d.RuleID, Title: p.Title(), Reason: err.Error()})
			continue
		case err != nil:
			return nil, skips, fmt.Errorf("fix %s at %s: %w", d.RuleID, d.Location(), err)
		}
		if len(edits) == 0 {
			skips = append(skips, SkippedFix{Index: i, RuleID: d.RuleID, Title: p.Title(), Reason: "fix has no edits"})
			continue
		}
		cands = append(cands, candidate{index: i, diag: d, prov: p, edits: edits})
	}
	return cands, skips, nil
}

// checkConflicts compares edits of different fixes pairwise. Edits inside
// one fix are validated by Tree.Replace.
func checkConflicts(t *syntax.Tree, cands []candidate) error {
	var pairs []ConflictPair
	for i := range cands {
		for j := i + 1; j < len(cands); j++ {
			reason := editsConflict(t, cands[i].edits, cands[j].edits)
			if reason == "" {
				continue
			}
			pairs = append(pairs, ConflictPair{
				First:      cands[i].index,
				Second:     cands[j].index,
				FirstRule:  cands[i].diag.RuleID,
				SecondRule: cands[j].diag.RuleID,
				Reason:     reason,
			})
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	return &ConflictError{Pairs: pairs}
}

func editsConflict(t *syntax.Tree, a, b []syntax.Edit) string {
	for _, ea := range a {
		for _, eb := range b {
			if reason := editPairConflict(t, ea, eb); reason != "" {
				return reason
			}
		}
	}
	return ""
}

func editPairConflict(t *syntax.Tree, a, b syntax.Edit) string {
	if !t.Valid(a.Target) || !t.Valid(b.Target) {
		return "" // Replace сообщит ErrInvalidEdit
	}
	switch {
	case a.Target == b.Target:
		return fmt.Sprintf("both rewrite %s #%d", t.Kind(a.Target), a.Target)
	case t.Contains(a.Target, b.Target) || t.Contains(b.Target, a.Target):
		return fmt.Sprintf("%s #%d and %s #%d are nested", t.Kind(a.Target), a.Target, t.Kind(b.Target), b.Target)
	}
	sa, sb := t.FullSpan(a.Target), t.FullSpan(b.Target)
	left, right := a, b
	switch {
	case sa.End == sb.Start:
	case sb.End == sa.Start:
		left, right = b, a
	default:
		return ""
	}
	if !sameTrivia(left.Replacement.Trailing(), t.Node(left.Target).Trailing()) ||
		!sameTrivia(right.Replacement.Leading(), t.Node(right.Target).Leading()) {
		return fmt.Sprintf("adjacent edits of %s #%d and %s #%d rewrite the trivia between them",
			t.Kind(left.Target), left.Target, t.Kind(right.Target), right.Target)
	}
	return ""
}

func sameTrivia(a, b []token.Trivia) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}

// Select filters diagnostics down to the ones a fix run should attempt.
// Diagnostics keep their input order.
func Select(diagnostics []diag.Diagnostic, set *Set, opts SelectOptions) ([]diag.Diagnostic, []SkippedFix) {
	selected := make([]diag.Diagnostic, 0, len(diagnostics))
	skipped := make([]SkippedFix, 0)
	var fallback *diag.Diagnostic
	for i := range diagnostics {
		d := diagnostics[i]
		p, ok := set.Lookup(d.RuleID)
		if !ok {
			continue
		}
		if opts.Mode == ApplyModeRule && d.RuleID != opts.RuleID {
			continue
		}
		safe := applicabilityOf(p) == ApplicabilityAlwaysSafe
		if opts.Mode == ApplyModeOnce {
			if safe {
				return []diag.Diagnostic{d}, skipped
			}
			if fallback == nil {
				fallback = &diagnostics[i]
			}
			continue
		}
		if !safe && !opts.Unsafe && opts.Mode != ApplyModeRule {
			skipped = append(skipped, SkippedFix{
				Index:  i,
				RuleID: d.RuleID,
				Title:  p.Title(),
				Reason: fmt.Sprintf("applicability is %s", applicabilityOf(p)),
			})
			continue
		}
		selected = append(selected, d)
	}
	if opts.Mode == ApplyModeOnce && fallback != nil {
		return []diag.Diagnostic{*fallback}, skipped
	}
	return selected, skipped
}

// DiagnoseFunc produces the diagnostics of one tree generation.
type DiagnoseFunc func(t *syntax.Tree) ([]diag.Diagnostic, error)

// Converge re-diagnoses and re-applies fixes until no fix changes the tree
// and returns the number of rounds that changed it. Conflicting fixes are
// deferred to the next round. ErrNotConverged is returned when fixes still
// apply after maxRounds.
func Converge(t *syntax.Tree, diagnose DiagnoseFunc, set *Set, maxRounds int) (*syntax.Tree, int, error) {
	for round := 0; ; round++ {
		diags, err := diagnose(t)
		if err != nil {
			return t, round, err
		}
		next, res, err := applyDeferring(t, fixable(diags, set), set)
		if err != nil {
			return t, round, err
		}
		if !res.Changed() {
			return t, round, nil
		}
		if round == maxRounds {
			return t, round, fmt.Errorf("%w after %d rounds", ErrNotConverged, maxRounds)
		}
		t = next
	}
}

// applyDeferring drops the losers of every conflict until the batch applies.
func applyDeferring(t *syntax.Tree, diags []diag.Diagnostic, set *Set) (*syntax.Tree, *Result, error) {
	for {
		next, res, err := Apply(t, diags, set)
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			return next, res, err
		}
		losers := conflict.Losers()
		kept := make([]diag.Diagnostic, 0, len(diags)-len(losers))
		for i, d := range diags {
			if !losers[i] {
				kept = append(kept, d)
			}
		}
		diags = kept
	}
}

func fixable(diags []diag.Diagnostic, set *Set) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if set.Has(d.RuleID) {
			out = append(out, d)
		}
	}
	return out
}
