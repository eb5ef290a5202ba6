package analysis

import (
	"context"
	"errors"
	"fmt"

	"sharplint/internal/diag"
	"sharplint/internal/semantic"
	"sharplint/internal/syntax"
)

// ErrRulePanic is wrapped by RuleFailure.Err when a check panics.
var ErrRulePanic = errors.New("rule panicked")

// RuleFailure records a rule that faulted during a pass. The rule is
// disabled for the rest of that pass.
type RuleFailure struct {
	RuleID string
	Node   syntax.NodeID
	Kind   syntax.Kind
	Err    error
}

func (f RuleFailure) Error() string {
	return fmt.Sprintf("%s at %s #%d: %v", f.RuleID, f.Kind, f.Node, f.Err)
}

// Result is the outcome of one pass.
type Result struct {
	Tree        *syntax.Tree
	Diagnostics []diag.Diagnostic
	Failures    []RuleFailure
	// Visited: число посещённых узлов (для таймингов и отмены).
	Visited int
}

// Degraded reports whether some rule failed during the pass.
func (r *Result) Degraded() bool { return len(r.Failures) > 0 }

// Dispatch runs every rule of reg over tree in one pre-order traversal.
// Cancellation is checked between nodes; on cancellation the partial result
// is returned together with ctx.Err().
func Dispatch(ctx context.Context, tree *syntax.Tree, reg *Registry, model semantic.Model) (*Result, error) {
	res := &Result{Tree: tree}
	if tree == nil || reg == nil || reg.Len() == 0 {
		return res, nil
	}
	if model == nil {
		model = semantic.NewSyntactic()
	}

	disabled := make([]bool, reg.Len())
	rctx := &Context{Tree: tree, Model: model}

	for id := range tree.Preorder() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Visited++
		kind := tree.Kind(id)
		for _, idx := range reg.forKind(kind) {
			if disabled[idx] {
				continue
			}
			rule := &reg.rules[idx]
			rctx.rule = rule
			rctx.severity = reg.Severity(rule.ID)
			diags, err := runCheck(rctx, id)
			if err != nil {
				disabled[idx] = true
				res.Failures = append(res.Failures, RuleFailure{RuleID: rule.ID, Node: id, Kind: kind, Err: err})
				continue
			}
			res.Diagnostics = append(res.Diagnostics, diags...)
		}
	}
	return res, nil
}

// runCheck изолирует панику правила: она превращается в ошибку, проход продолжается.
func runCheck(ctx *Context, id syntax.NodeID) (diags []diag.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = fmt.Errorf("%w: %v", ErrRulePanic, r)
		}
	}()
	return ctx.rule.Check(ctx, id), nil
}

// ListDiagnostics runs a full pass and returns its diagnostics. Rule
// failures are dropped; use Dispatch to observe them.
func ListDiagnostics(tree *syntax.Tree, reg *Registry, model semantic.Model) []diag.Diagnostic {
	res, _ := Dispatch(context.Background(), tree, reg, model)
	return res.Diagnostics
}
