package checks

import (
	"fmt"
	"slices"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/fix"
	"sharplint/internal/syntax"
)

func ifBracesRule() analysis.Rule {
	return analysis.Rule{
		ID:            IfStatementWithoutBraces,
		Title:         "If statement without braces",
		Category:      CategoryGeneral,
		Severity:      diag.SevWarning,
		MessageFormat: "An if statement should be written using braces",
		Kinds:         []syntax.Kind{syntax.KindIfStatement, syntax.KindElseClause},
		Check:         checkIfBraces,
	}
}

func checkIfBraces(ctx *analysis.Context, id syntax.NodeID) []diag.Diagnostic {
	c, ok := clauseOf(ctx.Tree, id)
	if !ok || ctx.Tree.Kind(c.body) == syntax.KindBlock {
		return nil
	}
	// else if: это цепочка, а не тело без скобок
	if ctx.Tree.Kind(id) == syntax.KindElseClause && ctx.Tree.Kind(c.body) == syntax.KindIfStatement {
		return nil
	}
	return []diag.Diagnostic{ctx.Report(c.keyword)}
}

func loopBracesRule() analysis.Rule {
	return analysis.Rule{
		ID:            LoopStatementWithoutBraces,
		Title:         "Loop statement without braces",
		Category:      CategoryGeneral,
		Severity:      diag.SevWarning,
		MessageFormat: "A {0} loop should be written using braces",
		Kinds: []syntax.Kind{
			syntax.KindWhileStatement,
			syntax.KindDoStatement,
			syntax.KindForStatement,
			syntax.KindForEachStatement,
		},
		Check: checkLoopBraces,
	}
}

func checkLoopBraces(ctx *analysis.Context, id syntax.NodeID) []diag.Diagnostic {
	c, ok := clauseOf(ctx.Tree, id)
	if !ok || ctx.Tree.Kind(c.body) == syntax.KindBlock {
		return nil
	}
	return []diag.Diagnostic{ctx.Report(c.keyword, ctx.Tree.Node(c.keyword).Text())}
}

func ifBracesFix() fix.Provider {
	return fix.NewProvider(IfStatementWithoutBraces, "Add braces",
		bracesFix(syntax.KindIfStatement, syntax.KindElseClause))
}

func loopBracesFix() fix.Provider {
	return fix.NewProvider(LoopStatementWithoutBraces, "Add braces",
		bracesFix(syntax.KindWhileStatement, syntax.KindDoStatement, syntax.KindForStatement, syntax.KindForEachStatement))
}

// bracesFix wraps the body of the clause whose keyword the diagnostic is
// anchored at.
func bracesFix(kinds ...syntax.Kind) fix.ComputeFunc {
	return func(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error) {
		kw, err := fix.Target(d, t, syntax.KindToken)
		if err != nil {
			return nil, err
		}
		owner := t.Parent(kw)
		if owner == syntax.NoNode || !slices.Contains(kinds, t.Kind(owner)) {
			return nil, fmt.Errorf("%w: keyword is not a clause of %v", fix.ErrNotApplicable, kinds)
		}
		c, ok := clauseOf(t, owner)
		if !ok || c.keyword != kw {
			return nil, fmt.Errorf("%w: %s has no embedded statement", fix.ErrNotApplicable, t.Kind(owner))
		}
		return fix.WrapInBlock(t, c.keyword, c.header, c.body)
	}
}
