package checks

import (
	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/syntax"
)

func catchNullReferenceRule() analysis.Rule {
	return analysis.Rule{
		ID:            CatchNullReferenceException,
		Title:         "Verifies whether no NullReferenceExceptions are caught",
		Category:      CategoryExceptions,
		Severity:      diag.SevWarning,
		MessageFormat: "Catching a NullReferenceException should be avoided.",
		Kinds:         []syntax.Kind{syntax.KindCatchClause},
		Check: func(ctx *analysis.Context, id syntax.NodeID) []diag.Diagnostic {
			t := ctx.Tree
			decl := t.ChildOfKind(id, syntax.KindCatchDeclaration)
			if decl == syntax.NoNode {
				return nil
			}
			typ := t.ChildOfKind(decl, syntax.KindTypeRef)
			if typ == syntax.NoNode {
				return nil
			}
			if !ctx.Model.InheritsFrom(ctx.Model.ResolveSymbol(t, typ), "NullReferenceException") {
				return nil
			}
			return []diag.Diagnostic{ctx.Report(typ)}
		},
	}
}
