package checks

import (
	"fmt"
	"strings"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/fix"
	"sharplint/internal/semantic"
	"sharplint/internal/syntax"
)

const asyncSuffix = "Async"

func asyncSuffixRule() analysis.Rule {
	return analysis.Rule{
		ID:            AsyncMethodWithoutAsyncSuffix,
		Title:         "Verifies whether an async method has the 'Async' suffix",
		Category:      CategoryAsync,
		Severity:      diag.SevWarning,
		MessageFormat: `Method "{0}" is async but does not end with "Async".`,
		Kinds:         []syntax.Kind{syntax.KindMethodDeclaration},
		Check:         checkAsyncSuffix,
	}
}

func checkAsyncSuffix(ctx *analysis.Context, id syntax.NodeID) []diag.Diagnostic {
	t := ctx.Tree
	name := semantic.NameToken(t, id)
	if name == syntax.NoNode {
		return nil
	}
	text := t.Node(name).Text()
	// Main и override не переименовать: имя задано снаружи
	if text == "Main" || strings.HasSuffix(text, asyncSuffix) || semantic.HasModifier(t, id, "override") {
		return nil
	}
	if !ctx.Model.IsAsynchronous(ctx.Model.ResolveSymbol(t, id)) {
		return nil
	}
	return []diag.Diagnostic{ctx.Report(name, text)}
}

func asyncSuffixFix() fix.Provider {
	return fix.NewProvider(AsyncMethodWithoutAsyncSuffix, "Add \"Async\" suffix",
		func(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error) {
			name, err := identifierTarget(d, t)
			if err != nil {
				return nil, err
			}
			text := t.Node(name).Text()
			if strings.HasSuffix(text, asyncSuffix) {
				return nil, fmt.Errorf("%w: %q already ends with %s", fix.ErrNotApplicable, text, asyncSuffix)
			}
			return []syntax.Edit{fix.RenameToken(t, name, text+asyncSuffix)}, nil
		})
}
