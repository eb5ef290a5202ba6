package checks

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/fix"
	"sharplint/internal/semantic"
	"sharplint/internal/syntax"
	"sharplint/internal/token"
)

func testMethodPublicRule(attrs map[string]bool) analysis.Rule {
	return analysis.Rule{
		ID:            TestMethodWithoutPublicModifier,
		Title:         "Verifies whether a test method has the public modifier",
		Category:      CategoryTests,
		Severity:      diag.SevWarning,
		MessageFormat: `Test method "{0}" is not public.`,
		Kinds:         []syntax.Kind{syntax.KindMethodDeclaration},
		Check: func(ctx *analysis.Context, id syntax.NodeID) []diag.Diagnostic {
			if !isTestMethod(ctx, id, attrs) {
				return nil
			}
			name := semantic.NameToken(ctx.Tree, id)
			if name == syntax.NoNode {
				return nil
			}
			access := accessModifiers(ctx.Tree, id)
			if len(access) == 1 && ctx.Tree.Node(access[0]).TokenKind() == token.KwPublic {
				return nil
			}
			at := name
			if len(access) > 0 {
				at = access[0]
			}
			return []diag.Diagnostic{ctx.Report(at, ctx.Tree.Node(name).Text())}
		},
	}
}

func accessModifiers(t *syntax.Tree, decl syntax.NodeID) []syntax.NodeID {
	var out []syntax.NodeID
	for _, m := range semantic.Modifiers(t, decl) {
		if t.Node(m).TokenKind().IsAccessibility() {
			out = append(out, m)
		}
	}
	return out
}

func testMethodPublicFix() fix.Provider {
	return fix.NewProvider(TestMethodWithoutPublicModifier, "Make public",
		func(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error) {
			at, err := fix.Target(d, t, syntax.KindToken)
			if err != nil {
				return nil, err
			}
			method := t.Ancestor(at, syntax.KindMethodDeclaration)
			if method == syntax.NoNode {
				return nil, fmt.Errorf("%w: anchor is outside a method", fix.ErrNotApplicable)
			}
			return fix.ReplaceAccessibility(t, method, token.KwPublic)
		})
}

const testSuffix = "Test"

// testSuffixStart returns the byte offset of a trailing "Test" compared rune
// by rune under case folding, or -1.
func testSuffixStart(name string) int {
	// Caser хранит состояние, поэтому создаётся на каждый вызов.
	fold := cases.Fold()
	end := len(name)
	for i := utf8.RuneCountInString(testSuffix) - 1; i >= 0; i-- {
		r, size := utf8.DecodeLastRuneInString(name[:end])
		if size == 0 {
			return -1
		}
		if fold.String(string(r)) != fold.String(testSuffix[i:i+1]) {
			return -1
		}
		end -= size
	}
	return end
}

func hasTestSuffix(name string) bool { return testSuffixStart(name) >= 0 }

func removeTestSuffixRule(attrs map[string]bool) analysis.Rule {
	return analysis.Rule{
		ID:            RemoveTestSuffix,
		Title:         "Test methods do not need a \"Test\" suffix",
		Category:      CategoryTests,
		Severity:      diag.SevWarning,
		MessageFormat: `Test method "{0}" should not end with "Test".`,
		Kinds:         []syntax.Kind{syntax.KindMethodDeclaration},
		Check: func(ctx *analysis.Context, id syntax.NodeID) []diag.Diagnostic {
			name := semantic.NameToken(ctx.Tree, id)
			if name == syntax.NoNode {
				return nil
			}
			text := ctx.Tree.Node(name).Text()
			if !hasTestSuffix(text) || !isTestMethod(ctx, id, attrs) {
				return nil
			}
			return []diag.Diagnostic{ctx.Report(name, text)}
		},
	}
}

func removeTestSuffixFix() fix.Provider {
	return fix.NewProvider(RemoveTestSuffix, "Remove \"Test\" suffix",
		func(d diag.Diagnostic, t *syntax.Tree) ([]syntax.Edit, error) {
			name, err := identifierTarget(d, t)
			if err != nil {
				return nil, err
			}
			text := t.Node(name).Text()
			cut := testSuffixStart(text)
			if cut < 0 {
				return nil, fmt.Errorf("%w: %q has no test suffix", fix.ErrNotApplicable, text)
			}
			stripped := text[:cut]
			if stripped == "" || stripped == "@" {
				return nil, fmt.Errorf("%w: %q would lose its whole name", fix.ErrNotApplicable, text)
			}
			return []syntax.Edit{fix.RenameToken(t, name, stripped)}, nil
		})
}

// identifierTarget resolves an anchor that must be the name of a method.
func identifierTarget(d diag.Diagnostic, t *syntax.Tree) (syntax.NodeID, error) {
	name, err := fix.Target(d, t, syntax.KindToken)
	if err != nil {
		return syntax.NoNode, err
	}
	if t.Node(name).TokenKind() != token.Ident || semantic.NameToken(t, t.Parent(name)) != name {
		return syntax.NoNode, fmt.Errorf("%w: anchor is not a declaration name", fix.ErrNotApplicable)
	}
	return name, nil
}
