package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/parser"
	"sharplint/internal/semantic"
	"sharplint/internal/syntax"
)

const src = `class C
{
    void A() { if (x) y(); }
    void B() { while (x) y(); }
}`

func parse(t *testing.T) *syntax.Tree {
	t.Helper()
	tree, err := parser.ParseText("test.cs", src)
	require.NoError(t, err)
	return tree
}

// every возвращает правило, которое репортит каждый узел своих видов.
func every(id string, kinds ...syntax.Kind) analysis.Rule {
	return analysis.Rule{
		ID:            id,
		Severity:      diag.SevWarning,
		MessageFormat: "{0} seen by " + id,
		Kinds:         kinds,
		Check: func(ctx *analysis.Context, n syntax.NodeID) []diag.Diagnostic {
			return []diag.Diagnostic{ctx.Report(n, ctx.Tree.Kind(n))}
		},
	}
}

func ids(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.RuleID+"@"+d.Location())
	}
	return out
}

func TestMessageFormat(t *testing.T) {
	r := analysis.Rule{MessageFormat: `Test method "{0}" is not {1}. {2} {x}`}
	assert.Equal(t, `Test method "M" is not public. {2} {x}`, r.Message("M", "public"))
	assert.Equal(t, "plain", analysis.Rule{MessageFormat: "plain"}.Message("unused"))
	assert.Equal(t, "open {0", analysis.Rule{MessageFormat: "open {0"}.Message("x"))
}

func TestNewRegistryValidation(t *testing.T) {
	_, err := analysis.NewRegistry(every("A", syntax.KindIfStatement), every("A", syntax.KindBlock))
	assert.ErrorIs(t, err, analysis.ErrDuplicateRule)

	_, err = analysis.NewRegistry(analysis.Rule{ID: "NoKinds", Check: every("x", syntax.KindBlock).Check})
	assert.ErrorIs(t, err, analysis.ErrInvalidRule)

	_, err = analysis.NewRegistry(analysis.Rule{ID: "NoCheck", Kinds: []syntax.Kind{syntax.KindBlock}})
	assert.ErrorIs(t, err, analysis.ErrInvalidRule)

	_, err = analysis.NewRegistry(analysis.Rule{Kinds: []syntax.Kind{syntax.KindBlock}, Check: every("x", syntax.KindBlock).Check})
	assert.ErrorIs(t, err, analysis.ErrInvalidRule)

	assert.Panics(t, func() { analysis.MustRegistry(every("A", syntax.KindBlock), every("A", syntax.KindBlock)) })
}

func TestDispatchOrder(t *testing.T) {
	tree := parse(t)
	reg := analysis.MustRegistry(
		every("Loops", syntax.KindWhileStatement),
		every("Stmts", syntax.KindIfStatement, syntax.KindWhileStatement, syntax.KindIfStatement),
		every("Ifs", syntax.KindIfStatement),
	)

	res, err := analysis.Dispatch(context.Background(), tree, reg, nil)
	require.NoError(t, err)
	assert.False(t, res.Degraded())
	// traversal order first, registration order second
	assert.Equal(t, []string{"Stmts@3:16", "Ifs@3:16", "Loops@4:16", "Stmts@4:16"}, ids(res.Diagnostics))
	assert.Equal(t, "IfStatement seen by Stmts", res.Diagnostics[0].Message)
	assert.Equal(t, tree.Len(), res.Visited)

	// repeated passes are identical
	for range 5 {
		again := analysis.ListDiagnostics(tree, reg, semantic.NewSyntactic())
		assert.Equal(t, res.Diagnostics, again)
	}
}

func TestDispatchIsolatesPanics(t *testing.T) {
	tree := parse(t)
	calls := 0
	boom := analysis.Rule{
		ID:    "Boom",
		Kinds: []syntax.Kind{syntax.KindIfStatement, syntax.KindWhileStatement},
		Check: func(*analysis.Context, syntax.NodeID) []diag.Diagnostic {
			calls++
			panic("kaboom")
		},
	}
	reg := analysis.MustRegistry(boom, every("Stmts", syntax.KindIfStatement, syntax.KindWhileStatement))

	res, err := analysis.Dispatch(context.Background(), tree, reg, nil)
	require.NoError(t, err)
	assert.True(t, res.Degraded())
	assert.Equal(t, 1, calls, "failed rule must be disabled for the rest of the pass")
	require.Len(t, res.Failures, 1)
	f := res.Failures[0]
	assert.Equal(t, "Boom", f.RuleID)
	assert.Equal(t, syntax.KindIfStatement, f.Kind)
	assert.True(t, errors.Is(f.Err, analysis.ErrRulePanic))
	assert.Contains(t, f.Error(), "kaboom")
	assert.Equal(t, []string{"Stmts@3:16", "Stmts@4:16"}, ids(res.Diagnostics))
}

func TestDispatchCancellation(t *testing.T) {
	tree := parse(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := analysis.Dispatch(ctx, tree, analysis.MustRegistry(every("Ifs", syntax.KindIfStatement)), nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Empty(t, res.Diagnostics)
}

func TestSubsetAndSeverities(t *testing.T) {
	tree := parse(t)
	reg := analysis.MustRegistry(every("Ifs", syntax.KindIfStatement), every("Loops", syntax.KindWhileStatement))

	sev, err := reg.WithSeverities(map[string]diag.Severity{"Loops": diag.SevError})
	require.NoError(t, err)
	assert.Equal(t, diag.SevError, sev.Severity("Loops"))
	assert.Equal(t, diag.SevWarning, reg.Severity("Loops"), "original registry is unchanged")

	ds := analysis.ListDiagnostics(tree, sev, nil)
	require.Len(t, ds, 2)
	assert.Equal(t, diag.SevWarning, ds[0].Severity)
	assert.Equal(t, diag.SevError, ds[1].Severity)

	only := sev.Subset(func(r analysis.Rule) bool { return r.ID == "Loops" })
	assert.Equal(t, 1, only.Len())
	assert.Equal(t, diag.SevError, only.Severity("Loops"))
	assert.Equal(t, []string{"Loops@4:16"}, ids(analysis.ListDiagnostics(tree, only, nil)))
	_, ok := only.Lookup("Ifs")
	assert.False(t, ok)

	_, err = reg.WithSeverities(map[string]diag.Severity{"Nope": diag.SevInfo})
	assert.ErrorIs(t, err, analysis.ErrUnknownRule)
	assert.Equal(t, []string{"Ifs", "Loops"}, reg.IDs())
}

func TestDiagnosticAnchors(t *testing.T) {
	tree := parse(t)
	reg := analysis.MustRegistry(every("Ifs", syntax.KindIfStatement))
	ds := analysis.ListDiagnostics(tree, reg, nil)
	require.Len(t, ds, 1)

	a := ds[0].Anchor
	assert.True(t, a.Valid(tree))
	assert.Equal(t, syntax.KindIfStatement, tree.Kind(a.Node))
	assert.Equal(t, "if (x) y();", tree.TrimmedText(a.Node))
	assert.Equal(t, uint32(3), ds[0].End.Line)
}
