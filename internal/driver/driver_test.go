package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/analysis"
	"sharplint/internal/checks"
	"sharplint/internal/diag"
	"sharplint/internal/fix"
	"sharplint/internal/syntax"
	"sharplint/internal/verify"
)

const asyncSource = "class Worker\n{\n    async void Fire() { }\n}\n"

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testOptions(t *testing.T) Options {
	return Options{
		Registry: checks.Registry(),
		Fixes:    checks.Fixes(),
		Jobs:     2,
		Logger:   verify.NewTestLogger(t),
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.cs", "")
	b := writeTemp(t, dir, "sub/b.CS", "")
	writeTemp(t, dir, "obj/c.cs", "")
	writeTemp(t, dir, "gen/d.cs", "")
	notes := writeTemp(t, dir, "notes.txt", "")

	exclude := func(p string) bool { return strings.Contains(filepath.ToSlash(p), "/gen/") }
	files, err := Discover([]string{dir, notes, a}, exclude)
	require.NoError(t, err)
	assert.Equal(t, []string{a, notes, b}, files)

	_, err = Discover([]string{t.TempDir()}, nil)
	require.ErrorIs(t, err, ErrNoInput)

	_, err = Discover([]string{filepath.Join(dir, "missing")}, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiagnose(t *testing.T) {
	dir := t.TempDir()
	good := writeTemp(t, dir, "worker.cs", asyncSource)
	bad := writeTemp(t, dir, "broken.cs", "class {")
	missing := filepath.Join(dir, "missing.cs")

	rep, err := Diagnose(context.Background(), []string{good, bad, missing}, testOptions(t))
	require.NoError(t, err)
	require.Len(t, rep.Files, 3)

	worker := rep.Files[0]
	require.NoError(t, worker.Err)
	require.Len(t, worker.Records, 1)
	rec := worker.Records[0]
	assert.Equal(t, checks.AsyncMethodWithoutAsyncSuffix, rec.RuleID)
	assert.Equal(t, uint32(3), rec.Start.Line)
	assert.Equal(t, uint32(16), rec.Start.Col)
	assert.Equal(t, filepath.ToSlash(good), rec.Path)
	assert.NotNil(t, worker.Tree)

	broken := rep.Files[1]
	assert.True(t, broken.ParseFailed())
	assert.NotEmpty(t, broken.Records)
	assert.Nil(t, broken.Tree)

	assert.Error(t, rep.Files[2].Err)
	assert.False(t, rep.Files[2].ParseFailed())
	assert.True(t, rep.Failed())

	errs, warnings, _ := rep.Counts()
	assert.Positive(t, errs)
	assert.Equal(t, 1, warnings)
	assert.NotEmpty(t, rep.Timing.Phases)
}

func TestDiagnoseRequiresRegistry(t *testing.T) {
	_, err := Diagnose(context.Background(), nil, Options{})
	require.ErrorIs(t, err, ErrNoRegistry)
}

func TestDiagnoseCancelled(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "worker.cs", asyncSource)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Diagnose(ctx, []string{path}, testOptions(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiagnoseCache(t *testing.T) {
	dir := t.TempDir()
	first := writeTemp(t, dir, "a/worker.cs", asyncSource)
	second := writeTemp(t, dir, "b/worker.cs", asyncSource)
	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	opts := testOptions(t)
	opts.Cache = cache
	cold, err := Diagnose(context.Background(), []string{first}, opts)
	require.NoError(t, err)
	assert.False(t, cold.Files[0].Cached)

	warm, err := Diagnose(context.Background(), []string{second}, opts)
	require.NoError(t, err)
	got := warm.Files[0]
	assert.True(t, got.Cached)
	require.Len(t, got.Records, 1)
	want := cold.Files[0].Records[0]
	want.Path = filepath.ToSlash(second)
	assert.Equal(t, want, got.Records[0])

	// другой набор правил: другой ключ
	opts.CacheSalt = "Fact"
	salted, err := Diagnose(context.Background(), []string{first}, opts)
	require.NoError(t, err)
	assert.False(t, salted.Files[0].Cached)

	require.NoError(t, cache.DropAll())
	again, err := Diagnose(context.Background(), []string{second}, testOptionsWithCache(t, cache))
	require.NoError(t, err)
	assert.False(t, again.Files[0].Cached)
}

func testOptionsWithCache(t *testing.T, c *Cache) Options {
	opts := testOptions(t)
	opts.Cache = c
	return opts
}

func TestFixWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "m.cs", "class C { void M() { if (x) y(); } }")

	rep, err := Fix(context.Background(), []string{path}, testOptions(t), FixOptions{})
	require.NoError(t, err)
	ff := rep.Files[0]
	require.NoError(t, ff.Err)
	assert.True(t, ff.Changed())
	assert.True(t, ff.Written)
	assert.Equal(t, 1, ff.Rounds)
	assert.Empty(t, ff.Remaining)
	assert.Equal(t, 1, rep.Changed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class C { void M() { if (x)\n{\n    y();\n} } }", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFixDryRun(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "worker.cs", asyncSource)

	rep, err := Fix(context.Background(), []string{path}, testOptions(t), FixOptions{DryRun: true})
	require.NoError(t, err)
	ff := rep.Files[0]
	assert.True(t, ff.Changed())
	assert.False(t, ff.Written)
	assert.Contains(t, ff.After, "async void FireAsync() { }")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, asyncSource, string(data))
}

func TestFixKeepsByteOrderMark(t *testing.T) {
	bom := "\xEF\xBB\xBF"
	path := writeTemp(t, t.TempDir(), "worker.cs", bom+asyncSource)

	_, err := Fix(context.Background(), []string{path}, testOptions(t), FixOptions{})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), bom))
	assert.Contains(t, string(data), "FireAsync")
}

func TestFixOnce(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "m.cs", "class C { void M() { if (a) x(); if (b) y(); } }")

	fo := FixOptions{DryRun: true, Select: fix.SelectOptions{Mode: fix.ApplyModeOnce}}
	rep, err := Fix(context.Background(), []string{path}, testOptions(t), fo)
	require.NoError(t, err)
	ff := rep.Files[0]
	require.NoError(t, ff.Err)
	assert.Equal(t, 1, ff.Rounds)
	assert.Contains(t, ff.After, "{\n    x();\n}")
	assert.Contains(t, ff.After, "if (b) y();")
	require.Len(t, ff.Remaining, 1)
	assert.Equal(t, checks.IfStatementWithoutBraces, ff.Remaining[0].RuleID)
}

func TestFixRuleMode(t *testing.T) {
	src := "class Worker\n{\n    async void Fire() { if (a) x(); }\n}\n"
	path := writeTemp(t, t.TempDir(), "worker.cs", src)

	fo := FixOptions{DryRun: true, Select: fix.SelectOptions{Mode: fix.ApplyModeRule, RuleID: checks.AsyncMethodWithoutAsyncSuffix}}
	rep, err := Fix(context.Background(), []string{path}, testOptions(t), fo)
	require.NoError(t, err)
	ff := rep.Files[0]
	assert.Contains(t, ff.After, "async void FireAsync() { if (a) x(); }")
	require.Len(t, ff.Remaining, 1)
	assert.Equal(t, checks.IfStatementWithoutBraces, ff.Remaining[0].RuleID)
}

func TestFixReportsRuleFailures(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "m.cs", "class C { void M() { if (x) y(); } }")
	boom := analysis.Rule{
		ID:    "Boom",
		Kinds: []syntax.Kind{syntax.KindMethodDeclaration},
		Check: func(*analysis.Context, syntax.NodeID) []diag.Diagnostic { panic("boom") },
	}
	opts := testOptions(t)
	opts.Registry = analysis.MustRegistry(append(checks.Rules(checks.Options{}), boom)...)

	rep, err := Fix(context.Background(), []string{path}, opts, FixOptions{DryRun: true})
	require.NoError(t, err)
	ff := rep.Files[0]
	require.NoError(t, ff.Err)
	assert.True(t, ff.Changed())
	require.Len(t, ff.Failures, 1)
	assert.Equal(t, "Boom", ff.Failures[0].RuleID)
	assert.ErrorIs(t, ff.Failures[0].Err, analysis.ErrRulePanic)
}

func TestFixSkipsBrokenFiles(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "broken.cs", "class {")
	rep, err := Fix(context.Background(), []string{path}, testOptions(t), FixOptions{})
	require.NoError(t, err)
	assert.True(t, rep.Failed())
	assert.False(t, rep.Files[0].Changed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class {", string(data))
}

func TestPhaseObserver(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "worker.cs", asyncSource)
	var mu sync.Mutex
	var names []string
	opts := testOptions(t)
	opts.Observer = func(ev PhaseEvent) {
		if ev.Status != PhaseEnd {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		names = append(names, ev.Name)
	}
	_, err := Diagnose(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"parse", "analyze"}, names)
}

func TestTokenizeAndParse(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "worker.cs", asyncSource)

	tr, err := Tokenize(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Bag.Len())
	assert.Equal(t, asyncSource, renderTokens(tr))

	pr, err := Parse(path, 0)
	require.NoError(t, err)
	assert.Equal(t, asyncSource, fix.RenderText(pr.Tree))
}

func renderTokens(tr *TokenizeResult) string {
	var sb strings.Builder
	for _, tok := range tr.Tokens {
		sb.WriteString(tok.FullText())
	}
	return sb.String()
}
