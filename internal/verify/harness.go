package verify

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"sharplint/internal/analysis"
	"sharplint/internal/diag"
	"sharplint/internal/diagfmt"
	"sharplint/internal/fix"
	"sharplint/internal/parser"
	"sharplint/internal/semantic"
	"sharplint/internal/syntax"
	"sharplint/internal/testkit"
)

// Harness is the rule set under test. A nil Model means the syntactic model.
type Harness struct {
	Registry *analysis.Registry
	Fixes    *fix.Set
	Model    semantic.Model
}

func (h Harness) model() semantic.Model {
	if h.Model == nil {
		return semantic.NewSyntactic()
	}
	return h.Model
}

func (h Harness) diagnose(t *syntax.Tree) []diag.Diagnostic {
	return analysis.ListDiagnostics(t, h.Registry, h.model())
}

// Check runs sc and returns one line per mismatch; nil means the scenario
// passed.
func Check(h Harness, sc Scenario) []string {
	var problems []string
	tree, err := parser.ParseText(scenarioPath(sc), sc.Input)
	if err != nil {
		return []string{fmt.Sprintf("parse: %v", err)}
	}
	if got := tree.Render(); got != sc.Input {
		problems = append(problems, "round-trip changed the input:\n"+Unified("input", "rendered", sc.Input, got))
	}
	if err := testkit.CheckTreeInvariants(tree); err != nil {
		problems = append(problems, fmt.Sprintf("parsed tree: %v", err))
	}

	diags := h.diagnose(tree)
	problems = append(problems, compareDiagnostics(sc.Want, diags)...)

	if sc.Fixed == nil {
		return problems
	}
	fixed, _, err := fix.Apply(tree, diags, h.Fixes)
	if err != nil {
		return append(problems, fmt.Sprintf("apply fixes: %v", err))
	}
	if got := fix.RenderText(fixed); got != *sc.Fixed {
		problems = append(problems, "fixed text mismatch:\n"+Unified("want", "got", *sc.Fixed, got))
	}
	if err := testkit.CheckTreeInvariants(fixed); err != nil {
		problems = append(problems, fmt.Sprintf("fixed tree: %v", err))
	}
	return problems
}

// Run is Check reporting through t.
func Run(t testing.TB, h Harness, sc Scenario) {
	t.Helper()
	for _, p := range Check(h, sc) {
		t.Errorf("%s: %s", scenarioPath(sc), p)
	}
}

// RunTxtar loads every archive matching pattern and runs it as a subtest.
func RunTxtar(t *testing.T, h Harness, pattern string) {
	t.Helper()
	paths, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %s: %v", pattern, err)
	}
	if len(paths) == 0 {
		t.Fatalf("no scenario archives match %s", pattern)
	}
	for _, path := range paths {
		sc, err := LoadTxtar(path)
		if err != nil {
			t.Fatalf("%v", err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			Run(t, h, sc)
		})
	}
}

func scenarioPath(sc Scenario) string {
	if sc.Name == "" {
		return "scenario.cs"
	}
	return sc.Name
}

func compareDiagnostics(want []Expectation, got []diag.Diagnostic) []string {
	var problems []string
	if len(want) != len(got) {
		problems = append(problems, fmt.Sprintf("got %d diagnostics, want %d:\n%s",
			len(got), len(want), describe(got)))
	}
	for i := 0; i < len(want) && i < len(got); i++ {
		w, d := want[i], got[i]
		if d.RuleID != w.RuleID || d.Start.Line != w.Line || d.Start.Col != w.Column {
			problems = append(problems, fmt.Sprintf("diagnostic #%d: got %s %s, want %s",
				i, d.RuleID, d.Location(), w))
		}
	}
	return problems
}

func describe(diags []diag.Diagnostic) string {
	var sb strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&sb, "\t%s\n", d)
	}
	return sb.String()
}

// Unified returns a unified diff between two texts.
func Unified(fromName, toName, from, to string) string {
	return diagfmt.Unified(fromName, toName, from, to)
}

// Converges applies fixes round after round until none applies, then checks
// that the result parses and that one more pass rewrites nothing. It returns
// the final text.
func Converges(h Harness, input string, maxRounds int) (string, error) {
	tree, err := parser.ParseText("converge.cs", input)
	if err != nil {
		return "", err
	}
	final, _, err := fix.Converge(tree, func(t *syntax.Tree) ([]diag.Diagnostic, error) {
		return h.diagnose(t), nil
	}, h.Fixes, maxRounds)
	text := fix.RenderText(final)
	if err != nil {
		return text, err
	}
	if err := testkit.CheckTreeInvariants(final); err != nil {
		return text, err
	}
	reparsed, err := parser.ParseText("converge.cs", text)
	if err != nil {
		return text, fmt.Errorf("fixed text does not parse: %w", err)
	}
	again, res, err := fix.Apply(reparsed, h.diagnose(reparsed), h.Fixes)
	if err != nil {
		return text, err
	}
	if res.Changed() {
		return text, fmt.Errorf("%w: another pass rewrites the result:\n%s",
			fix.ErrNotConverged, Unified("converged", "again", text, fix.RenderText(again)))
	}
	return text, nil
}
