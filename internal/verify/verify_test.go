package verify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/checks"
	"sharplint/internal/verify"
)

func harness() verify.Harness {
	return verify.Harness{Registry: checks.Registry(), Fixes: checks.Fixes()}
}

const src = "class C { void M() { if (x) y(); } }"

func TestCheckPasses(t *testing.T) {
	problems := verify.Check(harness(), verify.Scenario{
		Input: src,
		Want:  verify.Want("IfStatementWithoutBraces 1:22"),
		Fixed: verify.Text("class C { void M() { if (x)\n{\n    y();\n} } }"),
	})
	assert.Empty(t, problems)
}

func TestCheckReportsCountAndPosition(t *testing.T) {
	problems := verify.Check(harness(), verify.Scenario{
		Input: src,
		Want:  verify.Want("IfStatementWithoutBraces 1:1", "IfStatementWithoutBraces 1:2"),
	})
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "got 1 diagnostics, want 2")
	assert.Contains(t, problems[1], "diagnostic #0: got IfStatementWithoutBraces 1:22, want IfStatementWithoutBraces 1:1")
}

func TestCheckReportsFalsePositives(t *testing.T) {
	problems := verify.Check(harness(), verify.Scenario{Input: src})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "got 1 diagnostics, want 0")
}

func TestCheckDiffsFixedText(t *testing.T) {
	problems := verify.Check(harness(), verify.Scenario{
		Input: src,
		Want:  verify.Want("IfStatementWithoutBraces 1:22"),
		Fixed: verify.Text(src),
	})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "fixed text mismatch")
	assert.Contains(t, problems[0], "--- want")
	assert.Contains(t, problems[0], "+++ got")
}

func TestCheckReportsParseFailure(t *testing.T) {
	problems := verify.Check(harness(), verify.Scenario{Input: "class C { void M( }"})
	require.Len(t, problems, 1)
	assert.True(t, strings.HasPrefix(problems[0], "parse: "), problems[0])
}

func TestParseTxtar(t *testing.T) {
	sc, err := verify.ParseTxtar("a.txtar", []byte(`bracing
-- input.cs --
if
-- diagnostics --
# comment
IfStatementWithoutBraces 3:5

LoopStatementWithoutBraces 10:1
-- fixed.cs --
fixed
`))
	require.NoError(t, err)
	assert.Equal(t, "bracing", sc.Name)
	assert.Equal(t, "if\n", sc.Input)
	require.NotNil(t, sc.Fixed)
	assert.Equal(t, "fixed\n", *sc.Fixed)
	assert.Equal(t, []verify.Expectation{
		{RuleID: "IfStatementWithoutBraces", Line: 3, Column: 5},
		{RuleID: "LoopStatementWithoutBraces", Line: 10, Column: 1},
	}, sc.Want)
}

func TestParseTxtarErrors(t *testing.T) {
	for name, data := range map[string]string{
		"no input":      "-- fixed.cs --\nx\n",
		"unknown file":  "-- input.cs --\nx\n-- other --\ny\n",
		"bad position":  "-- input.cs --\nx\n-- diagnostics --\nRule 3\n",
		"bad line":      "-- input.cs --\nx\n-- diagnostics --\nRule a:3\n",
		"too many cols": "-- input.cs --\nx\n-- diagnostics --\nRule 1:2 extra\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := verify.ParseTxtar(name, []byte(data))
			require.ErrorIs(t, err, verify.ErrBadScenario)
		})
	}
}

func TestUnified(t *testing.T) {
	assert.Empty(t, verify.Unified("a", "b", "x\n", "x\n"))
	diff := verify.Unified("a", "b", "x\ny\n", "x\nz\n")
	assert.Contains(t, diff, "-y")
	assert.Contains(t, diff, "+z")
}

func TestConverges(t *testing.T) {
	got, err := verify.Converges(harness(), src, 3)
	require.NoError(t, err)
	assert.Equal(t, "class C { void M() { if (x)\n{\n    y();\n} } }", got)
}

func TestNewTestLogger(t *testing.T) {
	log := verify.NewTestLogger(t)
	log.Debug("scenario loaded", "name", "bracing")
}
