package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/checks"
	"sharplint/internal/diagfmt"
)

const workerSource = "class Worker\n{\n    async void Fire() { }\n}\n"

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func exitCode(err error) int {
	if e, ok := err.(exitError); ok {
		return e.code
	}
	return -1
}

func TestDiagShort(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)
	out, _, err := execute(t, "diag", "--format", "short", path)
	require.NoError(t, err)
	assert.Contains(t, out, "worker.cs:3:16: warning AsyncMethodWithoutAsyncSuffix: ")
}

func TestDiagPrettySummary(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "worker.cs", workerSource)
	out, _, err := execute(t, "diag", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING AsyncMethodWithoutAsyncSuffix")
	assert.Contains(t, out, "3 |     async void Fire() { }")
	assert.Contains(t, out, "0 error(s), 1 warning(s) in 1 file(s)")
}

func TestDiagWarningsAsErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)
	out, _, err := execute(t, "diag", "--format", "short", "--warnings-as-errors", path)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, ": error AsyncMethodWithoutAsyncSuffix")

	_, _, err = execute(t, "diag", "--no-warnings", "--warnings-as-errors", path)
	require.Error(t, err)
	assert.Equal(t, -1, exitCode(err))
}

func TestDiagJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)
	out, _, err := execute(t, "diag", "--format", "json", path)
	require.NoError(t, err)

	var got diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 1, got.Count)
	assert.Equal(t, checks.AsyncMethodWithoutAsyncSuffix, got.Diagnostics[0].RuleID)
}

func TestDiagParseFailure(t *testing.T) {
	path := writeSource(t, t.TempDir(), "broken.cs", "class {")
	out, _, err := execute(t, "diag", "--format", "short", path)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, ": error ")
}

func TestDiagConfig(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "sharplint.toml", "[rules.AsyncMethodWithoutAsyncSuffix]\nenabled = false\n")
	path := writeSource(t, dir, "worker.cs", workerSource)

	out, _, err := execute(t, "diag", "--format", "short", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	writeSource(t, dir, "sharplint.toml", "[rules.NoSuchRule]\nenabled = false\n")
	_, _, err = execute(t, "diag", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchRule")
}

func TestFixDryRun(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)
	out, errOut, err := execute(t, "fix", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "-    async void Fire() { }")
	assert.Contains(t, out, "+    async void FireAsync() { }")
	assert.Contains(t, errOut, "would fix 1 of 1 file(s), 0 diagnostic(s) remaining")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, workerSource, string(data))
}

func TestFixWrites(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)
	out, _, err := execute(t, "fix", path)
	require.NoError(t, err)
	assert.Contains(t, out, "fixed ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "async void FireAsync() { }")
}

func TestFixFlagValidation(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)

	_, _, err := execute(t, "fix", "--all", "--once", path)
	require.Error(t, err)

	_, _, err = execute(t, "fix", "--rule", "NoSuchRule", path)
	require.Error(t, err)

	_, _, err = execute(t, "fix", "--rule", checks.CatchNullReferenceException, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no fix")
}

func TestRulesJSON(t *testing.T) {
	out, _, err := execute(t, "rules", "--format", "json", t.TempDir())
	require.NoError(t, err)

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 6)
	assert.Equal(t, checks.IfStatementWithoutBraces, infos[0].ID)
	last := infos[len(infos)-1]
	assert.Equal(t, checks.CatchNullReferenceException, last.ID)
	assert.False(t, last.Fixable)
	assert.True(t, last.Enabled)
	assert.Equal(t, "warning", last.Severity)
}

func TestParseAndTokenize(t *testing.T) {
	path := writeSource(t, t.TempDir(), "worker.cs", workerSource)

	out, _, err := execute(t, "parse", "--format", "text", path)
	require.NoError(t, err)
	assert.Equal(t, workerSource, out)

	out, _, err = execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "MethodDeclaration")

	out, _, err = execute(t, "tokenize", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Ident           "Worker"`)

	broken := writeSource(t, t.TempDir(), "broken.cs", "class {")
	_, errOut, err := execute(t, "parse", broken)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, errOut, "ERROR")
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--hash")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "sharplint", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.Equal(t, "unknown", payload.GitCommit)
}

func TestDiagTraceAndProfiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "worker.cs", workerSource)
	tracePath := filepath.Join(dir, "run.ndjson")
	memPath := filepath.Join(dir, "mem.out")

	_, _, err := execute(t, "--trace", tracePath, "--mem-profile", memPath, "diag", "--format", "short", path)
	require.NoError(t, err)

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	var names []string
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		var ev struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(line, &ev))
		if ev.Kind == "end" {
			names = append(names, ev.Name)
		}
	}
	assert.Equal(t, []string{"parse", "analyze", "diag"}, names)

	info, err := os.Stat(memPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, _, err = execute(t, "--trace", tracePath, "--trace-level", "loud", "diag", path)
	require.Error(t, err)
}
