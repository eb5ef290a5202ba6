package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharplint/internal/analysis"
	"sharplint/internal/checks"
	"sharplint/internal/config"
	"sharplint/internal/diag"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTOMLFromParent(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "sharplint.toml"), `
jobs = 4
max_diagnostics = 10
test_attributes = ["Spec"]
exclude = ["gen/", "*.g.cs"]

[rules.IfStatementWithoutBraces]
enabled = false

[rules.RemoveTestSuffix]
severity = "error"
`)
	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := config.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sharplint.toml"), cfg.Path)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, 10, cfg.MaxDiagnostics)
	assert.Equal(t, []string{"Spec"}, cfg.TestAttributes)
	require.NotNil(t, cfg.Rules["IfStatementWithoutBraces"].Enabled)
	assert.False(t, *cfg.Rules["IfStatementWithoutBraces"].Enabled)
	assert.Equal(t, "error", cfg.Rules["RemoveTestSuffix"].Severity)

	assert.True(t, cfg.Excluded(filepath.Join(root, "gen", "x.cs")))
	assert.True(t, cfg.Excluded(filepath.Join(root, "model.g.cs")))
	assert.False(t, cfg.Excluded(filepath.Join(root, "src", "app", "x.cs")))
	// шаблон без слеша совпадает с именем файла на любой глубине
	assert.True(t, cfg.Excluded(filepath.Join(root, "src", "model.g.cs")))
}

func TestExcludedDoublestar(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Path = filepath.Join(root, "sharplint.toml")
	cfg.Exclude = []string{"**/obj/**", "src/*/Generated*.cs"}

	assert.True(t, cfg.Excluded(filepath.Join(root, "obj", "a.cs")))
	assert.True(t, cfg.Excluded(filepath.Join(root, "src", "app", "obj", "Debug", "a.cs")))
	assert.True(t, cfg.Excluded(filepath.Join(root, "src", "app", "GeneratedModel.cs")))
	assert.False(t, cfg.Excluded(filepath.Join(root, "src", "app", "deep", "GeneratedModel.cs")))
	assert.False(t, cfg.Excluded(filepath.Join(root, "src", "app", "Model.cs")))
}

func TestLoadYAML(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".sharplint.yaml"), `
jobs: 2
rules:
  LoopStatementWithoutBraces:
    severity: info
`)
	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "info", cfg.Rules["LoopStatementWithoutBraces"].Severity)
}

func TestTOMLWinsOverYAML(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "sharplint.toml"), "jobs = 1\n")
	write(t, filepath.Join(root, ".sharplint.yml"), "jobs: 2\n")
	path, ok, err := config.Find(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sharplint.toml", filepath.Base(path))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.NotNil(t, cfg.Rules)
	assert.False(t, cfg.Excluded("a.cs"))
}

func TestUnknownKeys(t *testing.T) {
	root := t.TempDir()
	toml := filepath.Join(root, "a", "sharplint.toml")
	write(t, toml, "jbos = 1\n")
	_, err := config.LoadFile(toml)
	require.ErrorIs(t, err, config.ErrUnknownKey)
	assert.Contains(t, err.Error(), "jbos")

	yml := filepath.Join(root, "b", ".sharplint.yaml")
	write(t, yml, "jbos: 1\n")
	_, err = config.LoadFile(yml)
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = config.LoadFile(filepath.Join(root, "missing.json"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	off := false
	cfg := config.Default()
	cfg.Rules[checks.IfStatementWithoutBraces] = config.RuleConfig{Enabled: &off}
	cfg.Rules[checks.RemoveTestSuffix] = config.RuleConfig{Severity: "error"}

	reg, err := config.Apply(checks.Registry(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, reg.Len())
	_, ok := reg.Lookup(checks.IfStatementWithoutBraces)
	assert.False(t, ok)
	assert.Equal(t, diag.SevError, reg.Severity(checks.RemoveTestSuffix))
	assert.Equal(t, diag.SevWarning, reg.Severity(checks.LoopStatementWithoutBraces))
}

func TestApplyRejectsBadInput(t *testing.T) {
	cfg := config.Default()
	cfg.Rules["NoSuchRule"] = config.RuleConfig{}
	_, err := config.Apply(checks.Registry(), cfg)
	require.ErrorIs(t, err, analysis.ErrUnknownRule)

	cfg = config.Default()
	cfg.Rules[checks.RemoveTestSuffix] = config.RuleConfig{Severity: "loud"}
	_, err = config.Apply(checks.Registry(), cfg)
	require.Error(t, err)
}

func TestRegistryUsesTestAttributes(t *testing.T) {
	cfg := config.Default()
	cfg.TestAttributes = []string{"Spec"}
	reg, err := config.Registry(cfg)
	require.NoError(t, err)
	assert.Equal(t, 6, reg.Len())
}
