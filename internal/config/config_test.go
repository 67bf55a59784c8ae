package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtmp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Scan.ModuleDepth)
	assert.Equal(t, int64(2*1024*1024), cfg.Scan.MaxFileBytes)
	assert.Equal(t, 500, cfg.Git.MaxCommits)
	assert.False(t, cfg.Git.Disabled)
	assert.Equal(t, "128k", cfg.Context.Budget)
	assert.Equal(t, "greedy", cfg.Context.Strategy)
	assert.Equal(t, "code", cfg.Context.RankBy)
	assert.Equal(t, int64(4*1024*1024), cfg.Context.SoftMaxBytes)
	assert.Equal(t, ".srctally-handoff", cfg.Handoff.OutDir)
	assert.Equal(t, 4, cfg.Handoff.TreeDepth)
	assert.Equal(t, 20, cfg.Handoff.MaxRisks)
	assert.Equal(t, ".srctally/runs.db", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtmp(t)

	yaml := `
context:
  budget: 64k
  strategy: spread
  exclude:
    - "*.pb.go"
    - "vendor/**"
scan:
  module_roots: [internal, cmd]
  module_depth: 2
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".srctally.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "64k", cfg.Context.Budget)
	assert.Equal(t, "spread", cfg.Context.Strategy)
	assert.Equal(t, []string{"*.pb.go", "vendor/**"}, cfg.Context.Exclude)
	assert.Equal(t, []string{"internal", "cmd"}, cfg.Scan.ModuleRoots)
	assert.Equal(t, 2, cfg.Scan.ModuleDepth)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, "code", cfg.Context.RankBy)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtmp(t)

	yaml := `
context:
  budget: 64k
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".srctally.yaml"), []byte(yaml), 0644))
	t.Setenv("SRCTALLY_CONTEXT_BUDGET", "1m")
	t.Setenv("SRCTALLY_GIT_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1m", cfg.Context.Budget)
	assert.True(t, cfg.Git.Disabled)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := chtmp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".srctally.yaml"), []byte("context: [not a map"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.True(t, zap.L().Core().Enabled(zap.InfoLevel))
	assert.False(t, zap.L().Core().Enabled(zap.DebugLevel))
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "loud", Format: "console"}))
}
