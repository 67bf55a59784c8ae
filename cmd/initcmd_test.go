package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/srctally/srctally/internal/config"
)

func TestStarterConfigParsesIntoConfig(t *testing.T) {
	var parsed config.Config
	require.NoError(t, yaml.Unmarshal([]byte(starterConfig), &parsed))

	assert.Equal(t, 1, parsed.Scan.ModuleDepth)
	assert.Equal(t, "128k", parsed.Context.Budget)
	assert.Equal(t, "greedy", parsed.Context.Strategy)
	assert.Equal(t, ".srctally-handoff", parsed.Handoff.OutDir)
	assert.Equal(t, ".srctally/runs.db", parsed.Store.Path)
	assert.Equal(t, "warn", parsed.Log.Level)
}

func TestInitWritesStarterConfigOnce(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, initCmd.RunE(initCmd, nil))

	data, err := os.ReadFile(filepath.Join(dir, ".srctally.yaml"))
	require.NoError(t, err)
	assert.Equal(t, starterConfig, string(data))

	err = initCmd.RunE(initCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
