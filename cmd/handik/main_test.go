package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	path := writeScenario(t, "name: ok\nsteps:\n  - {at: 0.1, action: key_down, args: {key: a}}\n")
	rootCmd.SetArgs([]string{"validate", path})
	assert.NoError(t, rootCmd.Execute())

	bad := writeScenario(t, "name: bad\nsteps:\n  - {at: 0.1, action: teleport}\n")
	rootCmd.SetArgs([]string{"validate", bad})
	assert.Error(t, rootCmd.Execute())
}

func TestSimulateCommand_FailsOnExpectation(t *testing.T) {
	path := writeScenario(t, "name: f\nfps: 8\nsteps:\n  - {at: 0.5, action: expect, args: {hand: left, target: gamepad}}\n")
	rootCmd.SetArgs([]string{"simulate", path, "--json"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expectations failed")
}

func TestLoadConfig_LogLevelOverride(t *testing.T) {
	rootCmd.SetArgs([]string{"version", "--log-level", "loud"})
	require.NoError(t, rootCmd.Execute())

	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "loud"))
	defer rootCmd.PersistentFlags().Set("log-level", "")
	_, _, _, err := loadConfig(versionCmd)
	assert.Error(t, err)
}
