package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func fixture(name string) string {
	return filepath.Join("..", "..", "internal", "cli", "testdata", name)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "statesync version")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", fixture("hero.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Timeline 'hero' is valid!")

	_, err = execute(t, "validate", fixture("unresolved.yaml"))
	assert.ErrorContains(t, err, "validation failed")
}

func TestPlayCommand(t *testing.T) {
	out, err := execute(t, "play", fixture("hero.yaml"), "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "| 0 | Base | Idle | Run | Locomotion |")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", fixture("hero.yaml"), "--at", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "class L0_run current;")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "loud")
	assert.Error(t, err)
}
