package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "switchyard version v")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ops.yaml"), []byte("build:\n  clean: forge clean\n"), 0644))

	out, err := execute(t, "validate", "--dir", dir, "ops.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Tree is valid!")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("build: []\n"), 0644))
	_, err = execute(t, "validate", "--dir", dir, "bad.yaml")
	assert.ErrorContains(t, err, "validation failed")
}

func TestTreeCommand_Mermaid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.yaml"), []byte("build:\n  clean: forge clean\n"), 0644))

	out, err := execute(t, "tree", "--dir", dir, "--format", "mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "clean")
}
