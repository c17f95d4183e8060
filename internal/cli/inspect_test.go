package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/switchyard/internal/adapters/file"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.yaml"), []byte(buildTree), 0644))
}

func saveSession(t *testing.T, dir string, path domain.Path) {
	t.Helper()
	require.NoError(t, file.ForTree(dir, "commands").Save(context.Background(), path))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir)

	var out bytes.Buffer
	require.NoError(t, Validate(&out, dir, ""))
	assert.Contains(t, out.String(), "Tree is valid! ✅")
	assert.Contains(t, out.String(), "3 commands (1 with dry-run escalation)")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("build: {}\n"), 0644))
	err := Validate(&out, dir, "bad.yaml")
	assert.ErrorIs(t, err, domain.ErrInvalidTree)
}

func TestRenderTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir)
	saveSession(t, dir, domain.Path{"build", "clean"})

	t.Run("Mermaid With Session", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RenderTree(context.Background(), &out, TreeOptions{Dir: dir, Format: "mermaid"}))
		assert.Contains(t, out.String(), "graph TD")
		assert.Contains(t, out.String(), "current;")
	})

	t.Run("Raw Markdown", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RenderTree(context.Background(), &out, TreeOptions{Dir: dir, Raw: true}))
		assert.Contains(t, out.String(), "# commands")
		assert.Contains(t, out.String(), "← last session")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		err := RenderTree(context.Background(), &bytes.Buffer{}, TreeOptions{Dir: dir, Format: "dot"})
		assert.Error(t, err)
	})
}

func TestShowSession(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, ShowSession(ctx, &out, dir, "", nil))
	assert.Contains(t, out.String(), "No session recorded")

	saveSession(t, dir, domain.Path{"build", "clean"})
	out.Reset()
	require.NoError(t, ShowSession(ctx, &out, dir, "", nil))
	assert.Contains(t, out.String(), " 2. clean")
	assert.Contains(t, out.String(), "without prompting")

	saveSession(t, dir, domain.Path{"build", "removed"})
	out.Reset()
	require.NoError(t, ShowSession(ctx, &out, dir, "", nil))
	assert.Contains(t, out.String(), `prompt from "build"`)
}

func TestClearSession(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir)
	saveSession(t, dir, domain.Path{"build", "clean"})

	var out bytes.Buffer
	require.NoError(t, ClearSession(context.Background(), &out, dir, "", nil))
	assert.Contains(t, out.String(), "removed")
	assert.NoFileExists(t, filepath.Join(dir, ".switchyard", "sessions", "commands.json"))
}
