package file_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/switchyard/internal/adapters/file"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SessionStore
var _ ports.SessionStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nested", "build.json"))
	ports.RunSessionStoreContract(t, store)
}

func TestFileStore_WireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.json")
	store := file.New(path)

	require.NoError(t, store.Save(context.Background(), domain.Path{"build", "clean"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"path": ["build", "clean"]}`, string(data))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptionIsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Garbage", "not json at all"},
		{"Truncated", `{"path": ["build", `},
		{"Wrong Type", `{"path": "build/clean"}`},
		{"Missing Key", `{"other": 1}`},
		{"Empty Path", `{"path": []}`},
		{"Empty File", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "s.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, ok, err := file.New(path).Load(context.Background())
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestFileStore_SaveFailureSurfaces(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	err := file.New(filepath.Join(dir, "s.json")).Save(context.Background(), domain.Path{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionWrite)
}

func TestFileStore_SaveToDirectoryPathFails(t *testing.T) {
	// The target is occupied by a directory: rename cannot replace it.
	dir := t.TempDir()
	target := filepath.Join(dir, "s.json")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

	err := file.New(target).Save(context.Background(), domain.Path{"a"})
	assert.ErrorIs(t, err, domain.ErrSessionWrite)
}

func TestForTree(t *testing.T) {
	store := file.ForTree("/work", "deploy")
	assert.Equal(t, filepath.Join("/work", ".switchyard", "sessions", "deploy.json"), store.Path())
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := file.New(filepath.Join(t.TempDir(), "s.json"))

	require.NoError(t, store.Delete(ctx), "missing record is fine")
	require.NoError(t, store.Save(ctx, domain.Path{"a"}))
	require.NoError(t, store.Delete(ctx))

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
