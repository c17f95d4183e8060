package ports

import (
	"context"
	"testing"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
// The store must start empty.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		path, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, path)
	})

	t.Run("Save and Load", func(t *testing.T) {
		want := domain.Path{"anvil", "deploy", "oracles", "mock feeds"}
		require.NoError(t, store.Save(ctx, want))

		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Path{"build", "clean"}))
		require.NoError(t, store.Save(ctx, domain.Path{"format", "lint"}))

		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.Path{"format", "lint"}, got)
	})

	t.Run("Labels With Unicode And Spaces", func(t *testing.T) {
		want := domain.Path{"operate", "swap", "⬇️ mainnet-size (Small) swap"}
		require.NoError(t, store.Save(ctx, want))

		got, _, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
