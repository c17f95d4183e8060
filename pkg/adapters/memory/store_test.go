package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/switchyard/pkg/adapters/memory"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SessionStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryStore_Options(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeded", func(t *testing.T) {
		seed := domain.Path{"build", "clean"}
		store := memory.NewStore(memory.WithPath(seed))
		seed[0] = "mutated"

		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.Path{"build", "clean"}, got)
	})

	t.Run("Corrupt Record Is Absent", func(t *testing.T) {
		store := memory.NewStore(memory.WithPath(domain.Path{"x"}), memory.WithCorruptRecord())
		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Save Error Surfaces", func(t *testing.T) {
		boom := errors.New("read-only")
		store := memory.NewStore(memory.WithSaveError(boom))
		err := store.Save(ctx, domain.Path{"x"})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, store.Saves())
	})
}
