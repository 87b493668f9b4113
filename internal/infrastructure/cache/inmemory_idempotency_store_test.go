package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	t.Run("should mark a new key as processed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		newly, err := store.MarkProcessed(context.Background(), "mirror:abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, newly)

		processed, err := store.IsProcessed(context.Background(), "mirror:abc")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("should refuse to mark the same key twice", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(context.Background(), "mirror:abc", time.Minute)
		require.NoError(t, err)

		newly, err := store.MarkProcessed(context.Background(), "mirror:abc", time.Minute)
		require.NoError(t, err)
		assert.False(t, newly)
	})

	t.Run("should treat expired keys as unprocessed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(context.Background(), "mirror:abc", time.Millisecond)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		processed, err := store.IsProcessed(context.Background(), "mirror:abc")
		require.NoError(t, err)
		assert.False(t, processed)

		newly, err := store.MarkProcessed(context.Background(), "mirror:abc", time.Minute)
		require.NoError(t, err)
		assert.True(t, newly)
	})

	t.Run("should not know unseen keys", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		processed, err := store.IsProcessed(context.Background(), "mirror:missing")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("should survive double close", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}
