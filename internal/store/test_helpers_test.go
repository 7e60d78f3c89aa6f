package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farisp123/form-app/internal/contact"
)

// createTestSQLite creates a new file-backed store for testing.
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a valid record with the given id.
func createTestRecord(id, name string) contact.Record {
	return contact.Record{
		ID:    id,
		Name:  name,
		Phone: "1234567890",
		City:  "NYC",
		Email: name + "@example.com",
	}
}

// runKVConformance exercises the KV contract against any backend.
func runKVConformance(t *testing.T, newKV func(t *testing.T) KV) {
	ctx := context.Background()

	t.Run("empty store has no keys", func(t *testing.T) {
		kv := newKV(t)
		keys, err := kv.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("get missing key", func(t *testing.T) {
		kv := newKV(t)
		_, ok, err := kv.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "a", "1"))
		v, ok, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1", v)
	})

	t.Run("enumerates in first-insertion order", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "b", "1"))
		require.NoError(t, kv.Set(ctx, "a", "2"))
		require.NoError(t, kv.Set(ctx, "c", "3"))
		require.NoError(t, kv.Set(ctx, "b", "4")) // overwrite keeps position

		keys, err := kv.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, keys)

		v, _, err := kv.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "4", v)
	})

	t.Run("remove", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "a", "1"))
		require.NoError(t, kv.Set(ctx, "b", "2"))
		require.NoError(t, kv.Remove(ctx, "a"))
		require.NoError(t, kv.Remove(ctx, "absent"))

		keys, err := kv.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, keys)

		_, ok, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("re-added key moves to the end", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "a", "1"))
		require.NoError(t, kv.Set(ctx, "b", "2"))
		require.NoError(t, kv.Remove(ctx, "a"))
		require.NoError(t, kv.Set(ctx, "a", "3"))

		keys, err := kv.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, keys)
	})
}
