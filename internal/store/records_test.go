package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farisp123/form-app/internal/contact"
)

func TestRecords_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	recs := NewRecords(createTestSQLite(t))

	ann := createTestRecord("id-1", "Ann")
	require.NoError(t, recs.Save(ctx, ann))

	loaded, err := recs.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, ann, loaded[0])
}

func TestRecords_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	recs := NewRecords(kv)

	rec := createTestRecord("id-1", "Ann")
	require.NoError(t, recs.Save(ctx, rec))
	rec.Name = "Annie"
	require.NoError(t, recs.Save(ctx, rec))

	assert.Equal(t, 1, kv.Len())
	loaded, err := recs.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Annie", loaded[0].Name)
}

func TestRecords_SaveRequiresID(t *testing.T) {
	recs := NewRecords(NewMemory())
	err := recs.Save(context.Background(), contact.Record{Name: "x"})
	assert.Error(t, err)
}

func TestRecords_LoadAllSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	recs := NewRecords(kv)

	require.NoError(t, recs.Save(ctx, createTestRecord("good-1", "Ann")))
	require.NoError(t, kv.Set(ctx, "not-json", "{oops"))
	require.NoError(t, kv.Set(ctx, "array", `[1,2,3]`))
	require.NoError(t, kv.Set(ctx, "null", `null`))
	require.NoError(t, kv.Set(ctx, "missing-email", `{"name":"a","phone":"1","city":"c"}`))
	require.NoError(t, kv.Set(ctx, "wrong-type", `{"name":1,"phone":"1","city":"c","email":"e"}`))
	require.NoError(t, recs.Save(ctx, createTestRecord("good-2", "Bob")))

	loaded, err := recs.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "good-1", loaded[0].ID)
	assert.Equal(t, "good-2", loaded[1].ID)
}

func TestRecords_LoadAllTagsWithStoreKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	recs := NewRecords(kv)

	// Embedded key disagrees with the store key; the store key wins.
	require.NoError(t, kv.Set(ctx, "real-key", `{"name":"Ann","phone":"1","city":"NYC","email":"a@x.com","key":"stale"}`))

	loaded, err := recs.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "real-key", loaded[0].ID)
}

func TestRecords_Remove(t *testing.T) {
	ctx := context.Background()
	recs := NewRecords(NewMemory())

	require.NoError(t, recs.Save(ctx, createTestRecord("id-1", "Ann")))
	require.NoError(t, recs.Remove(ctx, "id-1"))
	require.NoError(t, recs.Remove(ctx, "id-1"))

	loaded, err := recs.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
