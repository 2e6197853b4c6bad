package database

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgtools/buylistdb/internal/domain"
)

func newTestStore(t *testing.T) domain.CacheStore {
	t.Helper()
	db, err := NewDB(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	store := NewCacheStore(zerolog.Nop(), db)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCacheStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "set:LEA", []byte(`{"setCode":"LEA"}`), "2025-03-14"))

	payload, cachedOn, err := store.Get(ctx, "set:LEA")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", cachedOn)
	assert.JSONEq(t, `{"setCode":"LEA"}`, string(payload))
}

func TestCacheStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "set:LEA", []byte(`{"v":1}`), "2025-03-13"))
	require.NoError(t, store.Put(ctx, "set:LEA", []byte(`{"v":2}`), "2025-03-14"))

	payload, cachedOn, err := store.Get(ctx, "set:LEA")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", cachedOn)
	assert.JSONEq(t, `{"v":2}`, string(payload))
}

func TestCacheStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, _, err := store.Get(ctx, "set:NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCacheStore_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "set:LEA", []byte(`{}`), "2025-03-14"))
	require.NoError(t, store.Put(ctx, "price:cardkingdom", []byte(`{}`), "2025-03-14"))

	namespaces, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, namespaces, 2)

	require.NoError(t, store.Delete(ctx, "set:LEA"))
	// Deleting an absent namespace is not an error.
	require.NoError(t, store.Delete(ctx, "set:LEA"))

	namespaces, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"price:cardkingdom": "2025-03-14"}, namespaces)
}
