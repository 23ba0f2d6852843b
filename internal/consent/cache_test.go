package consent

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otcwise-backend/internal/platform/logger"
)

func newCacheFixture(t *testing.T) (Store, *MemoryStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := NewMemoryStore()
	return NewCachedStore(logger.NewNop(), inner, rdb), inner, mr
}

func TestCachedStoreMiss(t *testing.T) {
	store, _, _ := newCacheFixture(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedStoreReadThrough(t *testing.T) {
	store, inner, _ := newCacheFixture(t)
	userID := uuid.New()
	rec := &Record{UserID: userID, AgeConfirmed: true, Version: "1.0", AcceptedAt: time.Now().UTC()}

	require.NoError(t, store.Put(context.Background(), rec))

	// First read populates the cache from the inner store.
	got, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.Version)

	// Drop the inner record; the cached copy still serves.
	inner.mu.Lock()
	delete(inner.records, userID)
	inner.mu.Unlock()

	got, err = store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.Version)
}

func TestCachedStorePutInvalidates(t *testing.T) {
	store, _, _ := newCacheFixture(t)
	userID := uuid.New()

	require.NoError(t, store.Put(context.Background(), &Record{UserID: userID, AgeConfirmed: true, Version: "1.0", AcceptedAt: time.Now().UTC()}))
	_, err := store.Get(context.Background(), userID) // warm the cache
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), &Record{UserID: userID, AgeConfirmed: true, Version: "2.0", AcceptedAt: time.Now().UTC()}))

	got, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "2.0", got.Version)
}

func TestCachedStoreSurvivesRedisOutage(t *testing.T) {
	store, _, mr := newCacheFixture(t)
	userID := uuid.New()

	require.NoError(t, store.Put(context.Background(), &Record{UserID: userID, AgeConfirmed: true, Version: "1.0", AcceptedAt: time.Now().UTC()}))

	mr.Close()

	// Reads fall through to the inner store; writes still land.
	got, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.Version)

	require.NoError(t, store.Put(context.Background(), &Record{UserID: userID, AgeConfirmed: true, Version: "2.0", AcceptedAt: time.Now().UTC()}))
	got, err = store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "2.0", got.Version)
}
