package session

import (
	"context"
	"testing"
	"time"

	"jobportal/internal/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t)

	p := auth.Principal{UserID: 2, Name: "Bob", Role: "employer"}
	token, err := store.Create(ctx, p)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The key carries the session TTL.
	ttl := mr.TTL(keyPrefix + token)
	assert.Equal(t, time.Hour, ttl)

	got, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, *got)

	got, err = store.Resolve(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Destroy(ctx, token))
	got, err = store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreRefresh(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t)

	token, err := store.Create(ctx, auth.Principal{UserID: 3, Name: "Old", Role: "job_seeker"})
	require.NoError(t, err)

	require.NoError(t, store.Refresh(ctx, token, auth.Principal{UserID: 3, Name: "New", Role: "job_seeker"}))

	got, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New", got.Name)

	// Refresh preserves the remaining TTL instead of resetting it.
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+token))
}

func TestRedisStoreRefreshExpiredToken(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t)

	token, err := store.Create(ctx, auth.Principal{UserID: 4, Name: "Gone"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	// Refresh on an expired session must not resurrect the key.
	require.NoError(t, store.Refresh(ctx, token, auth.Principal{UserID: 4, Name: "Back"}))

	got, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}
