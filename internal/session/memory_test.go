package session

import (
	"context"
	"testing"
	"time"

	"jobportal/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	p := auth.Principal{UserID: 1, Name: "Alice", Role: "job_seeker"}
	token, err := store.Create(ctx, p)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, *got)

	// Unknown tokens resolve to nil without error.
	got, err = store.Resolve(ctx, "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Destroy(ctx, token))
	got, err = store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	token, err := store.Create(ctx, auth.Principal{UserID: 1})
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	got, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Refreshing an expired token must not bring it back.
	require.NoError(t, store.Refresh(ctx, token, auth.Principal{UserID: 1, Name: "New"}))
	got, err = store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreRefreshKeepsToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	token, err := store.Create(ctx, auth.Principal{UserID: 5, Name: "Old", Role: "employer"})
	require.NoError(t, err)

	require.NoError(t, store.Refresh(ctx, token, auth.Principal{UserID: 5, Name: "New", Role: "employer"}))

	got, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, uint(5), got.UserID)
}
