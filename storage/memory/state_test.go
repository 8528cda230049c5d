package memorystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wooyeon-app/wy-backend/oauth"
)

func TestStateCacheTakeOnce(t *testing.T) {
	c := NewStateCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "abc", oauth.StateData{Provider: oauth.ProviderKakao}, time.Minute))

	data, ok, err := c.Take(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, oauth.ProviderKakao, data.Provider)

	_, ok, err = c.Take(ctx, "abc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStateCacheUnknownKey(t *testing.T) {
	c := NewStateCache()

	_, ok, err := c.Take(context.Background(), "never-stored")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStateCacheExpiry(t *testing.T) {
	c := NewStateCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "old", oauth.StateData{Provider: oauth.ProviderApple}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.Take(ctx, "old")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStateCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewStateCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "pinned", oauth.StateData{Provider: oauth.ProviderNaver}, 0))

	data, ok, err := c.Take(ctx, "pinned")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, oauth.ProviderNaver, data.Provider)
}
