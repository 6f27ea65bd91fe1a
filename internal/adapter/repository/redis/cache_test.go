package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/usecase"
)

func TestCache_RoundTrip(t *testing.T) {
	client, srv := startRedis(t)
	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "fiscal_year:fy-2025", []byte(`{"ID":"fy-2025"}`), time.Minute))

	got, err := cache.Get(ctx, "fiscal_year:fy-2025")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ID":"fy-2025"}`, string(got))
	assert.True(t, srv.Exists("finledger:cache:fiscal_year:fy-2025"))
	assert.Equal(t, time.Minute, srv.TTL("finledger:cache:fiscal_year:fy-2025"))
}

func TestCache_Misses(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ctx context.Context, c *Cache, fastForward func(time.Duration))
	}{
		{
			name:  "never set",
			setup: func(context.Context, *Cache, func(time.Duration)) {},
		},
		{
			name: "expired",
			setup: func(ctx context.Context, c *Cache, fastForward func(time.Duration)) {
				require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
				fastForward(2 * time.Second)
			},
		},
		{
			name: "deleted",
			setup: func(ctx context.Context, c *Cache, _ func(time.Duration)) {
				require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
				require.NoError(t, c.Delete(ctx, "k"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := startRedis(t)
			cache := NewCache(client)
			ctx := context.Background()

			tt.setup(ctx, cache, srv.FastForward)

			_, err := cache.Get(ctx, "k")
			assert.ErrorIs(t, err, usecase.ErrCacheMiss)
		})
	}
}

func TestCache_AreasAreIsolated(t *testing.T) {
	client, srv := startRedis(t)
	ctx := context.Background()

	years := NewCacheIn(client, "years")
	require.NoError(t, years.Set(ctx, "k", []byte("v"), 0))

	_, err := NewCache(client).Get(ctx, "k")
	assert.ErrorIs(t, err, usecase.ErrCacheMiss)
	assert.True(t, srv.Exists("finledger:years:k"))
}

func TestCache_ServerDown(t *testing.T) {
	client, srv := startRedis(t)
	srv.Close()

	_, err := NewCache(client).Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrCacheMiss)
}
