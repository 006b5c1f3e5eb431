package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videonest/backend/internal/config"
	"github.com/videonest/backend/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	expected := models.ChannelProfile{
		Fullname:         "Ann Example",
		Username:         "ann",
		SubscribersCount: 3,
	}
	err := cache.Set(ctx, "channel:ann", expected, time.Minute)
	require.NoError(t, err)

	var actual models.ChannelProfile
	found, err := cache.Get(ctx, "channel:ann", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.ChannelProfile
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "channel:ann", models.ChannelProfile{Username: "ann"}, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "channel:ann"))

	var out models.ChannelProfile
	found, err := cache.Get(ctx, "channel:ann", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
