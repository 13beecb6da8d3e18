package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/chefmate/backend/internal/domain/providers"
	redisclient "github.com/zatekoja/chefmate/backend/internal/infrastructure/clients/redis"
)

func setupAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisAdapter(redisclient.NewFromRedis(rdb), "chefmate:"), mr
}

func TestRedisAdapter_SetGet(t *testing.T) {
	adapter, mr := setupAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "cities", []byte(`["Delhi"]`), time.Minute))

	got, err := adapter.Get(ctx, "cities")
	require.NoError(t, err)
	assert.Equal(t, `["Delhi"]`, string(got))
	assert.True(t, mr.Exists("chefmate:cities"))
	assert.Equal(t, time.Minute, mr.TTL("chefmate:cities"))
}

func TestRedisAdapter_MissAndExpiry(t *testing.T) {
	adapter, mr := setupAdapter(t)
	ctx := context.Background()

	_, err := adapter.Get(ctx, "absent")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	require.NoError(t, adapter.Set(ctx, "short", []byte("x"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "short")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := setupAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, adapter.Delete(ctx, "k"))

	_, err := adapter.Get(ctx, "k")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_ServerDown(t *testing.T) {
	adapter, mr := setupAdapter(t)
	mr.Close()

	_, err := adapter.Get(context.Background(), "k")

	require.Error(t, err)
	assert.NotErrorIs(t, err, providers.ErrCacheMiss)
}
