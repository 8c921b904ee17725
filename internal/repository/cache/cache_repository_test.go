package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traffic-route-matcher/internal/repository/cache"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	return client
}

func TestCacheRepository_RoundTrip(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	repo := cache.NewCacheRepository(client, "test:geocode:", zap.NewNop())
	defer client.Del(ctx, "test:geocode:nicklin")

	val, err := repo.Get(ctx, "nicklin")
	require.NoError(t, err)
	assert.Nil(t, val, "miss returns nil without error")

	require.NoError(t, repo.Set(ctx, "nicklin", []byte(`{"lat":-26.7}`), time.Minute))

	raw, err := client.Get(ctx, "test:geocode:nicklin").Result()
	require.NoError(t, err)
	assert.Equal(t, `{"lat":-26.7}`, raw, "key is stored with prefix")

	val, err = repo.Get(ctx, "nicklin")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"lat":-26.7}`), val)

	ttl, err := client.TTL(ctx, "test:geocode:nicklin").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
