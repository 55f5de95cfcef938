package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/infrastructure/cache"
)

func sampleSnapshot() *dto.StockSnapshotDTO {
	return &dto.StockSnapshotDTO{
		Branch:        "Pune",
		TotalQuantity: 12,
		Items: []dto.StockLineDTO{
			{ItemKey: "c1", ItemName: "Ball Pen", Quantity: 12, Status: "In Stock"},
		},
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestMemoryCache_RoundTripIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemorySnapshotCache(0)

	_, ok, err := c.Get(ctx, "Pune")
	require.NoError(t, err)
	assert.False(t, ok)

	snap := sampleSnapshot()
	require.NoError(t, c.Set(ctx, "Pune", snap))
	snap.Items[0].Quantity = 999

	got, ok, err := c.Get(ctx, "Pune")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(12), got.Items[0].Quantity)

	got.Items[0].Quantity = 1
	again, _, _ := c.Get(ctx, "Pune")
	assert.Equal(t, int64(12), again.Items[0].Quantity)

	_, ok, _ = c.Get(ctx, "all")
	assert.False(t, ok, "los alcances no se mezclan")
}

func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := cache.NewMemorySnapshotCache(time.Hour).WithClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "all", sampleSnapshot()))
	now = now.Add(59 * time.Minute)
	_, ok, _ := c.Get(ctx, "all")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "all")
	assert.False(t, ok)
}

func TestRedisCache_KeyAndUnreachableServer(t *testing.T) {
	assert.Equal(t, "stock-register:snapshot:all", cache.Key("all"))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	c := cache.NewRedisSnapshotCache(client, time.Minute)

	_, ok, err := c.Get(context.Background(), "all")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "all", sampleSnapshot()))
}

func TestRedisCache_CloseReleasesClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	c := cache.NewRedisSnapshotCache(client, time.Minute)

	require.NoError(t, c.Close())
	_, _, err := c.Get(context.Background(), "all")
	assert.ErrorIs(t, err, redis.ErrClosed)
}

func TestNewRedisClient_RejectsBadURL(t *testing.T) {
	_, err := cache.NewRedisClient(context.Background(), "not-a-url", "", 0)
	assert.ErrorContains(t, err, "REDIS_URL")
}
