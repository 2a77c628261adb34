package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStorage(client), mr
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	storage, _ := setupTestRedis(t)

	_, err := storage.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorage_SaveThenLoad(t *testing.T) {
	storage, mr := setupTestRedis(t)
	ctx := context.Background()

	c := &Cart{
		Lines: []Line{
			{ProductID: 1, Name: "Tomatoes", UnitPrice: decimal.NewFromInt(40), Quantity: 2, Unit: "kg"},
			{ProductID: 5, Name: "Spinach", UnitPrice: decimal.RequireFromString("22.50"), Quantity: 1, Unit: "bunch"},
		},
		DrawerOpen: true,
	}
	require.NoError(t, storage.Save(ctx, "c1", c))

	// Snapshot lives under the namespaced key with a jittered TTL.
	require.True(t, mr.Exists("cart:c1"))
	ttl := mr.TTL("cart:c1")
	assert.GreaterOrEqual(t, ttl, 30*24*time.Hour, "TTL should be at least the base TTL")
	assert.LessOrEqual(t, ttl, 30*24*time.Hour+time.Hour, "TTL should be base plus max jitter")

	got, err := storage.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, c.Lines, got.Lines)
	assert.True(t, got.DrawerOpen)
	assert.True(t, got.TotalPrice().Equal(decimal.RequireFromString("102.50")))
}

func TestRedisStorage_CorruptSnapshot(t *testing.T) {
	storage, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:c1", "{not json"))

	_, err := storage.Load(context.Background(), "c1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStorage_Delete(t *testing.T) {
	storage, mr := setupTestRedis(t)
	ctx := context.Background()

	data, _ := json.Marshal(&Cart{})
	require.NoError(t, mr.Set("cart:c1", string(data)))

	require.NoError(t, storage.Delete(ctx, "c1"))
	assert.False(t, mr.Exists("cart:c1"))

	// Deleting an absent cart is fine.
	assert.NoError(t, storage.Delete(ctx, "c1"))
}

func TestSession_CorruptSnapshotFailsOpen(t *testing.T) {
	storage, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:c1", "garbage"))

	s := Open(context.Background(), "c1", storage, zap.NewNop())
	assert.True(t, s.Cart.IsEmpty())
}
