package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// Carts idle longer than this are evicted. Mutating the cart refreshes the
// TTL because every mutation rewrites the key.
const cartTTL = 30 * 24 * time.Hour

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client, ttl: cartTTL}
}

// RedisStorage keeps one JSON snapshot per cart under a namespaced key.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisStorage) Load(ctx context.Context, cartID string) (*Cart, error) {
	data, err := r.client.Get(ctx, storageKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &c, nil
}

func (r *RedisStorage) Save(ctx context.Context, cartID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	// Jitter spreads out expirations so idle carts don't all evict at once.
	jitter := time.Duration(rand.Intn(60)) * time.Minute
	if err := r.client.Set(ctx, storageKey(cartID), data, r.ttl+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, storageKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storageKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}
