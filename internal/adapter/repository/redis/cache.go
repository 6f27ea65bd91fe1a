package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finledger/internal/usecase"
)

// Cache is a byte cache on Redis. It backs the fiscal year read-through
// decorator in usecase.
type Cache struct {
	client *redis.Client
	keys   keyspace
}

// NewCache returns a Cache writing under "finledger:cache:".
func NewCache(client *redis.Client) *Cache {
	return NewCacheIn(client, "cache")
}

// NewCacheIn returns a Cache writing under "finledger:<area>:". Separate
// areas can be flushed independently.
func NewCacheIn(client *redis.Client, area string) *Cache {
	return &Cache{client: client, keys: newKeyspace(area)}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, c.keys.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, usecase.ErrCacheMiss
	case err != nil:
		return nil, err
	}
	return raw, nil
}

// Set stores value for ttl. A zero ttl keeps the key until it is deleted.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.keys.key(key), value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.keys.key(key)).Err()
}
