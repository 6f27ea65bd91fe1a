package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DialTimeout caps connection setup so startup fails fast when Redis is down.
const DialTimeout = 5 * time.Second

// Option adjusts the parsed client options before the client is built.
type Option func(*redis.Options)

// WithPoolSize overrides the pool size. Zero keeps the go-redis default.
func WithPoolSize(n int) Option {
	return func(o *redis.Options) {
		if n > 0 {
			o.PoolSize = n
		}
	}
}

// WithDialTimeout replaces DialTimeout as the upper bound.
func WithDialTimeout(d time.Duration) Option {
	return func(o *redis.Options) {
		if d > 0 {
			o.DialTimeout = d
		}
	}
}

// NewClient parses redisURL, applies opts and returns a client that has
// answered PING.
func NewClient(ctx context.Context, redisURL string, opts ...Option) (*redis.Client, error) {
	parsed, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if parsed.DialTimeout == 0 || parsed.DialTimeout > DialTimeout {
		parsed.DialTimeout = DialTimeout
	}
	for _, opt := range opts {
		opt(parsed)
	}

	client := redis.NewClient(parsed)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", parsed.Addr, err)
	}

	return client, nil
}
