package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// startRedis runs an in-process server that is torn down with the test.
func startRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, srv
}

func TestKeyspace(t *testing.T) {
	assert.Equal(t, "finledger:cache:fiscal_year:fy-2025", newKeyspace("cache").key("fiscal_year:fy-2025"))
	assert.Equal(t, "finledger:a:b:x", newKeyspace("a", "b").key("x"))
}
