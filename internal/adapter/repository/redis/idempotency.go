package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finledger/internal/usecase"
)

// PendingMarker is stored under a key while its first request is still running.
const PendingMarker = usecase.IdempotencyPending

// IdempotencyStore keeps claimed idempotency keys and the responses recorded
// for them under "finledger:idempotency:".
type IdempotencyStore struct {
	client *redis.Client
	keys   keyspace
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, keys: newKeyspace("idempotency")}
}

// CheckAndSet claims key with SETNX. A nil response claims it with
// PendingMarker. When somebody already holds the key it reports true and
// returns the stored value, which is either a final response or the marker.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	k := s.keys.key(key)
	if response == nil {
		response = []byte(PendingMarker)
	}

	claimed, err := s.client.SetNX(ctx, k, response, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if claimed {
		return false, nil, nil
	}

	held, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; report it as held but empty
		return true, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, held, nil
}

// Update overwrites the claim with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.keys.key(key), response, ttl).Err()
}

// Release drops a key so a failed request can be retried by the client.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.keys.key(key)).Err()
}
