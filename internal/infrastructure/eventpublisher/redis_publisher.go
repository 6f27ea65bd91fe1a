package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finledger/internal/domain"
)

// DefaultChannelPrefix is prepended to the aggregate type to form the channel name.
const DefaultChannelPrefix = "finledger.events."

// Message is the envelope sent over Redis pub/sub.
type Message struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
	Payload       map[string]any `json:"payload"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// RedisPublisher publishes events to a Redis channel per aggregate type,
// e.g. finledger.events.journal_entry.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the channel events of aggregateType are published on.
func (p *RedisPublisher) Channel(aggregateType string) string {
	return p.prefix + aggregateType
}

// Publish sends the event envelope.
func (p *RedisPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	body, err := json.Marshal(Message{
		ID:            event.ID,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Payload:       event.Payload,
		OccurredAt:    event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.Channel(event.AggregateType), body).Err()
}
