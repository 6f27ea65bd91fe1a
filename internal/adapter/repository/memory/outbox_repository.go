package memory

import (
	"context"
	"maps"
	"time"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

// Create inserts an event as part of tx.
func (r *OutboxRepository) Create(_ context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	e := *event
	e.Payload = maps.Clone(event.Payload)
	put(t, r.store.outbox, e.ID, e)
	r.store.nextOrder(e.ID)

	return nil
}

// GetUnpublished returns the oldest unpublished events.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var out []*domain.OutboxEvent
	err := r.store.withLock(ctx, func() error {
		ids := sortedByOrder(r.store, r.store.outbox, func(e domain.OutboxEvent) bool {
			return !e.Published
		}, false)
		for _, id := range page(ids, limit, 0) {
			e := r.store.outbox[id]
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

// MarkPublished flags an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	return r.store.withLock(ctx, func() error {
		e, ok := r.store.outbox[id]
		if !ok {
			return nil
		}
		e.Published = true
		e.PublishedAt = &publishedAt
		r.store.outbox[id] = e
		return nil
	})
}

// DeletePublished drops events published before the cutoff.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return r.store.withLock(ctx, func() error {
		for id, e := range r.store.outbox {
			if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
				delete(r.store.outbox, id)
				delete(r.store.order, id)
			}
		}
		return nil
	})
}
