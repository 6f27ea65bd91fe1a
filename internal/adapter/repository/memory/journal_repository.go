package memory

import (
	"context"
	"slices"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	store *Store
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(store *Store) *JournalRepository {
	return &JournalRepository{store: store}
}

// Create inserts an entry with its items.
func (r *JournalRepository) Create(_ context.Context, tx usecase.Tx, entry *domain.JournalEntry) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	put(t, r.store.journals, entry.ID, cloneJournal(*entry))
	r.store.nextOrder(entry.ID)

	return nil
}

// GetByID retrieves an entry with its items.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := r.store.withLock(ctx, func() error {
		entry, ok := r.store.journals[id]
		if !ok {
			return domain.ErrJournalEntryNotFound
		}
		c := cloneJournal(entry)
		out = &c
		return nil
	})
	return out, err
}

// GetByIDForUpdate retrieves an entry inside tx.
func (r *JournalRepository) GetByIDForUpdate(_ context.Context, tx usecase.Tx, id string) (*domain.JournalEntry, error) {
	if _, err := openTx(tx); err != nil {
		return nil, err
	}

	entry, ok := r.store.journals[id]
	if !ok {
		return nil, domain.ErrJournalEntryNotFound
	}
	c := cloneJournal(entry)
	return &c, nil
}

// Update rewrites the entry and replaces its items.
func (r *JournalRepository) Update(_ context.Context, tx usecase.Tx, entry *domain.JournalEntry) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	if _, ok := r.store.journals[entry.ID]; !ok {
		return domain.ErrJournalEntryNotFound
	}
	put(t, r.store.journals, entry.ID, cloneJournal(*entry))

	return nil
}

// List lists entries, newest first.
func (r *JournalRepository) List(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	var out []*domain.JournalEntry
	err := r.store.withLock(ctx, func() error {
		ids := sortedByOrder(r.store, r.store.journals, nil, true)
		for _, id := range page(ids, limit, offset) {
			c := cloneJournal(r.store.journals[id])
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func cloneJournal(entry domain.JournalEntry) domain.JournalEntry {
	entry.Items = slices.Clone(entry.Items)
	return entry
}
