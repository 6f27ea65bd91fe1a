package memory

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
type LedgerEntryRepository struct {
	store *Store
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(store *Store) *LedgerEntryRepository {
	return &LedgerEntryRepository{store: store}
}

// Create inserts a ledger entry.
func (r *LedgerEntryRepository) Create(_ context.Context, tx usecase.Tx, entry *domain.LedgerEntry) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	put(t, r.store.ledgerEntries, entry.ID, *entry)
	r.store.nextOrder(entry.ID)

	return nil
}

// GetByID retrieves a ledger entry.
func (r *LedgerEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	var out *domain.LedgerEntry
	err := r.store.withLock(ctx, func() error {
		entry, ok := r.store.ledgerEntries[id]
		if !ok {
			return domain.ErrLedgerEntryNotFound
		}
		out = &entry
		return nil
	})
	return out, err
}

// GetByIDForUpdate retrieves a ledger entry inside tx.
func (r *LedgerEntryRepository) GetByIDForUpdate(_ context.Context, tx usecase.Tx, id string) (*domain.LedgerEntry, error) {
	if _, err := openTx(tx); err != nil {
		return nil, err
	}

	entry, ok := r.store.ledgerEntries[id]
	if !ok {
		return nil, domain.ErrLedgerEntryNotFound
	}
	return &entry, nil
}

// Update rewrites a ledger entry.
func (r *LedgerEntryRepository) Update(_ context.Context, tx usecase.Tx, entry *domain.LedgerEntry) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	if _, ok := r.store.ledgerEntries[entry.ID]; !ok {
		return domain.ErrLedgerEntryNotFound
	}
	put(t, r.store.ledgerEntries, entry.ID, *entry)

	return nil
}

// ListByAccount lists the entries of an account, newest first.
func (r *LedgerEntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	var out []*domain.LedgerEntry
	err := r.store.withLock(ctx, func() error {
		ids := sortedByOrder(r.store, r.store.ledgerEntries, func(e domain.LedgerEntry) bool {
			return e.AccountID == accountID
		}, true)
		for _, id := range page(ids, limit, offset) {
			entry := r.store.ledgerEntries[id]
			out = append(out, &entry)
		}
		return nil
	})
	return out, err
}
