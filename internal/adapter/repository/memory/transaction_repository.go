package memory

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create inserts a transaction.
func (r *TransactionRepository) Create(_ context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	put(t, r.store.transactions, transaction.ID, *transaction)
	r.store.nextOrder(transaction.ID)

	return nil
}

// GetByID retrieves a transaction.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var out *domain.Transaction
	err := r.store.withLock(ctx, func() error {
		txn, ok := r.store.transactions[id]
		if !ok {
			return domain.ErrTransactionNotFound
		}
		out = &txn
		return nil
	})
	return out, err
}

// ListByAccount lists transactions with the account on either side, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	err := r.store.withLock(ctx, func() error {
		ids := sortedByOrder(r.store, r.store.transactions, func(t domain.Transaction) bool {
			return t.SourceAccountID == accountID || t.TargetAccountID == accountID
		}, true)
		for _, id := range page(ids, limit, offset) {
			txn := r.store.transactions[id]
			out = append(out, &txn)
		}
		return nil
	})
	return out, err
}
