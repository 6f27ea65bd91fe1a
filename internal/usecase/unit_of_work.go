package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/finledger/internal/domain"
)

// runInTx executes fn inside one transaction, retried as a whole on
// transient conflicts. fn must only use tx-scoped repository methods.
func runInTx(ctx context.Context, txManager TxManager, retrier Retrier, fn func(ctx context.Context, tx Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	return retrier.Retry(ctx, func() error {
		tx, err := txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(ctx, tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// lockAccounts locks ids in sorted order (deadlock prevention) and returns
// them keyed by ID.
func lockAccounts(ctx context.Context, repo AccountRepository, tx Tx, ids []string) (map[string]*domain.Account, error) {
	sorted := uniqueSorted(ids)

	accounts, err := repo.GetByIDsForUpdate(ctx, tx, sorted)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(sorted) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	return byID, nil
}

// saveBalances writes back every account in touched.
func saveBalances(ctx context.Context, repo AccountRepository, tx Tx, accounts map[string]*domain.Account, touched []string) error {
	for _, id := range uniqueSorted(touched) {
		acc := accounts[id]
		if err := repo.UpdateBalance(ctx, tx, acc.ID, acc.Balance, acc.Version, acc.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}

func newOutboxEvent(id, aggregateID, aggregateType, eventType string, payload any, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       domain.ToPayload(payload),
		CreatedAt:     now,
	}
}
