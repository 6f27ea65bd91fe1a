package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// JournalTotals sums debits and credits over every journal item.
func (r *LedgerRepository) JournalTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	debits, credits := decimal.Zero, decimal.Zero
	err := r.store.withLock(ctx, func() error {
		for _, entry := range r.store.journals {
			d, c := entry.Totals()
			debits = debits.Add(d)
			credits = credits.Add(c)
		}
		return nil
	})
	return debits, credits, err
}

// AccountActivity sums every posting against accountID.
func (r *LedgerRepository) AccountActivity(ctx context.Context, accountID string) (*domain.AccountActivity, error) {
	activity := &domain.AccountActivity{
		AccountID:      accountID,
		JournalDebits:  decimal.Zero,
		JournalCredits: decimal.Zero,
		LedgerDebits:   decimal.Zero,
		LedgerCredits:  decimal.Zero,
		TransfersIn:    decimal.Zero,
		TransfersOut:   decimal.Zero,
	}

	err := r.store.withLock(ctx, func() error {
		for _, entry := range r.store.journals {
			for _, item := range entry.Items {
				if item.AccountID == accountID {
					activity.JournalDebits = activity.JournalDebits.Add(item.Debit)
					activity.JournalCredits = activity.JournalCredits.Add(item.Credit)
				}
			}
		}

		for _, entry := range r.store.ledgerEntries {
			if entry.AccountID != accountID {
				continue
			}
			if entry.Type == domain.EntryTypeDebit {
				activity.LedgerDebits = activity.LedgerDebits.Add(entry.Amount)
			} else {
				activity.LedgerCredits = activity.LedgerCredits.Add(entry.Amount)
			}
		}

		for _, txn := range r.store.transactions {
			if txn.TargetAccountID == accountID {
				activity.TransfersIn = activity.TransfersIn.Add(txn.Amount)
			}
			if txn.SourceAccountID == accountID {
				activity.TransfersOut = activity.TransfersOut.Add(txn.Amount)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return activity, nil
}
