package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// JournalTotals sums debits and credits over every journal item.
func (r *LedgerRepository) JournalTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.GetJournalTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.TotalDebits), numericToDecimal(row.TotalCredits), nil
}

// AccountActivity sums every posting against accountID.
func (r *LedgerRepository) AccountActivity(ctx context.Context, accountID string) (*domain.AccountActivity, error) {
	row, err := r.queries.GetAccountActivity(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &domain.AccountActivity{
		AccountID:      accountID,
		JournalDebits:  numericToDecimal(row.JournalDebits),
		JournalCredits: numericToDecimal(row.JournalCredits),
		LedgerDebits:   numericToDecimal(row.LedgerDebits),
		LedgerCredits:  numericToDecimal(row.LedgerCredits),
		TransfersIn:    numericToDecimal(row.TransfersIn),
		TransfersOut:   numericToDecimal(row.TransfersOut),
	}, nil
}
