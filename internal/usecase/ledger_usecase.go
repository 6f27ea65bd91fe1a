package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// ConsistencyReport is the trial balance over all journal items.
type ConsistencyReport struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal
	Consistent   bool
	CheckedAt    time.Time
}

// CheckConsistency verifies that journal debits equal journal credits.
// The report is returned alongside domain.ErrInconsistentLedger.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalDebits, totalCredits, err := uc.ledgerRepo.JournalTotals(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Difference:   totalDebits.Sub(totalCredits),
		Consistent:   totalDebits.Equal(totalCredits),
		CheckedAt:    time.Now().UTC(),
	}

	if !report.Consistent {
		return report, fmt.Errorf("%w: debits=%s credits=%s difference=%s",
			domain.ErrInconsistentLedger,
			totalDebits.String(),
			totalCredits.String(),
			report.Difference.String(),
		)
	}

	return report, nil
}
