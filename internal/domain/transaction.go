package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents an amount moved from a source account to a target account.
type Transaction struct {
	ID              string
	Amount          decimal.Decimal
	TransactionType string
	SourceAccountID string
	TargetAccountID string
	UserID          string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// Validate validates the transaction before any balance is touched.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.SourceAccountID == t.TargetAccountID {
		return ErrSameAccount
	}

	return nil
}
