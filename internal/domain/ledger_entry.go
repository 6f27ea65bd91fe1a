package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the side of a single-sided ledger posting.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// IsValid checks if the entry type is DEBIT or CREDIT.
func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// LedgerEntry is a single-line posting against one account, independent of
// journal grouping.
type LedgerEntry struct {
	ID          string
	EntryDate   time.Time
	Amount      decimal.Decimal
	Description string
	AccountID   string
	Type        EntryType
	CreatedAt   time.Time
	ModifiedAt  *time.Time
}

// ValidateLedgerAmount rejects a missing or negative amount.
func ValidateLedgerAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	return nil
}

// Validate checks amount and type.
func (e *LedgerEntry) Validate() error {
	if err := ValidateLedgerAmount(&e.Amount); err != nil {
		return err
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown entry type %q", ErrValidation, e.Type)
	}
	return nil
}

// DeltaFor returns the balance change this entry causes on account.
func (e *LedgerEntry) DeltaFor(account *Account) decimal.Decimal {
	if e.Type == EntryTypeDebit {
		return account.SignedDelta(e.Amount, decimal.Zero)
	}
	return account.SignedDelta(decimal.Zero, e.Amount)
}
