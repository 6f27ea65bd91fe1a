package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a balanced group of debit and credit lines posted together.
type JournalEntry struct {
	ID          string
	EntryDate   time.Time
	Description string
	Items       []JournalItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JournalItem is a single debit or credit line of a journal entry.
type JournalItem struct {
	ID             string
	JournalEntryID string
	AccountID      string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	Position       int
}

// Validate checks that exactly one side of the line carries a positive amount.
func (i JournalItem) Validate() error {
	if i.Debit.IsNegative() || i.Credit.IsNegative() {
		return fmt.Errorf("%w: line %d has a negative amount", ErrInvalidLine, i.Position)
	}

	if i.Debit.IsZero() == i.Credit.IsZero() {
		return fmt.Errorf("%w: line %d", ErrInvalidLine, i.Position)
	}

	return nil
}

// Totals returns the debit and credit sums across all items.
func (e *JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, item := range e.Items {
		debits = debits.Add(item.Debit)
		credits = credits.Add(item.Credit)
	}
	return debits, credits
}

// Validate enforces line validity and exact debit/credit balance.
// No epsilon applies here: a journal entry either balances or it does not.
func (e *JournalEntry) Validate() error {
	if len(e.Items) == 0 {
		return fmt.Errorf("%w: entry has no lines", ErrInvalidLine)
	}

	for _, item := range e.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	debits, credits := e.Totals()
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedEntry, debits.String(), credits.String())
	}

	return nil
}

// AccountIDs returns the distinct account IDs referenced by the items.
func (e *JournalEntry) AccountIDs() []string {
	seen := make(map[string]bool)

	var ids []string
	for _, item := range e.Items {
		if !seen[item.AccountID] {
			seen[item.AccountID] = true
			ids = append(ids, item.AccountID)
		}
	}

	return ids
}
