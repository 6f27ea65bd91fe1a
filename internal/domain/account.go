package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the fundamental accounting classification of an account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

var validAccountTypes = map[AccountType]bool{
	AccountTypeAsset:     true,
	AccountTypeLiability: true,
	AccountTypeEquity:    true,
	AccountTypeRevenue:   true,
	AccountTypeExpense:   true,
}

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return validAccountTypes[t]
}

// DebitNormal reports whether debits increase accounts of this type.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account represents a ledger account that holds a running balance.
type Account struct {
	ID            string
	AccountNumber string
	AccountName   string
	Type          AccountType
	Balance       decimal.Decimal
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAccount returns a fully initialized account with a zero balance.
func NewAccount(id, number, name string, accountType AccountType, now time.Time) *Account {
	return &Account{
		ID:            id,
		AccountNumber: number,
		AccountName:   name,
		Type:          accountType,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SignedDelta converts a debit/credit pair into the change of this account's
// balance under its type's normal-balance convention.
func (a *Account) SignedDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if a.Type.DebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// ApplyDelta adds a signed amount to the balance and bumps the version.
// Only posting use cases call this, inside a locked unit of work.
func (a *Account) ApplyDelta(delta decimal.Decimal, at time.Time) decimal.Decimal {
	a.Balance = a.Balance.Add(delta)
	a.Version++
	a.UpdatedAt = at
	return a.Balance
}
