package domain

import "github.com/shopspring/decimal"

// AccountActivity sums every posting that has touched one account.
type AccountActivity struct {
	AccountID      string
	JournalDebits  decimal.Decimal
	JournalCredits decimal.Decimal
	LedgerDebits   decimal.Decimal
	LedgerCredits  decimal.Decimal
	TransfersIn    decimal.Decimal
	TransfersOut   decimal.Decimal
}

// ExpectedBalance replays the activity against account's type convention.
// Journal lines and ledger entries follow the normal-balance rule; transactions
// move raw amounts from source to target.
func (a *AccountActivity) ExpectedBalance(account *Account) decimal.Decimal {
	debits := a.JournalDebits.Add(a.LedgerDebits)
	credits := a.JournalCredits.Add(a.LedgerCredits)

	return account.SignedDelta(debits, credits).Add(a.TransfersIn).Sub(a.TransfersOut)
}
