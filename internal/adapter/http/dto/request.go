package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// RegisterAccountRequest represents a request to register an account.
type RegisterAccountRequest struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	Type          string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterAccountRequest) ToUseCaseInput() usecase.RegisterAccountInput {
	return usecase.RegisterAccountInput{
		AccountNumber: r.AccountNumber,
		AccountName:   r.AccountName,
		Type:          domain.AccountType(r.Type),
	}
}

// JournalLineRequest is one line of a journal entry. An omitted side is zero.
type JournalLineRequest struct {
	AccountID string           `json:"account_id"`
	Debit     *decimal.Decimal `json:"debit,omitempty"`
	Credit    *decimal.Decimal `json:"credit,omitempty"`
}

// JournalEntryRequest represents a request to post or update a journal entry.
type JournalEntryRequest struct {
	EntryDate   *time.Time           `json:"entry_date,omitempty"`
	Description string               `json:"description"`
	Lines       []JournalLineRequest `json:"lines"`
}

// ToUseCaseInput converts to use case input.
func (r *JournalEntryRequest) ToUseCaseInput() usecase.JournalEntryInput {
	lines := make([]usecase.JournalLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.JournalLineInput{
			AccountID: l.AccountID,
			Debit:     orZero(l.Debit),
			Credit:    orZero(l.Credit),
		}
	}

	return usecase.JournalEntryInput{
		EntryDate:   r.EntryDate,
		Description: r.Description,
		Lines:       lines,
	}
}

// LedgerEntryRequest represents a request to record or update a ledger entry.
type LedgerEntryRequest struct {
	AccountID   string           `json:"account_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        string           `json:"type"`
	EntryDate   *time.Time       `json:"entry_date,omitempty"`
	Description string           `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *LedgerEntryRequest) ToUseCaseInput() usecase.LedgerEntryInput {
	return usecase.LedgerEntryInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Type:        domain.EntryType(r.Type),
		EntryDate:   r.EntryDate,
		Description: r.Description,
	}
}

// PostTransactionRequest represents a request to post a transaction.
type PostTransactionRequest struct {
	SourceAccountID string          `json:"source_account_id"`
	TargetAccountID string          `json:"target_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	UserID          string          `json:"user_id,omitempty"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostTransactionRequest) ToUseCaseInput() usecase.PostTransactionInput {
	return usecase.PostTransactionInput{
		SourceAccountID: r.SourceAccountID,
		TargetAccountID: r.TargetAccountID,
		Amount:          r.Amount,
		TransactionType: r.TransactionType,
		UserID:          r.UserID,
		TransactionDate: r.TransactionDate,
	}
}

// BalanceSheetRequest carries the sheet totals. Any one of them may be
// omitted and is then derived.
type BalanceSheetRequest struct {
	Date             *time.Time       `json:"date,omitempty"`
	FiscalYearID     string           `json:"fiscal_year_id"`
	TotalAssets      *decimal.Decimal `json:"total_assets,omitempty"`
	TotalLiabilities *decimal.Decimal `json:"total_liabilities,omitempty"`
	TotalEquity      *decimal.Decimal `json:"total_equity,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *BalanceSheetRequest) ToUseCaseInput() usecase.BalanceSheetInput {
	return usecase.BalanceSheetInput{
		Date:             r.Date,
		FiscalYearID:     r.FiscalYearID,
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		TotalEquity:      r.TotalEquity,
	}
}

// IncomeStatementRequest carries the statement figures. Any one of them may
// be omitted and is then derived.
type IncomeStatementRequest struct {
	PeriodStart   *time.Time       `json:"period_start,omitempty"`
	PeriodEnd     *time.Time       `json:"period_end,omitempty"`
	FiscalYearID  string           `json:"fiscal_year_id"`
	TotalRevenue  *decimal.Decimal `json:"total_revenue,omitempty"`
	TotalExpenses *decimal.Decimal `json:"total_expenses,omitempty"`
	NetProfit     *decimal.Decimal `json:"net_profit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *IncomeStatementRequest) ToUseCaseInput() usecase.IncomeStatementInput {
	return usecase.IncomeStatementInput{
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		FiscalYearID:  r.FiscalYearID,
		TotalRevenue:  r.TotalRevenue,
		TotalExpenses: r.TotalExpenses,
		NetProfit:     r.NetProfit,
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
