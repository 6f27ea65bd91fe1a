package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		Type:          string(a.Type),
		Balance:       a.Balance,
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// JournalItemResponse represents a journal line in API responses.
type JournalItemResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Position  int             `json:"position"`
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID           string                 `json:"id"`
	EntryDate    time.Time              `json:"entry_date"`
	Description  string                 `json:"description"`
	Lines        []*JournalItemResponse `json:"lines"`
	TotalDebits  decimal.Decimal        `json:"total_debits"`
	TotalCredits decimal.Decimal        `json:"total_credits"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// JournalEntryFromDomain converts a domain journal entry to response.
func JournalEntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	lines := make([]*JournalItemResponse, len(e.Items))
	for i, item := range e.Items {
		lines[i] = &JournalItemResponse{
			ID:        item.ID,
			AccountID: item.AccountID,
			Debit:     item.Debit,
			Credit:    item.Credit,
			Position:  item.Position,
		}
	}

	debits, credits := e.Totals()

	return &JournalEntryResponse{
		ID:           e.ID,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		Lines:        lines,
		TotalDebits:  debits,
		TotalCredits: credits,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// JournalEntriesFromDomain converts domain journal entries to responses.
func JournalEntriesFromDomain(entries []*domain.JournalEntry) []*JournalEntryResponse {
	result := make([]*JournalEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = JournalEntryFromDomain(e)
	}
	return result
}

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	ModifiedAt  *time.Time      `json:"modified_at,omitempty"`
}

// LedgerEntryFromDomain converts a domain ledger entry to response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		Type:        string(e.Type),
		Amount:      e.Amount,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		ModifiedAt:  e.ModifiedAt,
	}
}

// LedgerEntriesFromDomain converts domain ledger entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryFromDomain(e)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	SourceAccountID string          `json:"source_account_id"`
	TargetAccountID string          `json:"target_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	UserID          string          `json:"user_id,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		SourceAccountID: t.SourceAccountID,
		TargetAccountID: t.TargetAccountID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		UserID:          t.UserID,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// BalanceSheetResponse represents a balance sheet in API responses.
// Persisted sheets always carry all three totals; a derived preview may not.
type BalanceSheetResponse struct {
	ID               string           `json:"id,omitempty"`
	Date             time.Time        `json:"date"`
	FiscalYearID     string           `json:"fiscal_year_id"`
	TotalAssets      *decimal.Decimal `json:"total_assets"`
	TotalLiabilities *decimal.Decimal `json:"total_liabilities"`
	TotalEquity      *decimal.Decimal `json:"total_equity"`
	IsBalanced       bool             `json:"is_balanced"`
	Confirmed        bool             `json:"confirmed"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// BalanceSheetFromDomain converts a domain balance sheet to response.
func BalanceSheetFromDomain(b *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		ID:               b.ID,
		Date:             b.Date,
		FiscalYearID:     b.FiscalYearID,
		TotalAssets:      b.TotalAssets,
		TotalLiabilities: b.TotalLiabilities,
		TotalEquity:      b.TotalEquity,
		IsBalanced:       b.IsBalanced(),
		Confirmed:        b.Confirmed,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// BalanceSheetsFromDomain converts domain balance sheets to responses.
func BalanceSheetsFromDomain(sheets []*domain.BalanceSheet) []*BalanceSheetResponse {
	result := make([]*BalanceSheetResponse, len(sheets))
	for i, s := range sheets {
		result[i] = BalanceSheetFromDomain(s)
	}
	return result
}

// IncomeStatementResponse represents an income statement in API responses.
type IncomeStatementResponse struct {
	ID            string           `json:"id,omitempty"`
	PeriodStart   time.Time        `json:"period_start"`
	PeriodEnd     time.Time        `json:"period_end"`
	FiscalYearID  string           `json:"fiscal_year_id"`
	TotalRevenue  *decimal.Decimal `json:"total_revenue"`
	TotalExpenses *decimal.Decimal `json:"total_expenses"`
	NetProfit     *decimal.Decimal `json:"net_profit"`
	IsProfitable  bool             `json:"is_profitable"`
	Confirmed     bool             `json:"confirmed"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// IncomeStatementFromDomain converts a domain income statement to response.
func IncomeStatementFromDomain(s *domain.IncomeStatement) *IncomeStatementResponse {
	return &IncomeStatementResponse{
		ID:            s.ID,
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		FiscalYearID:  s.FiscalYearID,
		TotalRevenue:  s.TotalRevenue,
		TotalExpenses: s.TotalExpenses,
		NetProfit:     s.NetProfit,
		IsProfitable:  s.IsProfitable(),
		Confirmed:     s.Confirmed,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// IncomeStatementsFromDomain converts domain income statements to responses.
func IncomeStatementsFromDomain(statements []*domain.IncomeStatement) []*IncomeStatementResponse {
	result := make([]*IncomeStatementResponse, len(statements))
	for i, s := range statements {
		result[i] = IncomeStatementFromDomain(s)
	}
	return result
}

// ConsistencyResponse is the ledger trial balance.
type ConsistencyResponse struct {
	Status       string          `json:"status"`
	Consistent   bool            `json:"consistent"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Difference   decimal.Decimal `json:"difference"`
	CheckedAt    time.Time       `json:"checked_at"`
}

// ConsistencyFromReport converts a consistency report to response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	status := "consistent"
	if !r.Consistent {
		status = "inconsistent"
	}

	return &ConsistencyResponse{
		Status:       status,
		Consistent:   r.Consistent,
		TotalDebits:  r.TotalDebits,
		TotalCredits: r.TotalCredits,
		Difference:   r.Difference,
		CheckedAt:    r.CheckedAt,
	}
}

// ReconciliationResponse is the reconciliation result of one account.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	AccountNumber     string          `json:"account_number"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromResult converts a reconciliation result to response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		AccountNumber:     r.AccountNumber,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse is the reconciliation report over all accounts.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationFromReport converts a reconciliation report to response.
func ReconciliationFromReport(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromResult(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
