package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID            string             `json:"id"`
	AccountNumber string             `json:"account_number"`
	AccountName   string             `json:"account_name"`
	Type          string             `json:"type"`
	Balance       pgtype.Numeric     `json:"balance"`
	Version       int64              `json:"version"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type BalanceSheet struct {
	ID               string             `json:"id"`
	Date             pgtype.Date        `json:"date"`
	TotalAssets      pgtype.Numeric     `json:"total_assets"`
	TotalLiabilities pgtype.Numeric     `json:"total_liabilities"`
	TotalEquity      pgtype.Numeric     `json:"total_equity"`
	FiscalYearID     string             `json:"fiscal_year_id"`
	Confirmed        bool               `json:"confirmed"`
	Status           string             `json:"status"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

type FiscalYear struct {
	ID        string      `json:"id"`
	Year      int32       `json:"year"`
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
	Closed    bool        `json:"closed"`
}

type IncomeStatement struct {
	ID            string             `json:"id"`
	PeriodStart   pgtype.Date        `json:"period_start"`
	PeriodEnd     pgtype.Date        `json:"period_end"`
	TotalRevenue  pgtype.Numeric     `json:"total_revenue"`
	TotalExpenses pgtype.Numeric     `json:"total_expenses"`
	NetProfit     pgtype.Numeric     `json:"net_profit"`
	FiscalYearID  string             `json:"fiscal_year_id"`
	Confirmed     bool               `json:"confirmed"`
	Status        string             `json:"status"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type JournalEntry struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Timestamptz `json:"entry_date"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type JournalItem struct {
	ID             string         `json:"id"`
	JournalEntryID string         `json:"journal_entry_id"`
	AccountID      string         `json:"account_id"`
	Debit          pgtype.Numeric `json:"debit"`
	Credit         pgtype.Numeric `json:"credit"`
	Position       int32          `json:"position"`
}

type LedgerEntry struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Timestamptz `json:"entry_date"`
	Amount      pgtype.Numeric     `json:"amount"`
	Description string             `json:"description"`
	AccountID   string             `json:"account_id"`
	Type        string             `json:"type"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	ModifiedAt  pgtype.Timestamptz `json:"modified_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	Published     bool               `json:"published"`
}

type Transaction struct {
	ID              string             `json:"id"`
	Amount          pgtype.Numeric     `json:"amount"`
	TransactionType string             `json:"transaction_type"`
	SourceAccountID string             `json:"source_account_id"`
	TargetAccountID string             `json:"target_account_id"`
	UserID          pgtype.Text        `json:"user_id"`
	TransactionDate pgtype.Timestamptz `json:"transaction_date"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
	Active    bool               `json:"active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
