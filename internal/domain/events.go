package domain

import (
	"encoding/json"
	"time"
)

// Event types
const (
	EventTypeJournalEntryPosted       = "journal_entry.posted"
	EventTypeJournalEntryUpdated      = "journal_entry.updated"
	EventTypeLedgerEntryRecorded      = "ledger_entry.recorded"
	EventTypeTransactionPosted        = "transaction.posted"
	EventTypeBalanceSheetConfirmed    = "balance_sheet.confirmed"
	EventTypeIncomeStatementConfirmed = "income_statement.confirmed"
)

// Aggregate types
const (
	AggregateTypeJournalEntry    = "journal_entry"
	AggregateTypeLedgerEntry     = "ledger_entry"
	AggregateTypeTransaction     = "transaction"
	AggregateTypeBalanceSheet    = "balance_sheet"
	AggregateTypeIncomeStatement = "income_statement"
)

// OutboxEvent represents an event to be published after commit.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// JournalEntryPostedEvent payload
type JournalEntryPostedEvent struct {
	JournalEntryID string `json:"journal_entry_id"`
	Description    string `json:"description"`
	TotalDebits    string `json:"total_debits"`
	TotalCredits   string `json:"total_credits"`
	Lines          int    `json:"lines"`
	EntryDate      string `json:"entry_date"`
}

// TransactionPostedEvent payload
type TransactionPostedEvent struct {
	TransactionID   string `json:"transaction_id"`
	SourceAccountID string `json:"source_account_id"`
	TargetAccountID string `json:"target_account_id"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transaction_type"`
	UserID          string `json:"user_id"`
}

// LedgerEntryRecordedEvent payload
type LedgerEntryRecordedEvent struct {
	LedgerEntryID string `json:"ledger_entry_id"`
	AccountID     string `json:"account_id"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
}

// StatementConfirmedEvent payload, shared by balance sheets and income statements.
type StatementConfirmedEvent struct {
	StatementID  string `json:"statement_id"`
	FiscalYearID string `json:"fiscal_year_id"`
}

// ToPayload converts an event struct into the generic outbox payload.
func ToPayload(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"error": "failed to marshal payload"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to unmarshal payload"}
	}

	return result
}
