package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is stored under a key while its first request is still running
	IdempotencyPending = "processing"

	// FiscalYearCacheTTL bounds how stale a cached fiscal year may be
	FiscalYearCacheTTL = 5 * time.Minute
)

// Operation names reported to Metrics.
const (
	OpJournalPost            = "journal_post"
	OpJournalUpdate          = "journal_update"
	OpLedgerRecord           = "ledger_record"
	OpLedgerUpdate           = "ledger_update"
	OpTransactionPost        = "transaction_post"
	OpBalanceSheetSave       = "balance_sheet_save"
	OpBalanceSheetConfirm    = "balance_sheet_confirm"
	OpIncomeStatementSave    = "income_statement_save"
	OpIncomeStatementConfirm = "income_statement_confirm"
)
