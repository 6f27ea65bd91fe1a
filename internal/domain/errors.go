package domain

import "errors"

var (
	// Generic
	ErrValidation   = errors.New("validation error")
	ErrMissingField = errors.New("required field is missing")

	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account number already exists")

	// Posting errors
	ErrSameAccount     = errors.New("source and target account must differ")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")
	ErrInvalidLine     = errors.New("journal line must have exactly one of debit or credit")

	// Lookup errors
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrJournalEntryNotFound    = errors.New("journal entry not found")
	ErrLedgerEntryNotFound     = errors.New("ledger entry not found")
	ErrBalanceSheetNotFound    = errors.New("balance sheet not found")
	ErrIncomeStatementNotFound = errors.New("income statement not found")
	ErrFiscalYearNotFound      = errors.New("fiscal year not found")
	ErrUserNotFound            = errors.New("user not found")

	// Statement errors
	ErrInsolvent        = errors.New("liabilities exceed assets")
	ErrUnbalancedSheet  = errors.New("balance sheet is not balanced")
	ErrAlreadyConfirmed = errors.New("statement is already confirmed")

	// Ledger errors
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)
