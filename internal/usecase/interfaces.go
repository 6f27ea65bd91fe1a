package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create returns domain.ErrDuplicateAccount if the account number is taken.
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByIDsForUpdate locks the rows in ID order until tx ends.
	GetByIDsForUpdate(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// JournalRepository defines data access for journal entries and their items.
type JournalRepository interface {
	Create(ctx context.Context, tx Tx, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.JournalEntry, error)
	// Update rewrites the header and replaces the full item set.
	Update(ctx context.Context, tx Tx, entry *domain.JournalEntry) error
	List(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error)
}

// LedgerEntryRepository defines data access for single-sided ledger entries.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Tx, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.LedgerEntry, error)
	Update(ctx context.Context, tx Tx, entry *domain.LedgerEntry) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// TransactionRepository defines data access for account-to-account transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// BalanceSheetRepository defines data access for balance sheets.
type BalanceSheetRepository interface {
	Create(ctx context.Context, sheet *domain.BalanceSheet) error
	GetByID(ctx context.Context, id string) (*domain.BalanceSheet, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.BalanceSheet, error)
	Update(ctx context.Context, tx Tx, sheet *domain.BalanceSheet) error
	ListByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]*domain.BalanceSheet, error)
}

// IncomeStatementRepository defines data access for income statements.
type IncomeStatementRepository interface {
	Create(ctx context.Context, statement *domain.IncomeStatement) error
	GetByID(ctx context.Context, id string) (*domain.IncomeStatement, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.IncomeStatement, error)
	Update(ctx context.Context, tx Tx, statement *domain.IncomeStatement) error
	ListByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]*domain.IncomeStatement, error)
}

// FiscalYearRepository looks up fiscal years owned by the surrounding ERP.
type FiscalYearRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FiscalYear, error)
}

// UserRepository looks up transaction actors.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// LedgerRepository defines data access for ledger-wide aggregates.
type LedgerRepository interface {
	JournalTotals(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
	AccountActivity(ctx context.Context, accountID string) (*domain.AccountActivity, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// Retrier re-runs a whole unit of work on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

// Metrics receives posting outcomes.
type Metrics interface {
	PostingCompleted(operation string)
	PostingRejected(operation string, err error)
	IntegrityWarning(resource string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) PostingCompleted(string)       {}
func (NopMetrics) PostingRejected(string, error) {}
func (NopMetrics) IntegrityWarning(string)       {}
