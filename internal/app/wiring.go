// Package app assembles use cases over one storage backend. The server and
// the CLI share it so both see the same posting rules.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/finledger/internal/adapter/repository/postgres"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// Repositories is one storage backend.
type Repositories struct {
	TxManager        usecase.TxManager
	Retrier          usecase.Retrier
	Accounts         usecase.AccountRepository
	Journals         usecase.JournalRepository
	LedgerEntries    usecase.LedgerEntryRepository
	Transactions     usecase.TransactionRepository
	BalanceSheets    usecase.BalanceSheetRepository
	IncomeStatements usecase.IncomeStatementRepository
	FiscalYears      usecase.FiscalYearRepository
	Users            usecase.UserRepository
	Ledger           usecase.LedgerRepository
	Outbox           usecase.OutboxRepository
}

// MemoryRepositories backs every repository with store.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		TxManager:        memory.NewTxManager(store),
		Retrier:          memory.Retrier{},
		Accounts:         memory.NewAccountRepository(store),
		Journals:         memory.NewJournalRepository(store),
		LedgerEntries:    memory.NewLedgerEntryRepository(store),
		Transactions:     memory.NewTransactionRepository(store),
		BalanceSheets:    memory.NewBalanceSheetRepository(store),
		IncomeStatements: memory.NewIncomeStatementRepository(store),
		FiscalYears:      memory.NewFiscalYearRepository(store),
		Users:            memory.NewUserRepository(store),
		Ledger:           memory.NewLedgerRepository(store),
		Outbox:           memory.NewOutboxRepository(store),
	}
}

// PostgresOptions tunes how units of work behave under lock contention.
type PostgresOptions struct {
	LockTimeout time.Duration
	Retry       postgresRepo.RetryConfig
	// OnRetry is told the SQLSTATE of every conflict that gets rerun.
	OnRetry func(sqlState string)
}

// PostgresRepositories backs every repository with pool.
func PostgresRepositories(pool *pgxpool.Pool, opts PostgresOptions, logger zerolog.Logger) Repositories {
	return Repositories{
		TxManager:        postgresRepo.NewTxManager(pool).WithLockTimeout(opts.LockTimeout),
		Retrier:          postgresRepo.NewRetrierWithConfig(opts.Retry, logger).OnRetry(opts.OnRetry),
		Accounts:         postgresRepo.NewAccountRepository(pool),
		Journals:         postgresRepo.NewJournalRepository(pool),
		LedgerEntries:    postgresRepo.NewLedgerEntryRepository(pool),
		Transactions:     postgresRepo.NewTransactionRepository(pool),
		BalanceSheets:    postgresRepo.NewBalanceSheetRepository(pool),
		IncomeStatements: postgresRepo.NewIncomeStatementRepository(pool),
		FiscalYears:      postgresRepo.NewFiscalYearRepository(pool),
		Users:            postgresRepo.NewUserRepository(pool),
		Ledger:           postgresRepo.NewLedgerRepository(pool),
		Outbox:           postgresRepo.NewOutboxRepository(pool),
	}
}

// UseCases holds every use case built over one Repositories.
type UseCases struct {
	Accounts         *usecase.AccountUseCase
	Journal          *usecase.JournalUseCase
	LedgerEntries    *usecase.LedgerEntryUseCase
	Transactions     *usecase.TransactionUseCase
	BalanceSheets    *usecase.BalanceSheetUseCase
	IncomeStatements *usecase.IncomeStatementUseCase
	Ledger           *usecase.LedgerUseCase
	Reconciliation   *usecase.ReconciliationUseCase
}

// NewUseCases wires the use cases. A nil metrics sink discards everything.
func NewUseCases(repos Repositories, idGen usecase.IDGenerator, metrics usecase.Metrics, logger zerolog.Logger) *UseCases {
	if metrics == nil {
		metrics = usecase.NopMetrics{}
	}

	return &UseCases{
		Accounts: usecase.NewAccountUseCase(repos.Accounts, idGen),
		Journal: usecase.NewJournalUseCase(
			repos.TxManager, repos.Retrier, repos.Accounts, repos.Journals, repos.Outbox, idGen, metrics),
		LedgerEntries: usecase.NewLedgerEntryUseCase(
			repos.TxManager, repos.Retrier, repos.Accounts, repos.LedgerEntries, repos.Outbox, idGen, metrics),
		Transactions: usecase.NewTransactionUseCase(
			repos.TxManager, repos.Retrier, repos.Accounts, repos.Transactions, repos.Users, repos.Outbox, idGen, metrics),
		BalanceSheets: usecase.NewBalanceSheetUseCase(
			repos.TxManager, repos.Retrier, repos.BalanceSheets, repos.FiscalYears, repos.Outbox, idGen, metrics, logger),
		IncomeStatements: usecase.NewIncomeStatementUseCase(
			repos.TxManager, repos.Retrier, repos.IncomeStatements, repos.FiscalYears, repos.Outbox, idGen, metrics, logger),
		Ledger:         usecase.NewLedgerUseCase(repos.Ledger),
		Reconciliation: usecase.NewReconciliationUseCase(repos.Accounts, repos.Ledger),
	}
}

// SystemUserID is the active user SeedReferenceData registers.
const SystemUserID = "system"

// FiscalYearID is the ID under which SeedReferenceData stores a calendar year.
func FiscalYearID(year int) string {
	return fmt.Sprintf("fy-%d", year)
}

// SeedReferenceData gives an in-memory store the current and previous
// calendar years and a system user. Both are owned outside the accounting
// core, so nothing else creates them.
func SeedReferenceData(ctx context.Context, store *memory.Store, now time.Time) error {
	for _, year := range []int{now.Year() - 1, now.Year()} {
		fy := domain.FiscalYear{
			ID:        FiscalYearID(year),
			Year:      year,
			StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
		if err := store.SeedFiscalYear(ctx, fy); err != nil {
			return fmt.Errorf("seed fiscal year %d: %w", year, err)
		}
	}

	user := domain.User{ID: SystemUserID, Name: "System", Active: true, CreatedAt: now}
	if err := store.SeedUser(ctx, user); err != nil {
		return fmt.Errorf("seed system user: %w", err)
	}
	return nil
}
