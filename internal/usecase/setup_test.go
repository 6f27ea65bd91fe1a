package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/finledger/internal/adapter/repository/memory"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

type seqIDs struct {
	n atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%06d", g.n.Add(1))
}

// ledger wires every use case on one in-memory store.
type ledger struct {
	store        *memory.Store
	accountRepo  *memory.AccountRepository
	outboxRepo   *memory.OutboxRepository
	sheetRepo    *memory.BalanceSheetRepository
	accounts     *usecase.AccountUseCase
	journal      *usecase.JournalUseCase
	entries      *usecase.LedgerEntryUseCase
	transactions *usecase.TransactionUseCase
	sheets       *usecase.BalanceSheetUseCase
	statements   *usecase.IncomeStatementUseCase
	checks       *usecase.LedgerUseCase
	reconcile    *usecase.ReconciliationUseCase
}

func newLedger(t *testing.T, opts ...func(*ledgerOptions)) *ledger {
	t.Helper()

	o := ledgerOptions{metrics: usecase.NopMetrics{}, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	store := memory.NewStore()
	ids := &seqIDs{}
	txm := memory.NewTxManager(store)
	retrier := memory.Retrier{}

	accountRepo := memory.NewAccountRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)
	sheetRepo := memory.NewBalanceSheetRepository(store)
	fiscalYears := memory.NewFiscalYearRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)

	ctx := context.Background()
	require.NoError(t, store.SeedFiscalYear(ctx, domain.FiscalYear{
		ID:        "fy-2025",
		Year:      2025,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.SeedUser(ctx, domain.User{ID: "clerk", Active: true}))
	require.NoError(t, store.SeedUser(ctx, domain.User{ID: "former", Active: false}))

	return &ledger{
		store:       store,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		sheetRepo:   sheetRepo,
		accounts:    usecase.NewAccountUseCase(accountRepo, ids),
		journal: usecase.NewJournalUseCase(txm, retrier, accountRepo,
			memory.NewJournalRepository(store), outboxRepo, ids, o.metrics),
		entries: usecase.NewLedgerEntryUseCase(txm, retrier, accountRepo,
			memory.NewLedgerEntryRepository(store), outboxRepo, ids, o.metrics),
		transactions: usecase.NewTransactionUseCase(txm, retrier, accountRepo,
			memory.NewTransactionRepository(store), memory.NewUserRepository(store), outboxRepo, ids, o.metrics),
		sheets: usecase.NewBalanceSheetUseCase(txm, retrier, sheetRepo, fiscalYears,
			outboxRepo, ids, o.metrics, o.logger),
		statements: usecase.NewIncomeStatementUseCase(txm, retrier,
			memory.NewIncomeStatementRepository(store), fiscalYears, outboxRepo, ids, o.metrics, o.logger),
		checks:    usecase.NewLedgerUseCase(ledgerRepo),
		reconcile: usecase.NewReconciliationUseCase(accountRepo, ledgerRepo),
	}
}

type ledgerOptions struct {
	metrics usecase.Metrics
	logger  zerolog.Logger
}

func withMetrics(m usecase.Metrics) func(*ledgerOptions) {
	return func(o *ledgerOptions) { o.metrics = m }
}

func withLogger(l zerolog.Logger) func(*ledgerOptions) {
	return func(o *ledgerOptions) { o.logger = l }
}

func (l *ledger) register(t *testing.T, number string, accountType domain.AccountType) *domain.Account {
	t.Helper()

	acc, err := l.accounts.Register(context.Background(), usecase.RegisterAccountInput{
		AccountNumber: number,
		AccountName:   "Account " + number,
		Type:          accountType,
	})
	require.NoError(t, err)

	return acc
}

func (l *ledger) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()

	acc, err := l.accountRepo.GetByID(context.Background(), id)
	require.NoError(t, err)

	return acc.Balance
}

func (l *ledger) pendingEvents(t *testing.T) []*domain.OutboxEvent {
	t.Helper()

	events, err := l.outboxRepo.GetUnpublished(context.Background(), 100)
	require.NoError(t, err)

	return events
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func debit(accountID, amount string) usecase.JournalLineInput {
	return usecase.JournalLineInput{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(accountID, amount string) usecase.JournalLineInput {
	return usecase.JournalLineInput{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func decEq(s string) gomock.Matcher {
	return decimalMatcher{want: dec(s)}
}
