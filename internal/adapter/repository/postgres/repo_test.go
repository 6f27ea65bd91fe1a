package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
	"github.com/iho/finledger/internal/usecase"
)

var (
	accountColumns = []string{"id", "account_number", "account_name", "type", "balance", "version", "created_at", "updated_at"}
	sheetColumns   = []string{"id", "date", "total_assets", "total_liabilities", "total_equity", "fiscal_year_id", "confirmed", "status", "created_at", "updated_at"}
)

func num(s string) pgtype.Numeric {
	return decimalToNumeric(decimal.RequireFromString(s))
}

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Tx {
	t.Helper()
	pool.ExpectBeginTx(readCommitted)
	tx, err := (&TxManager{db: pool}).Begin(context.Background())
	require.NoError(t, err)
	return tx
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return nil }

func TestNumericConversion(t *testing.T) {
	d := decimal.RequireFromString("1234.56")
	n := decimalToNumeric(d)

	assert.True(t, n.Valid)
	assert.Equal(t, int32(-2), n.Exp)
	assert.True(t, numericToDecimal(n).Equal(d))

	assert.False(t, decimalPtrToNumeric(nil).Valid)
	assert.Nil(t, numericToDecimalPtr(pgtype.Numeric{}))
	assert.True(t, numericToDecimal(pgtype.Numeric{}).IsZero())

	// NUMERIC(20,2) columns come back with a fixed scale.
	scaled := pgtype.Numeric{Int: decimal.NewFromInt(10000).BigInt(), Exp: -2, Valid: true}
	assert.True(t, numericToDecimal(scaled).Equal(decimal.NewFromInt(100)))
}

func TestTxQueriesRejectsForeignTx(t *testing.T) {
	_, err := txQueries(foreignTx{})
	assert.ErrorIs(t, err, ErrForeignTx)

	repo := NewAccountRepository(newMockPool(t))
	err = repo.UpdateBalance(context.Background(), foreignTx{}, "a", decimal.Zero, 1, time.Now())
	assert.ErrorIs(t, err, ErrForeignTx)
}

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectExec("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	repo := NewAccountRepository(pool)
	err := repo.Create(context.Background(), domain.NewAccount("a", "1010", "Cash", domain.AccountTypeAsset, time.Now()))

	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assertExpectations(t, pool)
}

func TestAccountRepository_GetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("SELECT .+ FROM accounts WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewAccountRepository(pool).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assertExpectations(t, pool)
}

func TestAccountRepository_LockAndUpdate(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	now := timeToPgTimestamptz(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	pool.ExpectQuery("FROM accounts\\s+WHERE id = ANY\\(\\$1::varchar\\[\\]\\)\\s+ORDER BY id\\s+FOR UPDATE").
		WithArgs([]string{"a", "b"}).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow("a", "1010", "Cash", "ASSET", num("100.50"), int64(2), now, now).
			AddRow("b", "2000", "Loan", "LIABILITY", num("0"), int64(0), now, now))
	pool.ExpectExec("UPDATE accounts SET balance").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewAccountRepository(pool)
	accounts, err := repo.GetByIDsForUpdate(context.Background(), tx, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, domain.AccountTypeAsset, accounts[0].Type)
	assert.True(t, accounts[0].Balance.Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, int64(2), accounts[0].Version)
	assert.Equal(t, "Loan", accounts[1].AccountName)

	err = repo.UpdateBalance(context.Background(), tx, "gone", decimal.NewFromInt(1), 3, time.Now())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assertExpectations(t, pool)
}

func TestJournalRepository_CreateWritesItems(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("INSERT INTO journal_entries").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec("INSERT INTO journal_items").
		WithArgs("it-1", "je-1", "cash", num("75"), pgxmock.AnyArg(), int32(1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec("INSERT INTO journal_items").
		WithArgs("it-2", "je-1", "sales", pgxmock.AnyArg(), num("75"), int32(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry := &domain.JournalEntry{
		ID:          "je-1",
		EntryDate:   time.Now(),
		Description: "cash sale",
		Items: []domain.JournalItem{
			{ID: "it-1", AccountID: "cash", Debit: decimal.NewFromInt(75), Credit: decimal.Zero, Position: 1},
			{ID: "it-2", AccountID: "sales", Debit: decimal.Zero, Credit: decimal.NewFromInt(75), Position: 2},
		},
	}

	require.NoError(t, NewJournalRepository(pool).Create(context.Background(), tx, entry))
	assertExpectations(t, pool)
}

func TestJournalRepository_GetByIDLoadsItems(t *testing.T) {
	pool := newMockPool(t)
	now := timeToPgTimestamptz(time.Now())

	pool.ExpectQuery("FROM journal_entries WHERE id = \\$1").
		WithArgs("je-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "entry_date", "description", "created_at", "updated_at"}).
			AddRow("je-1", now, "rent", now, now))
	pool.ExpectQuery("FROM journal_items").
		WithArgs([]string{"je-1"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "journal_entry_id", "account_id", "debit", "credit", "position"}).
			AddRow("it-1", "je-1", "rent", num("900"), num("0"), int32(1)).
			AddRow("it-2", "je-1", "cash", num("0"), num("900"), int32(2)))

	entry, err := NewJournalRepository(pool).GetByID(context.Background(), "je-1")
	require.NoError(t, err)
	require.Len(t, entry.Items, 2)

	debits, credits := entry.Totals()
	assert.True(t, debits.Equal(decimal.NewFromInt(900)))
	assert.True(t, credits.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 2, entry.Items[1].Position)
	assertExpectations(t, pool)
}

func TestJournalRepository_UpdateReplacesItems(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("UPDATE journal_entries").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectExec("DELETE FROM journal_items WHERE journal_entry_id = \\$1").
		WithArgs("je-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	pool.ExpectExec("INSERT INTO journal_items").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry := &domain.JournalEntry{
		ID:    "je-1",
		Items: []domain.JournalItem{{ID: "it-3", AccountID: "cash", Debit: decimal.NewFromInt(1), Position: 1}},
	}

	require.NoError(t, NewJournalRepository(pool).Update(context.Background(), tx, entry))
	assertExpectations(t, pool)
}

func TestTransactionRepository_StoresEmptyUserAsNull(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("INSERT INTO transactions").
		WithArgs("t-1", num("25"), "TRANSFER", "a", "b", pgtype.Text{}, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := NewTransactionRepository(pool).Create(context.Background(), tx, &domain.Transaction{
		ID:              "t-1",
		Amount:          decimal.NewFromInt(25),
		TransactionType: "TRANSFER",
		SourceAccountID: "a",
		TargetAccountID: "b",
	})

	require.NoError(t, err)
	assertExpectations(t, pool)
}

func TestLedgerEntryRepository_ModifiedAtRoundTrip(t *testing.T) {
	pool := newMockPool(t)
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	modified := created.Add(time.Hour)

	pool.ExpectQuery("FROM ledger_entries WHERE id = \\$1").
		WithArgs("le-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "entry_date", "amount", "description", "account_id", "type", "created_at", "modified_at"}).
			AddRow("le-1", timeToPgTimestamptz(created), num("50"), "fee", "cash", "CREDIT", timeToPgTimestamptz(created), timeToPgTimestamptz(modified)))
	pool.ExpectQuery("FROM ledger_entries WHERE id = \\$1").
		WithArgs("le-2").
		WillReturnError(pgx.ErrNoRows)

	repo := NewLedgerEntryRepository(pool)
	entry, err := repo.GetByID(context.Background(), "le-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryTypeCredit, entry.Type)
	require.NotNil(t, entry.ModifiedAt)
	assert.True(t, entry.ModifiedAt.Equal(modified))

	_, err = repo.GetByID(context.Background(), "le-2")
	assert.ErrorIs(t, err, domain.ErrLedgerEntryNotFound)
	assertExpectations(t, pool)
}

func TestBalanceSheetRepository_NullTotals(t *testing.T) {
	pool := newMockPool(t)
	now := timeToPgTimestamptz(time.Now())
	date := timeToPgDate(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))

	pool.ExpectQuery("FROM balance_sheets\\s+WHERE fiscal_year_id = \\$1").
		WithArgs("fy-2025", int32(10), int32(0)).
		WillReturnRows(pgxmock.NewRows(sheetColumns).
			AddRow("bs-1", date, num("1000"), num("600"), pgtype.Numeric{}, "fy-2025", false, "NEW", now, now))

	sheets, err := NewBalanceSheetRepository(pool).ListByFiscalYear(context.Background(), "fy-2025", 10, 0)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	require.NotNil(t, sheet.TotalAssets)
	assert.True(t, sheet.TotalAssets.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, sheet.TotalEquity)
	assert.Equal(t, domain.StatementStatusNew, sheet.Status)
	assert.Equal(t, 2025, sheet.Date.Year())
	assertExpectations(t, pool)
}

func TestBalanceSheetRepository_UpdateMissing(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)

	pool.ExpectExec("UPDATE balance_sheets").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewBalanceSheetRepository(pool).Update(context.Background(), tx, &domain.BalanceSheet{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrBalanceSheetNotFound)
	assertExpectations(t, pool)
}

func TestIncomeStatementRepository_Create(t *testing.T) {
	pool := newMockPool(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	pool.ExpectExec("INSERT INTO income_statements").
		WithArgs("is-1", timeToPgDate(start), timeToPgDate(end), num("500"), num("200"), num("300"),
			"fy-2025", false, "NEW", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	stmt := domain.NewIncomeStatement("is-1", "fy-2025", start, end,
		domain.Amount(decimal.NewFromInt(500)), domain.Amount(decimal.NewFromInt(200)), domain.Amount(decimal.NewFromInt(300)), time.Now())

	require.NoError(t, NewIncomeStatementRepository(pool).Create(context.Background(), stmt))
	assertExpectations(t, pool)
}

func TestLookupRepositories(t *testing.T) {
	pool := newMockPool(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	pool.ExpectQuery("FROM fiscal_years WHERE id = \\$1").
		WithArgs("fy-2025").
		WillReturnRows(pgxmock.NewRows([]string{"id", "year", "start_date", "end_date", "closed"}).
			AddRow("fy-2025", int32(2025), timeToPgDate(start), timeToPgDate(end), false))
	pool.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	fy, err := NewFiscalYearRepository(pool).GetByID(context.Background(), "fy-2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, fy.Year)
	assert.True(t, fy.EndDate.Equal(end))

	_, err = NewUserRepository(pool).GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assertExpectations(t, pool)
}

func TestLedgerRepository_Aggregates(t *testing.T) {
	pool := newMockPool(t)

	pool.ExpectQuery("FROM journal_items").
		WillReturnRows(pgxmock.NewRows([]string{"total_debits", "total_credits"}).
			AddRow(num("150.00"), num("150.00")))
	pool.ExpectQuery("AS journal_debits").
		WithArgs("cash").
		WillReturnRows(pgxmock.NewRows([]string{"journal_debits", "journal_credits", "ledger_debits", "ledger_credits", "transfers_in", "transfers_out"}).
			AddRow(num("100"), num("20"), num("10"), num("5"), num("30"), num("30")))

	repo := NewLedgerRepository(pool)
	debits, credits, err := repo.JournalTotals(context.Background())
	require.NoError(t, err)
	assert.True(t, debits.Equal(credits))

	activity, err := repo.AccountActivity(context.Background(), "cash")
	require.NoError(t, err)

	cash := domain.NewAccount("cash", "1010", "Cash", domain.AccountTypeAsset, time.Now())
	assert.True(t, activity.ExpectedBalance(cash).Equal(decimal.NewFromInt(85)))
	assertExpectations(t, pool)
}

func TestLedgerRepository_PropagatesErrors(t *testing.T) {
	pool := newMockPool(t)
	boom := errors.New("connection reset")
	pool.ExpectQuery("FROM journal_items").WillReturnError(boom)

	_, _, err := NewLedgerRepository(pool).JournalTotals(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	pool := newMockPool(t)
	tx := beginTx(t, pool)
	now := time.Now()

	pool.ExpectExec("INSERT INTO outbox_events").
		WithArgs("ev-1", "je-1", domain.AggregateTypeJournalEntry, domain.EventTypeJournalEntryPosted,
			[]byte(`{"lines":2}`), pgxmock.AnyArg(), false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectQuery("FROM outbox_events\\s+WHERE published = FALSE").
		WithArgs(int32(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at", "published_at", "published"}).
			AddRow("ev-1", "je-1", domain.AggregateTypeJournalEntry, domain.EventTypeJournalEntryPosted,
				[]byte(`{"lines":2}`), timeToPgTimestamptz(now), pgtype.Timestamptz{}, false))
	pool.ExpectExec("UPDATE outbox_events SET published = TRUE").
		WithArgs("ev-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewOutboxRepository(pool)
	err := repo.Create(context.Background(), tx, &domain.OutboxEvent{
		ID:            "ev-1",
		AggregateID:   "je-1",
		AggregateType: domain.AggregateTypeJournalEntry,
		EventType:     domain.EventTypeJournalEntryPosted,
		Payload:       map[string]any{"lines": 2},
		CreatedAt:     now,
	})
	require.NoError(t, err)

	events, err := repo.GetUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].PublishedAt)
	assert.EqualValues(t, 2, events[0].Payload["lines"])

	require.NoError(t, repo.MarkPublished(context.Background(), "ev-1", now))
	assertExpectations(t, pool)
}

func TestOutboxEventFromRow_KeepsUndecodablePayload(t *testing.T) {
	event := outboxEventFromRow(generated.OutboxEvent{
		ID:      "ev-2",
		Payload: []byte(`[1,2]`),
	})
	assert.Equal(t, map[string]any{"raw": "[1,2]"}, event.Payload)

	event = outboxEventFromRow(generated.OutboxEvent{ID: "ev-3"})
	assert.Nil(t, event.Payload)
}
