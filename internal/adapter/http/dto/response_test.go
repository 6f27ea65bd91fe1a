package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:            "acc-1",
		AccountNumber: "1010",
		AccountName:   "Cash",
		Type:          domain.AccountTypeAsset,
		Balance:       decimal.RequireFromString("123.45"),
		Version:       2,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Balance.String() != "123.45" || resp.Version != 2 || resp.Type != "ASSET" {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestAccountResponse_BalanceIsJSONString(t *testing.T) {
	resp := AccountFromDomain(domain.NewAccount("a", "1010", "Cash", domain.AccountTypeAsset, time.Now()))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"balance":"0"`)
}

func TestJournalEntryFromDomain_CarriesTotals(t *testing.T) {
	entry := &domain.JournalEntry{
		ID: "je-1",
		Items: []domain.JournalItem{
			{ID: "i1", AccountID: "a", Debit: decimal.NewFromInt(70), Position: 0},
			{ID: "i2", AccountID: "b", Debit: decimal.NewFromInt(30), Position: 1},
			{ID: "i3", AccountID: "c", Credit: decimal.NewFromInt(100), Position: 2},
		},
	}

	resp := JournalEntryFromDomain(entry)
	require.Len(t, resp.Lines, 3)
	assert.True(t, resp.TotalDebits.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.TotalCredits.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, resp.Lines[2].Position)
}

func TestBalanceSheetFromDomain_IsBalanced(t *testing.T) {
	sheet := domain.NewBalanceSheet("bs-1", "fy", time.Now(),
		domain.Amount(decimal.NewFromInt(1000)),
		domain.Amount(decimal.NewFromInt(400)),
		domain.Amount(decimal.NewFromInt(600)),
		time.Now())

	resp := BalanceSheetFromDomain(sheet)
	assert.True(t, resp.IsBalanced)
	assert.Equal(t, "NEW", resp.Status)

	sheet.TotalEquity = nil
	assert.False(t, BalanceSheetFromDomain(sheet).IsBalanced)

	raw, err := json.Marshal(BalanceSheetFromDomain(sheet))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_equity":null`)
}

func TestIncomeStatementFromDomain_IsProfitable(t *testing.T) {
	statement := domain.NewIncomeStatement("is-1", "fy", time.Now(), time.Now(),
		domain.Amount(decimal.NewFromInt(500)),
		domain.Amount(decimal.NewFromInt(300)),
		domain.Amount(decimal.NewFromInt(200)),
		time.Now())

	assert.True(t, IncomeStatementFromDomain(statement).IsProfitable)

	statement.TotalExpenses = domain.Amount(decimal.NewFromInt(500))
	assert.False(t, IncomeStatementFromDomain(statement).IsProfitable)
}

func TestConsistencyFromReport(t *testing.T) {
	resp := ConsistencyFromReport(&usecase.ConsistencyReport{
		TotalDebits:  decimal.NewFromInt(10),
		TotalCredits: decimal.NewFromInt(7),
		Difference:   decimal.NewFromInt(3),
	})

	assert.Equal(t, "inconsistent", resp.Status)
	assert.False(t, resp.Consistent)
}

func TestReconciliationFromReport(t *testing.T) {
	report := &usecase.ReconciliationReport{
		TotalAccounts:      2,
		ReconciledAccounts: 1,
		Discrepancies: []*usecase.ReconciliationResult{
			{AccountID: "a", Difference: decimal.NewFromInt(5)},
		},
	}

	resp := ReconciliationFromReport(report)
	assert.Equal(t, 2, resp.TotalAccounts)
	require.Len(t, resp.Discrepancies, 1)
	assert.Equal(t, "a", resp.Discrepancies[0].AccountID)
}
