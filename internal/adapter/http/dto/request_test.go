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

func TestRegisterAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &RegisterAccountRequest{
		AccountNumber: "1010",
		AccountName:   "Cash",
		Type:          "ASSET",
	}

	got := req.ToUseCaseInput()
	want := usecase.RegisterAccountInput{
		AccountNumber: "1010",
		AccountName:   "Cash",
		Type:          domain.AccountTypeAsset,
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestJournalEntryRequest_OmittedSideIsZero(t *testing.T) {
	var req JournalEntryRequest
	body := `{"description":"rent","lines":[{"account_id":"a","debit":"100.50"},{"account_id":"b","credit":100.5}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	input := req.ToUseCaseInput()
	require.Len(t, input.Lines, 2)

	assert.True(t, input.Lines[0].Debit.Equal(decimal.RequireFromString("100.50")))
	assert.True(t, input.Lines[0].Credit.IsZero())
	assert.True(t, input.Lines[1].Debit.IsZero())
	assert.True(t, input.Lines[1].Credit.Equal(decimal.RequireFromString("100.5")))
	assert.Nil(t, input.EntryDate)
	assert.Equal(t, "rent", input.Description)
}

func TestLedgerEntryRequest_MissingAmountStaysNil(t *testing.T) {
	var req LedgerEntryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"account_id":"a","type":"DEBIT"}`), &req))

	input := req.ToUseCaseInput()
	assert.Nil(t, input.Amount)
	assert.Equal(t, domain.EntryTypeDebit, input.Type)
}

func TestPostTransactionRequest_ToUseCaseInput(t *testing.T) {
	when := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := &PostTransactionRequest{
		SourceAccountID: "a",
		TargetAccountID: "b",
		Amount:          decimal.NewFromInt(25),
		TransactionType: "PAYMENT",
		UserID:          "u1",
		TransactionDate: &when,
	}

	input := req.ToUseCaseInput()
	assert.Equal(t, "a", input.SourceAccountID)
	assert.Equal(t, "b", input.TargetAccountID)
	assert.True(t, input.Amount.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "PAYMENT", input.TransactionType)
	assert.Equal(t, "u1", input.UserID)
	assert.Equal(t, &when, input.TransactionDate)
}

func TestBalanceSheetRequest_AbsentTotalIsNil(t *testing.T) {
	var req BalanceSheetRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fiscal_year_id":"fy","total_assets":"1000","total_liabilities":"400"}`), &req))

	input := req.ToUseCaseInput()
	require.NotNil(t, input.TotalAssets)
	require.NotNil(t, input.TotalLiabilities)
	assert.Nil(t, input.TotalEquity)
	assert.Equal(t, "fy", input.FiscalYearID)
}

func TestIncomeStatementRequest_ToUseCaseInput(t *testing.T) {
	var req IncomeStatementRequest
	body := `{"fiscal_year_id":"fy","total_revenue":"500","net_profit":"200","period_start":"2026-01-01T00:00:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	input := req.ToUseCaseInput()
	require.NotNil(t, input.PeriodStart)
	assert.Nil(t, input.PeriodEnd)
	assert.Nil(t, input.TotalExpenses)
	assert.True(t, input.NetProfit.Equal(decimal.NewFromInt(200)))
}
