package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNetProfit(t *testing.T) {
	tests := []struct {
		name        string
		revenue     *decimal.Decimal
		expenses    *decimal.Decimal
		expected    string
		expectError error
	}{
		{name: "profit", revenue: d("1000"), expenses: d("400"), expected: "600"},
		{name: "break even", revenue: d("400"), expenses: d("400"), expected: "0"},
		{name: "expenses exceed revenue", revenue: d("100"), expenses: d("150"), expectError: ErrValidation},
		{name: "negative revenue", revenue: d("-1"), expenses: d("0"), expectError: ErrValidation},
		{name: "missing revenue", expenses: d("0"), expectError: ErrMissingField},
		{name: "missing expenses", revenue: d("10"), expectError: ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profit, err := CalculateNetProfit(tt.revenue, tt.expenses)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.True(t, profit.Equal(decimal.RequireFromString(tt.expected)), "got %s", profit)
		})
	}
}

func TestCalculateNetProfit_ExpensesExceedRevenueMessage(t *testing.T) {
	_, err := CalculateNetProfit(d("100"), d("150"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expenses must not exceed revenue")
}

func TestIncomeStatement_RoundTrip(t *testing.T) {
	pairs := [][2]string{{"1000", "400"}, {"0", "0"}, {"250.75", "250.75"}, {"99.99", "0.01"}}

	for _, p := range pairs {
		revenue, expenses := d(p[0]), d(p[1])

		profit, err := CalculateNetProfit(revenue, expenses)
		require.NoError(t, err)

		gotRevenue, err := CalculateRevenue(&profit, expenses)
		require.NoError(t, err)
		assert.True(t, gotRevenue.Equal(*revenue), "revenue %s != %s", gotRevenue, revenue)

		gotExpenses, err := CalculateExpenses(&profit, revenue)
		require.NoError(t, err)
		assert.True(t, gotExpenses.Equal(*expenses), "expenses %s != %s", gotExpenses, expenses)
	}
}

func TestCalculateRevenueAndExpensesClamp(t *testing.T) {
	revenue, err := CalculateRevenue(d("-500"), d("100"))
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())

	expenses, err := CalculateExpenses(d("500"), d("100"))
	require.NoError(t, err)
	assert.True(t, expenses.IsZero())

	_, err = CalculateRevenue(nil, d("1"))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = CalculateExpenses(d("1"), nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestIncomeStatement_IsProfitable(t *testing.T) {
	assert.True(t, (&IncomeStatement{TotalRevenue: d("10"), TotalExpenses: d("9.99")}).IsProfitable())
	assert.False(t, (&IncomeStatement{TotalRevenue: d("10"), TotalExpenses: d("10")}).IsProfitable())
	assert.False(t, (&IncomeStatement{TotalRevenue: d("10"), TotalExpenses: d("11")}).IsProfitable())
	assert.False(t, (&IncomeStatement{TotalRevenue: d("10")}).IsProfitable())
}

func TestIncomeStatement_Derive(t *testing.T) {
	s := &IncomeStatement{TotalRevenue: d("1000"), TotalExpenses: d("250")}
	require.NoError(t, s.Derive())
	assert.True(t, s.NetProfit.Equal(decimal.NewFromInt(750)))

	s = &IncomeStatement{NetProfit: d("750"), TotalExpenses: d("250")}
	require.NoError(t, s.Derive())
	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(1000)))

	s = &IncomeStatement{NetProfit: d("750"), TotalRevenue: d("1000")}
	require.NoError(t, s.Derive())
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(250)))

	s = &IncomeStatement{NetProfit: d("750")}
	assert.ErrorIs(t, s.Derive(), ErrMissingField)
}

func TestIncomeStatement_ValidateOnSave(t *testing.T) {
	now := time.Now()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	valid := NewIncomeStatement("is-1", "fy-1", start, end, d("1000"), d("400"), d("600"), now)
	assert.NoError(t, valid.ValidateOnSave())

	wrongProfit := NewIncomeStatement("is-2", "fy-1", start, end, d("1000"), d("400"), d("500"), now)
	assert.ErrorIs(t, wrongProfit.ValidateOnSave(), ErrValidation)

	overspent := NewIncomeStatement("is-3", "fy-1", start, end, d("100"), d("400"), d("0"), now)
	assert.ErrorIs(t, overspent.ValidateOnSave(), ErrValidation)

	reversed := NewIncomeStatement("is-4", "fy-1", end, start, d("1000"), d("400"), d("600"), now)
	assert.ErrorIs(t, reversed.ValidateOnSave(), ErrValidation)

	missing := NewIncomeStatement("is-5", "fy-1", start, end, d("1000"), nil, d("600"), now)
	assert.ErrorIs(t, missing.ValidateOnSave(), ErrMissingField)
}

func TestIncomeStatement_Confirm(t *testing.T) {
	now := time.Now()
	s := NewIncomeStatement("is-1", "fy-1", now, now, d("1"), d("1"), d("0"), now)

	require.NoError(t, s.Confirm(now))
	assert.Equal(t, StatementStatusConfirmed, s.Status)
	assert.ErrorIs(t, s.Confirm(now), ErrAlreadyConfirmed)
}
