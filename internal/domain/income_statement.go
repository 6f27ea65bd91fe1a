package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IncomeStatement summarizes revenue, expenses and net profit for a period.
type IncomeStatement struct {
	ID            string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	TotalRevenue  *decimal.Decimal
	TotalExpenses *decimal.Decimal
	NetProfit     *decimal.Decimal
	FiscalYearID  string
	Confirmed     bool
	Status        StatementStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewIncomeStatement returns a statement in status NEW, unconfirmed.
func NewIncomeStatement(id, fiscalYearID string, start, end time.Time, revenue, expenses, netProfit *decimal.Decimal, now time.Time) *IncomeStatement {
	return &IncomeStatement{
		ID:            id,
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetProfit:     netProfit,
		FiscalYearID:  fiscalYearID,
		Confirmed:     false,
		Status:        StatementStatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CalculateNetProfit derives net profit from revenue and expenses.
func CalculateNetProfit(revenue, expenses *decimal.Decimal) (decimal.Decimal, error) {
	if err := requireFields(field{"total_revenue", revenue}, field{"total_expenses", expenses}); err != nil {
		return decimal.Zero, err
	}
	if revenue.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: revenue must not be negative", ErrValidation)
	}
	if expenses.GreaterThan(*revenue) {
		return decimal.Zero, fmt.Errorf("%w: expenses must not exceed revenue", ErrValidation)
	}
	return clampZero(revenue.Sub(*expenses)), nil
}

// CalculateRevenue derives revenue from net profit and expenses.
func CalculateRevenue(netProfit, expenses *decimal.Decimal) (decimal.Decimal, error) {
	if err := requireFields(field{"net_profit", netProfit}, field{"total_expenses", expenses}); err != nil {
		return decimal.Zero, err
	}
	return clampZero(netProfit.Add(*expenses)), nil
}

// CalculateExpenses derives expenses from net profit and revenue.
func CalculateExpenses(netProfit, revenue *decimal.Decimal) (decimal.Decimal, error) {
	if err := requireFields(field{"net_profit", netProfit}, field{"total_revenue", revenue}); err != nil {
		return decimal.Zero, err
	}
	return clampZero(revenue.Sub(*netProfit)), nil
}

// IsProfitable reports whether revenue minus expenses is strictly positive.
// An invalid or incomplete statement is not profitable.
func (s *IncomeStatement) IsProfitable() bool {
	profit, err := CalculateNetProfit(s.TotalRevenue, s.TotalExpenses)
	return err == nil && profit.IsPositive()
}

// Derive fills the single absent figure from the other two.
func (s *IncomeStatement) Derive() error {
	switch {
	case s.TotalRevenue != nil && s.TotalExpenses != nil && s.NetProfit != nil:
		return nil
	case s.NetProfit == nil && s.TotalRevenue != nil && s.TotalExpenses != nil:
		profit, err := CalculateNetProfit(s.TotalRevenue, s.TotalExpenses)
		if err != nil {
			return err
		}
		s.NetProfit = &profit
	case s.TotalRevenue == nil && s.NetProfit != nil && s.TotalExpenses != nil:
		revenue, err := CalculateRevenue(s.NetProfit, s.TotalExpenses)
		if err != nil {
			return err
		}
		s.TotalRevenue = &revenue
	case s.TotalExpenses == nil && s.NetProfit != nil && s.TotalRevenue != nil:
		expenses, err := CalculateExpenses(s.NetProfit, s.TotalRevenue)
		if err != nil {
			return err
		}
		s.TotalExpenses = &expenses
	default:
		return fmt.Errorf("%w: at least two of total_revenue, total_expenses, net_profit are required", ErrMissingField)
	}
	return nil
}

// ValidateOnSave is run before every create and update.
func (s *IncomeStatement) ValidateOnSave() error {
	if err := requireFields(
		field{"total_revenue", s.TotalRevenue},
		field{"total_expenses", s.TotalExpenses},
		field{"net_profit", s.NetProfit},
	); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	expected, err := CalculateNetProfit(s.TotalRevenue, s.TotalExpenses)
	if err != nil {
		return err
	}
	if !WithinEpsilon(expected, *s.NetProfit) {
		return fmt.Errorf("%w: net profit %s does not equal revenue minus expenses %s",
			ErrValidation, s.NetProfit.String(), expected.String())
	}

	if s.PeriodEnd.Before(s.PeriodStart) {
		return fmt.Errorf("%w: period end precedes period start", ErrValidation)
	}
	if s.FiscalYearID == "" {
		return fmt.Errorf("%w: %w: fiscal_year_id", ErrValidation, ErrMissingField)
	}
	return nil
}

// Confirm moves the statement from NEW to CONFIRMED. It never goes back.
func (s *IncomeStatement) Confirm(at time.Time) error {
	if s.Confirmed || s.Status == StatementStatusConfirmed {
		return ErrAlreadyConfirmed
	}
	s.Confirmed = true
	s.Status = StatementStatusConfirmed
	s.UpdatedAt = at
	return nil
}
