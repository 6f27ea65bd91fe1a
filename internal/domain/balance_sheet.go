package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSheet captures totals whose relation must satisfy
// Assets = Liabilities + Equity.
type BalanceSheet struct {
	ID               string
	Date             time.Time
	TotalAssets      *decimal.Decimal
	TotalLiabilities *decimal.Decimal
	TotalEquity      *decimal.Decimal
	FiscalYearID     string
	Confirmed        bool
	Status           StatementStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBalanceSheet returns a sheet in status NEW, unconfirmed.
func NewBalanceSheet(id, fiscalYearID string, date time.Time, assets, liabilities, equity *decimal.Decimal, now time.Time) *BalanceSheet {
	return &BalanceSheet{
		ID:               id,
		Date:             date,
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		FiscalYearID:     fiscalYearID,
		Confirmed:        false,
		Status:           StatementStatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// CalculateEquity derives equity from assets and liabilities.
func CalculateEquity(assets, liabilities *decimal.Decimal) (decimal.Decimal, error) {
	if err := requireFields(field{"total_assets", assets}, field{"total_liabilities", liabilities}); err != nil {
		return decimal.Zero, err
	}
	if liabilities.GreaterThan(*assets) {
		return decimal.Zero, fmt.Errorf("%w: liabilities %s, assets %s", ErrInsolvent, liabilities.String(), assets.String())
	}
	return clampZero(assets.Sub(*liabilities)), nil
}

// CalculateLiabilities derives liabilities from assets and equity.
func CalculateLiabilities(assets, equity *decimal.Decimal) (decimal.Decimal, error) {
	if err := requireFields(field{"total_assets", assets}, field{"total_equity", equity}); err != nil {
		return decimal.Zero, err
	}
	return clampZero(assets.Sub(*equity)), nil
}

// CalculateAssets derives assets from liabilities and equity.
func CalculateAssets(liabilities, equity *decimal.Decimal) (decimal.Decimal, error) {
	if err := requireFields(field{"total_liabilities", liabilities}, field{"total_equity", equity}); err != nil {
		return decimal.Zero, err
	}
	return liabilities.Add(*equity), nil
}

// IsBalanced reports whether |assets - (liabilities + equity)| <= Epsilon.
func IsBalanced(assets, liabilities, equity *decimal.Decimal) (bool, error) {
	if err := requireFields(
		field{"total_assets", assets},
		field{"total_liabilities", liabilities},
		field{"total_equity", equity},
	); err != nil {
		return false, err
	}
	return WithinEpsilon(*assets, liabilities.Add(*equity)), nil
}

// IsBalanced reports whether the sheet satisfies the accounting identity.
// A sheet with a missing total is never balanced.
func (b *BalanceSheet) IsBalanced() bool {
	ok, err := IsBalanced(b.TotalAssets, b.TotalLiabilities, b.TotalEquity)
	return err == nil && ok
}

// Derive fills the single absent total from the other two.
// It does nothing when all three are present.
func (b *BalanceSheet) Derive() error {
	switch {
	case b.TotalAssets != nil && b.TotalLiabilities != nil && b.TotalEquity != nil:
		return nil
	case b.TotalEquity == nil && b.TotalAssets != nil && b.TotalLiabilities != nil:
		equity, err := CalculateEquity(b.TotalAssets, b.TotalLiabilities)
		if err != nil {
			return err
		}
		b.TotalEquity = &equity
	case b.TotalLiabilities == nil && b.TotalAssets != nil && b.TotalEquity != nil:
		liabilities, err := CalculateLiabilities(b.TotalAssets, b.TotalEquity)
		if err != nil {
			return err
		}
		b.TotalLiabilities = &liabilities
	case b.TotalAssets == nil && b.TotalLiabilities != nil && b.TotalEquity != nil:
		assets, err := CalculateAssets(b.TotalLiabilities, b.TotalEquity)
		if err != nil {
			return err
		}
		b.TotalAssets = &assets
	default:
		return fmt.Errorf("%w: at least two of total_assets, total_liabilities, total_equity are required", ErrMissingField)
	}
	return nil
}

// ValidateOnSave is run before every create and update. Every total must be
// present and the full identity must hold within Epsilon.
func (b *BalanceSheet) ValidateOnSave() error {
	balanced, err := IsBalanced(b.TotalAssets, b.TotalLiabilities, b.TotalEquity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !balanced {
		return fmt.Errorf("%w: %w: assets %s, liabilities %s, equity %s",
			ErrValidation, ErrUnbalancedSheet,
			b.TotalAssets.String(), b.TotalLiabilities.String(), b.TotalEquity.String())
	}
	if b.FiscalYearID == "" {
		return fmt.Errorf("%w: %w: fiscal_year_id", ErrValidation, ErrMissingField)
	}
	return nil
}

// ValidateOnLoad checks a persisted sheet. The result is informational:
// callers log it and still return the sheet.
func (b *BalanceSheet) ValidateOnLoad() error {
	balanced, err := IsBalanced(b.TotalAssets, b.TotalLiabilities, b.TotalEquity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnbalancedSheet, err)
	}
	if !balanced {
		return fmt.Errorf("%w: assets %s, liabilities %s, equity %s", ErrUnbalancedSheet,
			b.TotalAssets.String(), b.TotalLiabilities.String(), b.TotalEquity.String())
	}
	return nil
}

// Confirm moves the sheet from NEW to CONFIRMED. It never goes back.
func (b *BalanceSheet) Confirm(at time.Time) error {
	if b.Confirmed || b.Status == StatementStatusConfirmed {
		return ErrAlreadyConfirmed
	}
	b.Confirmed = true
	b.Status = StatementStatusConfirmed
	b.UpdatedAt = at
	return nil
}
