package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Epsilon is the largest discrepancy tolerated when comparing derived totals.
var Epsilon = decimal.RequireFromString("0.01")

// WithinEpsilon reports whether |a - b| <= Epsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// Amount returns a pointer to d, for optional statement fields.
func Amount(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(d, decimal.Zero)
}

type field struct {
	name  string
	value *decimal.Decimal
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}
