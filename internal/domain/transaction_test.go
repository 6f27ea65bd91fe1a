package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		sourceID    string
		targetID    string
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:     "valid transaction",
			sourceID: "account-1",
			targetID: "account-2",
			amount:   decimal.NewFromInt(100),
		},
		{
			name:        "same account",
			sourceID:    "account-1",
			targetID:    "account-1",
			amount:      decimal.NewFromInt(50),
			expectError: ErrSameAccount,
		},
		{
			name:        "zero amount",
			sourceID:    "account-1",
			targetID:    "account-2",
			amount:      decimal.Zero,
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			sourceID:    "account-1",
			targetID:    "account-2",
			amount:      decimal.NewFromInt(-100),
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{
				SourceAccountID: tt.sourceID,
				TargetAccountID: tt.targetID,
				Amount:          tt.amount,
			}

			err := tx.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && err != tt.expectError {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	entry := &LedgerEntry{Amount: decimal.Zero, Type: EntryTypeDebit}
	if err := entry.Validate(); err != nil {
		t.Errorf("expected zero amount to be accepted, got %v", err)
	}

	entry = &LedgerEntry{Amount: decimal.NewFromInt(-1), Type: EntryTypeCredit}
	if err := entry.Validate(); !errorIs(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	entry = &LedgerEntry{Amount: decimal.NewFromInt(1), Type: "SIDEWAYS"}
	if err := entry.Validate(); !errorIs(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	if err := ValidateLedgerAmount(nil); !errorIs(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for nil amount, got %v", err)
	}
}

func TestLedgerEntry_DeltaFor(t *testing.T) {
	asset := NewAccount("a", "1010", "Cash", AccountTypeAsset, time.Now())
	revenue := NewAccount("r", "4000", "Sales", AccountTypeRevenue, time.Now())

	debit := &LedgerEntry{Amount: decimal.NewFromInt(10), Type: EntryTypeDebit}
	credit := &LedgerEntry{Amount: decimal.NewFromInt(10), Type: EntryTypeCredit}

	if got := debit.DeltaFor(asset); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected debit to raise asset by 10, got %s", got)
	}
	if got := credit.DeltaFor(asset); !got.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("expected credit to lower asset by 10, got %s", got)
	}
	if got := credit.DeltaFor(revenue); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected credit to raise revenue by 10, got %s", got)
	}
}
