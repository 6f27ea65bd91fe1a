package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

func TestTransactionUseCase_Post(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	bank := l.register(t, "1020", domain.AccountTypeAsset)
	petty := l.register(t, "1030", domain.AccountTypeAsset)

	txn, err := l.transactions.Post(ctx, usecase.PostTransactionInput{
		SourceAccountID: bank.ID,
		TargetAccountID: petty.ID,
		Amount:          dec("75"),
		TransactionType: "TRANSFER",
		UserID:          "clerk",
	})
	require.NoError(t, err)
	assert.Equal(t, "clerk", txn.UserID)
	assert.False(t, txn.TransactionDate.IsZero())

	assert.True(t, l.balance(t, bank.ID).Equal(dec("-75")))
	assert.True(t, l.balance(t, petty.ID).Equal(dec("75")))

	got, err := l.transactions.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("75")))

	for _, id := range []string{bank.ID, petty.ID} {
		listed, err := l.transactions.ListByAccount(ctx, usecase.ListByAccountInput{AccountID: id})
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	}

	events := l.pendingEvents(t)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeTransactionPosted, events[0].EventType)
}

func TestTransactionUseCase_PostRejected(t *testing.T) {
	tests := []struct {
		name        string
		input       func(a, b string) usecase.PostTransactionInput
		expectError error
	}{
		{
			name: "same account",
			input: func(a, _ string) usecase.PostTransactionInput {
				return usecase.PostTransactionInput{SourceAccountID: a, TargetAccountID: a, Amount: dec("50")}
			},
			expectError: domain.ErrSameAccount,
		},
		{
			name: "zero amount",
			input: func(a, b string) usecase.PostTransactionInput {
				return usecase.PostTransactionInput{SourceAccountID: a, TargetAccountID: b, Amount: dec("0")}
			},
			expectError: domain.ErrInvalidAmount,
		},
		{
			name: "unknown user",
			input: func(a, b string) usecase.PostTransactionInput {
				return usecase.PostTransactionInput{SourceAccountID: a, TargetAccountID: b, Amount: dec("1"), UserID: "nobody"}
			},
			expectError: domain.ErrUserNotFound,
		},
		{
			name: "inactive user",
			input: func(a, b string) usecase.PostTransactionInput {
				return usecase.PostTransactionInput{SourceAccountID: a, TargetAccountID: b, Amount: dec("1"), UserID: "former"}
			},
			expectError: domain.ErrValidation,
		},
		{
			name: "missing target",
			input: func(a, _ string) usecase.PostTransactionInput {
				return usecase.PostTransactionInput{SourceAccountID: a, TargetAccountID: "ghost", Amount: dec("1")}
			},
			expectError: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)
			a := l.register(t, "1010", domain.AccountTypeAsset)
			b := l.register(t, "1020", domain.AccountTypeAsset)

			_, err := l.transactions.Post(context.Background(), tt.input(a.ID, b.ID))
			require.ErrorIs(t, err, tt.expectError)

			assert.True(t, l.balance(t, a.ID).IsZero())
			assert.True(t, l.balance(t, b.ID).IsZero())
			assert.Empty(t, l.pendingEvents(t))
		})
	}
}

func TestTransactionUseCase_ConcurrentOppositeDirections(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	a := l.register(t, "1010", domain.AccountTypeAsset)
	b := l.register(t, "1020", domain.AccountTypeAsset)

	var wg sync.WaitGroup
	for range 25 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := l.transactions.Post(ctx, usecase.PostTransactionInput{SourceAccountID: a.ID, TargetAccountID: b.ID, Amount: dec("50")})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := l.transactions.Post(ctx, usecase.PostTransactionInput{SourceAccountID: b.ID, TargetAccountID: a.ID, Amount: dec("30")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, l.balance(t, a.ID).Equal(dec("-500")))
	assert.True(t, l.balance(t, b.ID).Equal(dec("500")))

	report, err := l.reconcile.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalAccounts)
	assert.Empty(t, report.Discrepancies)
}
