package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/finledger/internal/adapter/repository/memory"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name         string
		debits       decimal.Decimal
		credits      decimal.Decimal
		repoErr      error
		want         bool
		expectedErr  error
		expectReport bool
	}{
		{
			name:         "balanced ledger",
			debits:       decimal.NewFromInt(100),
			credits:      decimal.NewFromInt(100),
			want:         true,
			expectReport: true,
		},
		{
			name:        "repo error surfaces",
			repoErr:     errors.New("db down"),
			expectedErr: errors.New("db down"),
		},
		{
			name:         "debits exceed credits",
			debits:       decimal.NewFromInt(101),
			credits:      decimal.NewFromInt(100),
			expectedErr:  domain.ErrInconsistentLedger,
			expectReport: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockLedgerRepository(ctrl)
			repo.EXPECT().JournalTotals(gomock.Any()).Return(tt.debits, tt.credits, tt.repoErr)

			report, err := usecase.NewLedgerUseCase(repo).CheckConsistency(context.Background())

			switch {
			case errors.Is(tt.expectedErr, domain.ErrInconsistentLedger):
				require.ErrorIs(t, err, domain.ErrInconsistentLedger)
			case tt.expectedErr != nil:
				require.EqualError(t, err, tt.expectedErr.Error())
			default:
				require.NoError(t, err)
			}

			if !tt.expectReport {
				assert.Nil(t, report)
				return
			}
			require.NotNil(t, report)
			assert.Equal(t, tt.want, report.Consistent)
			assert.True(t, report.Difference.Equal(tt.debits.Sub(tt.credits)))
		})
	}
}

func TestReconciliationUseCase_DetectsTamperedBalance(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	cash := l.register(t, "1010", domain.AccountTypeAsset)
	sales := l.register(t, "4010", domain.AccountTypeRevenue)

	_, err := l.journal.PostEntry(ctx, usecase.JournalEntryInput{
		Lines: []usecase.JournalLineInput{debit(cash.ID, "100"), credit(sales.ID, "100")},
	})
	require.NoError(t, err)
	_, err = l.entries.Record(ctx, usecase.LedgerEntryInput{AccountID: cash.ID, Amount: ptr("5"), Type: domain.EntryTypeCredit})
	require.NoError(t, err)

	result, err := l.reconcile.ReconcileAccount(ctx, cash.ID)
	require.NoError(t, err)
	assert.True(t, result.IsReconciled)
	assert.True(t, result.CalculatedBalance.Equal(dec("95")))

	tx, err := memory.NewTxManager(l.store).Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, l.accountRepo.UpdateBalance(ctx, tx, sales.ID, dec("1"), 99, time.Now()))
	require.NoError(t, tx.Commit(ctx))

	report, err := l.reconcile.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalAccounts)
	assert.Equal(t, 1, report.ReconciledAccounts)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, sales.ID, report.Discrepancies[0].AccountID)
	assert.True(t, report.Discrepancies[0].Difference.Equal(dec("-99")))

	_, err = l.reconcile.ReconcileAccount(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
