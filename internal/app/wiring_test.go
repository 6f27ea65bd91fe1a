package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/finledger/internal/adapter/repository/postgres"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

func TestMemoryWiring_PostAndCheck(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewUseCases(MemoryRepositories(store), postgresRepo.NewULIDGenerator(), nil, zerolog.Nop())

	cash, err := uc.Accounts.Register(ctx, usecase.RegisterAccountInput{AccountNumber: "1010", AccountName: "Cash", Type: domain.AccountTypeAsset})
	require.NoError(t, err)
	sales, err := uc.Accounts.Register(ctx, usecase.RegisterAccountInput{AccountNumber: "4000", AccountName: "Sales", Type: domain.AccountTypeRevenue})
	require.NoError(t, err)

	_, err = uc.Journal.PostEntry(ctx, usecase.JournalEntryInput{
		Description: "cash sale",
		Lines: []usecase.JournalLineInput{
			{AccountID: cash.ID, Debit: decimal.NewFromInt(250)},
			{AccountID: sales.ID, Credit: decimal.NewFromInt(250)},
		},
	})
	require.NoError(t, err)

	report, err := uc.Ledger.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent)

	recon, err := uc.Reconciliation.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, recon.TotalAccounts)
	assert.Empty(t, recon.Discrepancies)
}

func TestSeedReferenceData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	require.NoError(t, SeedReferenceData(ctx, store, now))

	repo := memory.NewFiscalYearRepository(store)
	for _, year := range []int{2025, 2026} {
		fy, err := repo.GetByID(ctx, FiscalYearID(year))
		require.NoError(t, err)
		assert.Equal(t, year, fy.Year)
		assert.Equal(t, time.January, fy.StartDate.Month())
	}

	_, err := repo.GetByID(ctx, FiscalYearID(2024))
	assert.ErrorIs(t, err, domain.ErrFiscalYearNotFound)

	user, err := memory.NewUserRepository(store).GetByID(ctx, SystemUserID)
	require.NoError(t, err)
	assert.NoError(t, user.CanPost())
}
