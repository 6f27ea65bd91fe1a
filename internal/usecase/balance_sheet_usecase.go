package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// BalanceSheetUseCase stores balance sheets that satisfy the accounting identity.
type BalanceSheetUseCase struct {
	txManager      TxManager
	retrier        Retrier
	sheetRepo      BalanceSheetRepository
	fiscalYearRepo FiscalYearRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	metrics        Metrics
	logger         zerolog.Logger
}

// NewBalanceSheetUseCase creates a new BalanceSheetUseCase.
func NewBalanceSheetUseCase(
	txManager TxManager,
	retrier Retrier,
	sheetRepo BalanceSheetRepository,
	fiscalYearRepo FiscalYearRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics Metrics,
	logger zerolog.Logger,
) *BalanceSheetUseCase {
	return &BalanceSheetUseCase{
		txManager:      txManager,
		retrier:        retrier,
		sheetRepo:      sheetRepo,
		fiscalYearRepo: fiscalYearRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		metrics:        metrics,
		logger:         logger.With().Str("component", "balance_sheet").Logger(),
	}
}

// BalanceSheetInput carries the totals; any single total may be nil and is
// then derived from the other two.
type BalanceSheetInput struct {
	Date             *time.Time
	FiscalYearID     string
	TotalAssets      *decimal.Decimal
	TotalLiabilities *decimal.Decimal
	TotalEquity      *decimal.Decimal
}

// Derive computes the missing total without persisting anything.
func (uc *BalanceSheetUseCase) Derive(input BalanceSheetInput) (*domain.BalanceSheet, error) {
	now := time.Now().UTC()

	sheet := domain.NewBalanceSheet("", input.FiscalYearID, entryDate(input.Date, now),
		input.TotalAssets, input.TotalLiabilities, input.TotalEquity, now)

	if err := sheet.Derive(); err != nil {
		return nil, err
	}

	return sheet, nil
}

// Create derives a missing total, validates the identity and stores the sheet in status NEW.
func (uc *BalanceSheetUseCase) Create(ctx context.Context, input BalanceSheetInput) (*domain.BalanceSheet, error) {
	if _, err := uc.fiscalYear(ctx, input.FiscalYearID); err != nil {
		uc.metrics.PostingRejected(OpBalanceSheetSave, err)
		return nil, err
	}

	now := time.Now().UTC()

	sheet := domain.NewBalanceSheet(uc.idGen.Generate(), input.FiscalYearID, entryDate(input.Date, now),
		input.TotalAssets, input.TotalLiabilities, input.TotalEquity, now)

	if err := deriveAndValidate(sheet.Derive, sheet.ValidateOnSave); err != nil {
		uc.metrics.PostingRejected(OpBalanceSheetSave, err)
		return nil, err
	}

	if err := uc.sheetRepo.Create(ctx, sheet); err != nil {
		return nil, err
	}

	uc.metrics.PostingCompleted(OpBalanceSheetSave)

	return sheet, nil
}

// Update replaces the totals of a sheet that is not yet confirmed.
func (uc *BalanceSheetUseCase) Update(ctx context.Context, id string, input BalanceSheetInput) (*domain.BalanceSheet, error) {
	if _, err := uc.fiscalYear(ctx, input.FiscalYearID); err != nil {
		uc.metrics.PostingRejected(OpBalanceSheetSave, err)
		return nil, err
	}

	now := time.Now().UTC()

	var updated *domain.BalanceSheet

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		sheet, err := uc.sheetRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if sheet.Confirmed {
			return domain.ErrAlreadyConfirmed
		}

		sheet.FiscalYearID = input.FiscalYearID
		sheet.TotalAssets = input.TotalAssets
		sheet.TotalLiabilities = input.TotalLiabilities
		sheet.TotalEquity = input.TotalEquity
		if input.Date != nil {
			sheet.Date = *input.Date
		}
		sheet.UpdatedAt = now

		if err := deriveAndValidate(sheet.Derive, sheet.ValidateOnSave); err != nil {
			return err
		}

		if err := uc.sheetRepo.Update(ctx, tx, sheet); err != nil {
			return err
		}

		updated = sheet

		return nil
	})
	if err != nil {
		uc.metrics.PostingRejected(OpBalanceSheetSave, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpBalanceSheetSave)

	return updated, nil
}

// Get retrieves a sheet. A stored sheet that no longer balances is logged
// and returned anyway.
func (uc *BalanceSheetUseCase) Get(ctx context.Context, id string) (*domain.BalanceSheet, error) {
	sheet, err := uc.sheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.checkOnLoad(sheet)

	return sheet, nil
}

// ListByFiscalYearInput represents input for listing statements of a fiscal year.
type ListByFiscalYearInput struct {
	FiscalYearID string
	Limit        int
	Offset       int
}

// ListByFiscalYear lists the sheets of a fiscal year.
func (uc *BalanceSheetUseCase) ListByFiscalYear(ctx context.Context, input ListByFiscalYearInput) ([]*domain.BalanceSheet, error) {
	if _, err := uc.fiscalYear(ctx, input.FiscalYearID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	sheets, err := uc.sheetRepo.ListByFiscalYear(ctx, input.FiscalYearID, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, sheet := range sheets {
		uc.checkOnLoad(sheet)
	}

	return sheets, nil
}

// Confirm moves a valid sheet from NEW to CONFIRMED.
func (uc *BalanceSheetUseCase) Confirm(ctx context.Context, id string) (*domain.BalanceSheet, error) {
	now := time.Now().UTC()

	var confirmed *domain.BalanceSheet

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		sheet, err := uc.sheetRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := sheet.ValidateOnSave(); err != nil {
			return err
		}

		if err := sheet.Confirm(now); err != nil {
			return err
		}

		if err := uc.sheetRepo.Update(ctx, tx, sheet); err != nil {
			return err
		}

		confirmed = sheet

		return uc.outboxRepo.Create(ctx, tx, newOutboxEvent(uc.idGen.Generate(), sheet.ID,
			domain.AggregateTypeBalanceSheet, domain.EventTypeBalanceSheetConfirmed,
			domain.StatementConfirmedEvent{StatementID: sheet.ID, FiscalYearID: sheet.FiscalYearID}, now))
	})
	if err != nil {
		uc.metrics.PostingRejected(OpBalanceSheetConfirm, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpBalanceSheetConfirm)

	return confirmed, nil
}

func (uc *BalanceSheetUseCase) fiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error) {
	if id == "" {
		return nil, requiredFiscalYear()
	}
	return uc.fiscalYearRepo.GetByID(ctx, id)
}

func (uc *BalanceSheetUseCase) checkOnLoad(sheet *domain.BalanceSheet) {
	if err := sheet.ValidateOnLoad(); err != nil {
		uc.metrics.IntegrityWarning(domain.AggregateTypeBalanceSheet)
		uc.logger.Warn().
			Err(err).
			Str("balance_sheet_id", sheet.ID).
			Str("assets", decimalString(sheet.TotalAssets)).
			Str("liabilities", decimalString(sheet.TotalLiabilities)).
			Str("equity", decimalString(sheet.TotalEquity)).
			Msg("stored balance sheet is not balanced")
	}
}

// deriveAndValidate runs the derivation and then the save check. A derivation
// failure caused by missing input is reported as a validation error.
func deriveAndValidate(derive, validate func() error) error {
	if err := derive(); err != nil {
		if errors.Is(err, domain.ErrMissingField) && !errors.Is(err, domain.ErrValidation) {
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return err
	}
	return validate()
}

func requiredFiscalYear() error {
	return fmt.Errorf("%w: %w: fiscal_year_id", domain.ErrValidation, domain.ErrMissingField)
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}
