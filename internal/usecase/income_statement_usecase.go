package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// IncomeStatementUseCase stores income statements whose net profit matches
// revenue minus expenses.
type IncomeStatementUseCase struct {
	txManager      TxManager
	retrier        Retrier
	statementRepo  IncomeStatementRepository
	fiscalYearRepo FiscalYearRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	metrics        Metrics
	logger         zerolog.Logger
}

// NewIncomeStatementUseCase creates a new IncomeStatementUseCase.
func NewIncomeStatementUseCase(
	txManager TxManager,
	retrier Retrier,
	statementRepo IncomeStatementRepository,
	fiscalYearRepo FiscalYearRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics Metrics,
	logger zerolog.Logger,
) *IncomeStatementUseCase {
	return &IncomeStatementUseCase{
		txManager:      txManager,
		retrier:        retrier,
		statementRepo:  statementRepo,
		fiscalYearRepo: fiscalYearRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		metrics:        metrics,
		logger:         logger.With().Str("component", "income_statement").Logger(),
	}
}

// IncomeStatementInput carries the figures; any single figure may be nil and
// is then derived from the other two. A nil period defaults to the fiscal year.
type IncomeStatementInput struct {
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	FiscalYearID  string
	TotalRevenue  *decimal.Decimal
	TotalExpenses *decimal.Decimal
	NetProfit     *decimal.Decimal
}

// Derive computes the missing figure without persisting anything.
func (uc *IncomeStatementUseCase) Derive(input IncomeStatementInput) (*domain.IncomeStatement, error) {
	now := time.Now().UTC()

	statement := domain.NewIncomeStatement("", input.FiscalYearID,
		entryDate(input.PeriodStart, now), entryDate(input.PeriodEnd, now),
		input.TotalRevenue, input.TotalExpenses, input.NetProfit, now)

	if err := statement.Derive(); err != nil {
		return nil, err
	}

	return statement, nil
}

// Create derives a missing figure, validates and stores the statement in status NEW.
func (uc *IncomeStatementUseCase) Create(ctx context.Context, input IncomeStatementInput) (*domain.IncomeStatement, error) {
	fiscalYear, err := uc.fiscalYear(ctx, input.FiscalYearID)
	if err != nil {
		uc.metrics.PostingRejected(OpIncomeStatementSave, err)
		return nil, err
	}

	now := time.Now().UTC()
	start, end := period(input, fiscalYear)

	statement := domain.NewIncomeStatement(uc.idGen.Generate(), input.FiscalYearID, start, end,
		input.TotalRevenue, input.TotalExpenses, input.NetProfit, now)

	if err := deriveAndValidate(statement.Derive, statement.ValidateOnSave); err != nil {
		uc.metrics.PostingRejected(OpIncomeStatementSave, err)
		return nil, err
	}

	if err := uc.statementRepo.Create(ctx, statement); err != nil {
		return nil, err
	}

	uc.metrics.PostingCompleted(OpIncomeStatementSave)

	return statement, nil
}

// Update replaces the figures of a statement that is not yet confirmed.
func (uc *IncomeStatementUseCase) Update(ctx context.Context, id string, input IncomeStatementInput) (*domain.IncomeStatement, error) {
	fiscalYear, err := uc.fiscalYear(ctx, input.FiscalYearID)
	if err != nil {
		uc.metrics.PostingRejected(OpIncomeStatementSave, err)
		return nil, err
	}

	now := time.Now().UTC()

	var updated *domain.IncomeStatement

	err = runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		statement, err := uc.statementRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if statement.Confirmed {
			return domain.ErrAlreadyConfirmed
		}

		statement.FiscalYearID = input.FiscalYearID
		statement.PeriodStart, statement.PeriodEnd = period(input, fiscalYear)
		statement.TotalRevenue = input.TotalRevenue
		statement.TotalExpenses = input.TotalExpenses
		statement.NetProfit = input.NetProfit
		statement.UpdatedAt = now

		if err := deriveAndValidate(statement.Derive, statement.ValidateOnSave); err != nil {
			return err
		}

		if err := uc.statementRepo.Update(ctx, tx, statement); err != nil {
			return err
		}

		updated = statement

		return nil
	})
	if err != nil {
		uc.metrics.PostingRejected(OpIncomeStatementSave, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpIncomeStatementSave)

	return updated, nil
}

// Get retrieves an income statement by ID.
func (uc *IncomeStatementUseCase) Get(ctx context.Context, id string) (*domain.IncomeStatement, error) {
	return uc.statementRepo.GetByID(ctx, id)
}

// ListByFiscalYear lists the income statements of a fiscal year.
func (uc *IncomeStatementUseCase) ListByFiscalYear(ctx context.Context, input ListByFiscalYearInput) ([]*domain.IncomeStatement, error) {
	if _, err := uc.fiscalYear(ctx, input.FiscalYearID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.statementRepo.ListByFiscalYear(ctx, input.FiscalYearID, limit, offset)
}

// Confirm moves a valid statement from NEW to CONFIRMED.
func (uc *IncomeStatementUseCase) Confirm(ctx context.Context, id string) (*domain.IncomeStatement, error) {
	now := time.Now().UTC()

	var confirmed *domain.IncomeStatement

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		statement, err := uc.statementRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := statement.ValidateOnSave(); err != nil {
			return err
		}

		if err := statement.Confirm(now); err != nil {
			return err
		}

		if err := uc.statementRepo.Update(ctx, tx, statement); err != nil {
			return err
		}

		confirmed = statement

		return uc.outboxRepo.Create(ctx, tx, newOutboxEvent(uc.idGen.Generate(), statement.ID,
			domain.AggregateTypeIncomeStatement, domain.EventTypeIncomeStatementConfirmed,
			domain.StatementConfirmedEvent{StatementID: statement.ID, FiscalYearID: statement.FiscalYearID}, now))
	})
	if err != nil {
		uc.metrics.PostingRejected(OpIncomeStatementConfirm, err)
		return nil, err
	}

	uc.logger.Debug().Str("income_statement_id", id).Msg("income statement confirmed")
	uc.metrics.PostingCompleted(OpIncomeStatementConfirm)

	return confirmed, nil
}

func (uc *IncomeStatementUseCase) fiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error) {
	if id == "" {
		return nil, requiredFiscalYear()
	}
	return uc.fiscalYearRepo.GetByID(ctx, id)
}

func period(input IncomeStatementInput, fiscalYear *domain.FiscalYear) (time.Time, time.Time) {
	start, end := fiscalYear.StartDate, fiscalYear.EndDate
	if input.PeriodStart != nil {
		start = *input.PeriodStart
	}
	if input.PeriodEnd != nil {
		end = *input.PeriodEnd
	}
	return start, end
}
