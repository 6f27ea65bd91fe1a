package postgres

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
	"github.com/iho/finledger/internal/usecase"
)

// BalanceSheetRepository implements usecase.BalanceSheetRepository.
// Missing totals are stored as NULL.
type BalanceSheetRepository struct {
	queries *generated.Queries
}

// NewBalanceSheetRepository creates a new BalanceSheetRepository.
func NewBalanceSheetRepository(db generated.DBTX) *BalanceSheetRepository {
	return &BalanceSheetRepository{queries: generated.New(db)}
}

func (r *BalanceSheetRepository) Create(ctx context.Context, sheet *domain.BalanceSheet) error {
	return r.queries.CreateBalanceSheet(ctx, generated.CreateBalanceSheetParams{
		ID:               sheet.ID,
		Date:             timeToPgDate(sheet.Date),
		TotalAssets:      decimalPtrToNumeric(sheet.TotalAssets),
		TotalLiabilities: decimalPtrToNumeric(sheet.TotalLiabilities),
		TotalEquity:      decimalPtrToNumeric(sheet.TotalEquity),
		FiscalYearID:     sheet.FiscalYearID,
		Confirmed:        sheet.Confirmed,
		Status:           string(sheet.Status),
		CreatedAt:        timeToPgTimestamptz(sheet.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(sheet.UpdatedAt),
	})
}

func (r *BalanceSheetRepository) GetByID(ctx context.Context, id string) (*domain.BalanceSheet, error) {
	row, err := r.queries.GetBalanceSheetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrBalanceSheetNotFound)
	}

	return rowToBalanceSheet(row), nil
}

func (r *BalanceSheetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.BalanceSheet, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetBalanceSheetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrBalanceSheetNotFound)
	}

	return rowToBalanceSheet(row), nil
}

func (r *BalanceSheetRepository) Update(ctx context.Context, tx usecase.Tx, sheet *domain.BalanceSheet) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateBalanceSheet(ctx, generated.UpdateBalanceSheetParams{
		ID:               sheet.ID,
		Date:             timeToPgDate(sheet.Date),
		TotalAssets:      decimalPtrToNumeric(sheet.TotalAssets),
		TotalLiabilities: decimalPtrToNumeric(sheet.TotalLiabilities),
		TotalEquity:      decimalPtrToNumeric(sheet.TotalEquity),
		FiscalYearID:     sheet.FiscalYearID,
		Confirmed:        sheet.Confirmed,
		Status:           string(sheet.Status),
		UpdatedAt:        timeToPgTimestamptz(sheet.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBalanceSheetNotFound
	}

	return nil
}

func (r *BalanceSheetRepository) ListByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]*domain.BalanceSheet, error) {
	rows, err := r.queries.ListBalanceSheetsByFiscalYear(ctx, generated.ListBalanceSheetsByFiscalYearParams{
		FiscalYearID: fiscalYearID,
		Limit:        int32(limit),
		Offset:       int32(offset),
	})
	if err != nil {
		return nil, err
	}

	sheets := make([]*domain.BalanceSheet, 0, len(rows))
	for _, row := range rows {
		sheets = append(sheets, rowToBalanceSheet(row))
	}

	return sheets, nil
}

func rowToBalanceSheet(row generated.BalanceSheet) *domain.BalanceSheet {
	return &domain.BalanceSheet{
		ID:               row.ID,
		Date:             pgDateToTime(row.Date),
		TotalAssets:      numericToDecimalPtr(row.TotalAssets),
		TotalLiabilities: numericToDecimalPtr(row.TotalLiabilities),
		TotalEquity:      numericToDecimalPtr(row.TotalEquity),
		FiscalYearID:     row.FiscalYearID,
		Confirmed:        row.Confirmed,
		Status:           domain.StatementStatus(row.Status),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

// IncomeStatementRepository implements usecase.IncomeStatementRepository.
type IncomeStatementRepository struct {
	queries *generated.Queries
}

// NewIncomeStatementRepository creates a new IncomeStatementRepository.
func NewIncomeStatementRepository(db generated.DBTX) *IncomeStatementRepository {
	return &IncomeStatementRepository{queries: generated.New(db)}
}

func (r *IncomeStatementRepository) Create(ctx context.Context, statement *domain.IncomeStatement) error {
	return r.queries.CreateIncomeStatement(ctx, generated.CreateIncomeStatementParams{
		ID:            statement.ID,
		PeriodStart:   timeToPgDate(statement.PeriodStart),
		PeriodEnd:     timeToPgDate(statement.PeriodEnd),
		TotalRevenue:  decimalPtrToNumeric(statement.TotalRevenue),
		TotalExpenses: decimalPtrToNumeric(statement.TotalExpenses),
		NetProfit:     decimalPtrToNumeric(statement.NetProfit),
		FiscalYearID:  statement.FiscalYearID,
		Confirmed:     statement.Confirmed,
		Status:        string(statement.Status),
		CreatedAt:     timeToPgTimestamptz(statement.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(statement.UpdatedAt),
	})
}

func (r *IncomeStatementRepository) GetByID(ctx context.Context, id string) (*domain.IncomeStatement, error) {
	row, err := r.queries.GetIncomeStatementByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrIncomeStatementNotFound)
	}

	return rowToIncomeStatement(row), nil
}

func (r *IncomeStatementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.IncomeStatement, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetIncomeStatementByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrIncomeStatementNotFound)
	}

	return rowToIncomeStatement(row), nil
}

func (r *IncomeStatementRepository) Update(ctx context.Context, tx usecase.Tx, statement *domain.IncomeStatement) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateIncomeStatement(ctx, generated.UpdateIncomeStatementParams{
		ID:            statement.ID,
		PeriodStart:   timeToPgDate(statement.PeriodStart),
		PeriodEnd:     timeToPgDate(statement.PeriodEnd),
		TotalRevenue:  decimalPtrToNumeric(statement.TotalRevenue),
		TotalExpenses: decimalPtrToNumeric(statement.TotalExpenses),
		NetProfit:     decimalPtrToNumeric(statement.NetProfit),
		FiscalYearID:  statement.FiscalYearID,
		Confirmed:     statement.Confirmed,
		Status:        string(statement.Status),
		UpdatedAt:     timeToPgTimestamptz(statement.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrIncomeStatementNotFound
	}

	return nil
}

func (r *IncomeStatementRepository) ListByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]*domain.IncomeStatement, error) {
	rows, err := r.queries.ListIncomeStatementsByFiscalYear(ctx, generated.ListIncomeStatementsByFiscalYearParams{
		FiscalYearID: fiscalYearID,
		Limit:        int32(limit),
		Offset:       int32(offset),
	})
	if err != nil {
		return nil, err
	}

	statements := make([]*domain.IncomeStatement, 0, len(rows))
	for _, row := range rows {
		statements = append(statements, rowToIncomeStatement(row))
	}

	return statements, nil
}

func rowToIncomeStatement(row generated.IncomeStatement) *domain.IncomeStatement {
	return &domain.IncomeStatement{
		ID:            row.ID,
		PeriodStart:   pgDateToTime(row.PeriodStart),
		PeriodEnd:     pgDateToTime(row.PeriodEnd),
		TotalRevenue:  numericToDecimalPtr(row.TotalRevenue),
		TotalExpenses: numericToDecimalPtr(row.TotalExpenses),
		NetProfit:     numericToDecimalPtr(row.NetProfit),
		FiscalYearID:  row.FiscalYearID,
		Confirmed:     row.Confirmed,
		Status:        domain.StatementStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
