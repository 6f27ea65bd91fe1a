package memory

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// BalanceSheetRepository implements usecase.BalanceSheetRepository.
type BalanceSheetRepository struct {
	store *Store
}

// NewBalanceSheetRepository creates a new BalanceSheetRepository.
func NewBalanceSheetRepository(store *Store) *BalanceSheetRepository {
	return &BalanceSheetRepository{store: store}
}

func (r *BalanceSheetRepository) Create(ctx context.Context, sheet *domain.BalanceSheet) error {
	return r.store.withLock(ctx, func() error {
		r.store.balanceSheets[sheet.ID] = cloneSheet(*sheet)
		r.store.nextOrder(sheet.ID)
		return nil
	})
}

func (r *BalanceSheetRepository) GetByID(ctx context.Context, id string) (*domain.BalanceSheet, error) {
	var out *domain.BalanceSheet
	err := r.store.withLock(ctx, func() error {
		sheet, ok := r.store.balanceSheets[id]
		if !ok {
			return domain.ErrBalanceSheetNotFound
		}
		c := cloneSheet(sheet)
		out = &c
		return nil
	})
	return out, err
}

func (r *BalanceSheetRepository) GetByIDForUpdate(_ context.Context, tx usecase.Tx, id string) (*domain.BalanceSheet, error) {
	if _, err := openTx(tx); err != nil {
		return nil, err
	}

	sheet, ok := r.store.balanceSheets[id]
	if !ok {
		return nil, domain.ErrBalanceSheetNotFound
	}
	c := cloneSheet(sheet)
	return &c, nil
}

func (r *BalanceSheetRepository) Update(_ context.Context, tx usecase.Tx, sheet *domain.BalanceSheet) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	if _, ok := r.store.balanceSheets[sheet.ID]; !ok {
		return domain.ErrBalanceSheetNotFound
	}
	put(t, r.store.balanceSheets, sheet.ID, cloneSheet(*sheet))

	return nil
}

func (r *BalanceSheetRepository) ListByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]*domain.BalanceSheet, error) {
	var out []*domain.BalanceSheet
	err := r.store.withLock(ctx, func() error {
		ids := sortedByOrder(r.store, r.store.balanceSheets, func(s domain.BalanceSheet) bool {
			return s.FiscalYearID == fiscalYearID
		}, false)
		for _, id := range page(ids, limit, offset) {
			c := cloneSheet(r.store.balanceSheets[id])
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// IncomeStatementRepository implements usecase.IncomeStatementRepository.
type IncomeStatementRepository struct {
	store *Store
}

// NewIncomeStatementRepository creates a new IncomeStatementRepository.
func NewIncomeStatementRepository(store *Store) *IncomeStatementRepository {
	return &IncomeStatementRepository{store: store}
}

func (r *IncomeStatementRepository) Create(ctx context.Context, statement *domain.IncomeStatement) error {
	return r.store.withLock(ctx, func() error {
		r.store.incomeStatements[statement.ID] = cloneStatement(*statement)
		r.store.nextOrder(statement.ID)
		return nil
	})
}

func (r *IncomeStatementRepository) GetByID(ctx context.Context, id string) (*domain.IncomeStatement, error) {
	var out *domain.IncomeStatement
	err := r.store.withLock(ctx, func() error {
		statement, ok := r.store.incomeStatements[id]
		if !ok {
			return domain.ErrIncomeStatementNotFound
		}
		c := cloneStatement(statement)
		out = &c
		return nil
	})
	return out, err
}

func (r *IncomeStatementRepository) GetByIDForUpdate(_ context.Context, tx usecase.Tx, id string) (*domain.IncomeStatement, error) {
	if _, err := openTx(tx); err != nil {
		return nil, err
	}

	statement, ok := r.store.incomeStatements[id]
	if !ok {
		return nil, domain.ErrIncomeStatementNotFound
	}
	c := cloneStatement(statement)
	return &c, nil
}

func (r *IncomeStatementRepository) Update(_ context.Context, tx usecase.Tx, statement *domain.IncomeStatement) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	if _, ok := r.store.incomeStatements[statement.ID]; !ok {
		return domain.ErrIncomeStatementNotFound
	}
	put(t, r.store.incomeStatements, statement.ID, cloneStatement(*statement))

	return nil
}

func (r *IncomeStatementRepository) ListByFiscalYear(ctx context.Context, fiscalYearID string, limit, offset int) ([]*domain.IncomeStatement, error) {
	var out []*domain.IncomeStatement
	err := r.store.withLock(ctx, func() error {
		ids := sortedByOrder(r.store, r.store.incomeStatements, func(s domain.IncomeStatement) bool {
			return s.FiscalYearID == fiscalYearID
		}, false)
		for _, id := range page(ids, limit, offset) {
			c := cloneStatement(r.store.incomeStatements[id])
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func cloneSheet(s domain.BalanceSheet) domain.BalanceSheet {
	s.TotalAssets = cloneDecimal(s.TotalAssets)
	s.TotalLiabilities = cloneDecimal(s.TotalLiabilities)
	s.TotalEquity = cloneDecimal(s.TotalEquity)
	return s
}

func cloneStatement(s domain.IncomeStatement) domain.IncomeStatement {
	s.TotalRevenue = cloneDecimal(s.TotalRevenue)
	s.TotalExpenses = cloneDecimal(s.TotalExpenses)
	s.NetProfit = cloneDecimal(s.NetProfit)
	return s
}
