package postgres

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
)

// FiscalYearRepository implements usecase.FiscalYearRepository.
type FiscalYearRepository struct {
	queries *generated.Queries
}

// NewFiscalYearRepository creates a new FiscalYearRepository.
func NewFiscalYearRepository(db generated.DBTX) *FiscalYearRepository {
	return &FiscalYearRepository{queries: generated.New(db)}
}

func (r *FiscalYearRepository) GetByID(ctx context.Context, id string) (*domain.FiscalYear, error) {
	row, err := r.queries.GetFiscalYearByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrFiscalYearNotFound)
	}

	return &domain.FiscalYear{
		ID:        row.ID,
		Year:      int(row.Year),
		StartDate: pgDateToTime(row.StartDate),
		EndDate:   pgDateToTime(row.EndDate),
		Closed:    row.Closed,
	}, nil
}

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	queries *generated.Queries
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db generated.DBTX) *UserRepository {
	return &UserRepository{queries: generated.New(db)}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}

	return &domain.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Active:    row.Active,
		CreatedAt: row.CreatedAt.Time,
	}, nil
}
