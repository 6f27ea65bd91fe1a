package memory

import (
	"context"

	"github.com/iho/finledger/internal/domain"
)

// FiscalYearRepository implements usecase.FiscalYearRepository over seeded years.
type FiscalYearRepository struct {
	store *Store
}

// NewFiscalYearRepository creates a new FiscalYearRepository.
func NewFiscalYearRepository(store *Store) *FiscalYearRepository {
	return &FiscalYearRepository{store: store}
}

// GetByID retrieves a fiscal year.
func (r *FiscalYearRepository) GetByID(ctx context.Context, id string) (*domain.FiscalYear, error) {
	var out *domain.FiscalYear
	err := r.store.withLock(ctx, func() error {
		fy, ok := r.store.fiscalYears[id]
		if !ok {
			return domain.ErrFiscalYearNotFound
		}
		out = &fy
		return nil
	})
	return out, err
}

// UserRepository implements usecase.UserRepository over seeded users.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByID retrieves a user.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var out *domain.User
	err := r.store.withLock(ctx, func() error {
		user, ok := r.store.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		out = &user
		return nil
	})
	return out, err
}
