package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts an account, rejecting a taken account number.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.store.withLock(ctx, func() error {
		if _, taken := r.store.accountsByNumber[account.AccountNumber]; taken {
			return domain.ErrDuplicateAccount
		}
		r.store.accounts[account.ID] = *account
		r.store.accountsByNumber[account.AccountNumber] = account.ID
		r.store.nextOrder(account.ID)
		return nil
	})
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var out *domain.Account
	err := r.store.withLock(ctx, func() error {
		acc, ok := r.store.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		out = &acc
		return nil
	})
	return out, err
}

// GetByNumber retrieves an account by account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	var out *domain.Account
	err := r.store.withLock(ctx, func() error {
		id, ok := r.store.accountsByNumber[number]
		if !ok {
			return domain.ErrAccountNotFound
		}
		acc := r.store.accounts[id]
		out = &acc
		return nil
	})
	return out, err
}

// GetByIDsForUpdate returns the accounts that exist, in ID order. The store
// lock held by tx already serializes access.
func (r *AccountRepository) GetByIDsForUpdate(_ context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if _, err := openTx(tx); err != nil {
		return nil, err
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range slices.Compact(sorted) {
		if acc, ok := r.store.accounts[id]; ok {
			accounts = append(accounts, &acc)
		}
	}
	return accounts, nil
}

// UpdateBalance stores the new balance and version.
func (r *AccountRepository) UpdateBalance(_ context.Context, tx usecase.Tx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	t, err := openTx(tx)
	if err != nil {
		return err
	}

	acc, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	acc.Balance = balance
	acc.Version = version
	acc.UpdatedAt = updatedAt
	put(t, r.store.accounts, id, acc)

	return nil
}

// List lists accounts ordered by account number.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	var out []*domain.Account
	err := r.store.withLock(ctx, func() error {
		all := make([]domain.Account, 0, len(r.store.accounts))
		for _, acc := range r.store.accounts {
			all = append(all, acc)
		}
		slices.SortFunc(all, func(a, b domain.Account) int {
			return strings.Compare(a.AccountNumber, b.AccountNumber)
		})

		if offset >= len(all) {
			return nil
		}
		for _, acc := range all[offset:min(offset+limit, len(all))] {
			out = append(out, &acc)
		}
		return nil
	})
	return out, err
}
