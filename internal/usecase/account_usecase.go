package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/finledger/internal/domain"
)

// AccountUseCase handles account registration and lookup.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// RegisterAccountInput represents input for registering an account.
type RegisterAccountInput struct {
	AccountNumber string
	AccountName   string
	Type          domain.AccountType
}

// Register creates a new account with a zero balance.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterAccountInput) (*domain.Account, error) {
	number := strings.TrimSpace(input.AccountNumber)
	name := strings.TrimSpace(input.AccountName)

	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountType(input.Type); err != nil {
		return nil, err
	}

	account := domain.NewAccount(uc.idGen.Generate(), number, name, input.Type, time.Now().UTC())

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its unique account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, strings.TrimSpace(number))
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}
