package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// TransactionUseCase moves amounts between two accounts.
type TransactionUseCase struct {
	txManager       TxManager
	retrier         Retrier
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	userRepo        UserRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	metrics         Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	retrier Retrier,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		retrier:         retrier,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// PostTransactionInput represents input for posting a transaction.
type PostTransactionInput struct {
	SourceAccountID string
	TargetAccountID string
	Amount          decimal.Decimal
	TransactionType string
	UserID          string
	TransactionDate *time.Time
}

// Post debits the source account and credits the target account by the
// amount, then records the transaction. Either everything is applied or
// nothing is.
func (uc *TransactionUseCase) Post(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		Amount:          input.Amount,
		TransactionType: input.TransactionType,
		SourceAccountID: input.SourceAccountID,
		TargetAccountID: input.TargetAccountID,
		UserID:          input.UserID,
		TransactionDate: entryDate(input.TransactionDate, now),
		CreatedAt:       now,
	}

	if err := uc.validate(ctx, txn); err != nil {
		uc.metrics.PostingRejected(OpTransactionPost, err)
		return nil, err
	}

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		ids := []string{txn.SourceAccountID, txn.TargetAccountID}

		accounts, err := lockAccounts(ctx, uc.accountRepo, tx, ids)
		if err != nil {
			return err
		}

		accounts[txn.SourceAccountID].ApplyDelta(txn.Amount.Neg(), now)
		accounts[txn.TargetAccountID].ApplyDelta(txn.Amount, now)

		if err := saveBalances(ctx, uc.accountRepo, tx, accounts, ids); err != nil {
			return err
		}

		if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, newOutboxEvent(uc.idGen.Generate(), txn.ID,
			domain.AggregateTypeTransaction, domain.EventTypeTransactionPosted,
			domain.TransactionPostedEvent{
				TransactionID:   txn.ID,
				SourceAccountID: txn.SourceAccountID,
				TargetAccountID: txn.TargetAccountID,
				Amount:          txn.Amount.String(),
				TransactionType: txn.TransactionType,
				UserID:          txn.UserID,
			}, now))
	})
	if err != nil {
		uc.metrics.PostingRejected(OpTransactionPost, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpTransactionPost)

	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListByAccount lists transactions where the account is source or target.
func (uc *TransactionUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transactionRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

func (uc *TransactionUseCase) validate(ctx context.Context, txn *domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}

	if txn.UserID == "" {
		return nil
	}

	user, err := uc.userRepo.GetByID(ctx, txn.UserID)
	if err != nil {
		return err
	}

	return user.CanPost()
}
