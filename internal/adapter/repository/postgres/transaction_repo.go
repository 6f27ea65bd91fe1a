package postgres

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
	"github.com/iho/finledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create records a posted transaction. An empty UserID is stored as NULL.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:              transaction.ID,
		Amount:          decimalToNumeric(transaction.Amount),
		TransactionType: transaction.TransactionType,
		SourceAccountID: transaction.SourceAccountID,
		TargetAccountID: transaction.TargetAccountID,
		UserID:          textOrNull(transaction.UserID),
		TransactionDate: timeToPgTimestamptz(transaction.TransactionDate),
		CreatedAt:       timeToPgTimestamptz(transaction.CreatedAt),
	})
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTransactionNotFound)
	}

	return rowToTransaction(row), nil
}

// ListByAccount lists transactions touching the account on either side, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, generated.ListTransactionsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToTransaction(row))
	}

	return transactions, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:              row.ID,
		Amount:          numericToDecimal(row.Amount),
		TransactionType: row.TransactionType,
		SourceAccountID: row.SourceAccountID,
		TargetAccountID: row.TargetAccountID,
		UserID:          row.UserID.String,
		TransactionDate: row.TransactionDate.Time,
		CreatedAt:       row.CreatedAt.Time,
	}
}
