package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :exec
INSERT INTO transactions (id, amount, transaction_type, source_account_id, target_account_id, user_id, transaction_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateTransactionParams struct {
	ID              string             `json:"id"`
	Amount          pgtype.Numeric     `json:"amount"`
	TransactionType string             `json:"transaction_type"`
	SourceAccountID string             `json:"source_account_id"`
	TargetAccountID string             `json:"target_account_id"`
	UserID          pgtype.Text        `json:"user_id"`
	TransactionDate pgtype.Timestamptz `json:"transaction_date"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, createTransaction,
		arg.ID,
		arg.Amount,
		arg.TransactionType,
		arg.SourceAccountID,
		arg.TargetAccountID,
		arg.UserID,
		arg.TransactionDate,
		arg.CreatedAt,
	)
	return err
}

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, amount, transaction_type, source_account_id, target_account_id, user_id, transaction_date, created_at FROM transactions WHERE id = $1
`

func (q *Queries) GetTransactionByID(ctx context.Context, id string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByID, id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Amount,
		&i.TransactionType,
		&i.SourceAccountID,
		&i.TargetAccountID,
		&i.UserID,
		&i.TransactionDate,
		&i.CreatedAt,
	)
	return i, err
}

const listTransactionsByAccount = `-- name: ListTransactionsByAccount :many
SELECT id, amount, transaction_type, source_account_id, target_account_id, user_id, transaction_date, created_at FROM transactions
WHERE source_account_id = $1 OR target_account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListTransactionsByAccountParams struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListTransactionsByAccount(ctx context.Context, arg ListTransactionsByAccountParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.Amount,
			&i.TransactionType,
			&i.SourceAccountID,
			&i.TargetAccountID,
			&i.UserID,
			&i.TransactionDate,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
