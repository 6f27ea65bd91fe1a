package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :exec
INSERT INTO ledger_entries (id, entry_date, amount, description, account_id, type, created_at, modified_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateLedgerEntryParams struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Timestamptz `json:"entry_date"`
	Amount      pgtype.Numeric     `json:"amount"`
	Description string             `json:"description"`
	AccountID   string             `json:"account_id"`
	Type        string             `json:"type"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	ModifiedAt  pgtype.Timestamptz `json:"modified_at"`
}

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) error {
	_, err := q.db.Exec(ctx, createLedgerEntry,
		arg.ID,
		arg.EntryDate,
		arg.Amount,
		arg.Description,
		arg.AccountID,
		arg.Type,
		arg.CreatedAt,
		arg.ModifiedAt,
	)
	return err
}

const getLedgerEntryByID = `-- name: GetLedgerEntryByID :one
SELECT id, entry_date, amount, description, account_id, type, created_at, modified_at FROM ledger_entries WHERE id = $1
`

func (q *Queries) GetLedgerEntryByID(ctx context.Context, id string) (LedgerEntry, error) {
	row := q.db.QueryRow(ctx, getLedgerEntryByID, id)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.EntryDate,
		&i.Amount,
		&i.Description,
		&i.AccountID,
		&i.Type,
		&i.CreatedAt,
		&i.ModifiedAt,
	)
	return i, err
}

const getLedgerEntryByIDForUpdate = `-- name: GetLedgerEntryByIDForUpdate :one
SELECT id, entry_date, amount, description, account_id, type, created_at, modified_at FROM ledger_entries WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetLedgerEntryByIDForUpdate(ctx context.Context, id string) (LedgerEntry, error) {
	row := q.db.QueryRow(ctx, getLedgerEntryByIDForUpdate, id)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.EntryDate,
		&i.Amount,
		&i.Description,
		&i.AccountID,
		&i.Type,
		&i.CreatedAt,
		&i.ModifiedAt,
	)
	return i, err
}

const listLedgerEntriesByAccount = `-- name: ListLedgerEntriesByAccount :many
SELECT id, entry_date, amount, description, account_id, type, created_at, modified_at FROM ledger_entries
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListLedgerEntriesByAccountParams struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListLedgerEntriesByAccount(ctx context.Context, arg ListLedgerEntriesByAccountParams) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, listLedgerEntriesByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LedgerEntry
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.EntryDate,
			&i.Amount,
			&i.Description,
			&i.AccountID,
			&i.Type,
			&i.CreatedAt,
			&i.ModifiedAt,
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

const updateLedgerEntry = `-- name: UpdateLedgerEntry :execrows
UPDATE ledger_entries
SET entry_date = $2, amount = $3, description = $4, account_id = $5, type = $6, modified_at = $7
WHERE id = $1
`

type UpdateLedgerEntryParams struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Timestamptz `json:"entry_date"`
	Amount      pgtype.Numeric     `json:"amount"`
	Description string             `json:"description"`
	AccountID   string             `json:"account_id"`
	Type        string             `json:"type"`
	ModifiedAt  pgtype.Timestamptz `json:"modified_at"`
}

func (q *Queries) UpdateLedgerEntry(ctx context.Context, arg UpdateLedgerEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateLedgerEntry,
		arg.ID,
		arg.EntryDate,
		arg.Amount,
		arg.Description,
		arg.AccountID,
		arg.Type,
		arg.ModifiedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
