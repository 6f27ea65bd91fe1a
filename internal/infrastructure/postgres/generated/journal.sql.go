package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createJournalEntry = `-- name: CreateJournalEntry :exec
INSERT INTO journal_entries (id, entry_date, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateJournalEntryParams struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Timestamptz `json:"entry_date"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateJournalEntry(ctx context.Context, arg CreateJournalEntryParams) error {
	_, err := q.db.Exec(ctx, createJournalEntry,
		arg.ID,
		arg.EntryDate,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const createJournalItem = `-- name: CreateJournalItem :exec
INSERT INTO journal_items (id, journal_entry_id, account_id, debit, credit, position)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateJournalItemParams struct {
	ID             string         `json:"id"`
	JournalEntryID string         `json:"journal_entry_id"`
	AccountID      string         `json:"account_id"`
	Debit          pgtype.Numeric `json:"debit"`
	Credit         pgtype.Numeric `json:"credit"`
	Position       int32          `json:"position"`
}

func (q *Queries) CreateJournalItem(ctx context.Context, arg CreateJournalItemParams) error {
	_, err := q.db.Exec(ctx, createJournalItem,
		arg.ID,
		arg.JournalEntryID,
		arg.AccountID,
		arg.Debit,
		arg.Credit,
		arg.Position,
	)
	return err
}

const deleteJournalItems = `-- name: DeleteJournalItems :exec
DELETE FROM journal_items WHERE journal_entry_id = $1
`

func (q *Queries) DeleteJournalItems(ctx context.Context, journalEntryID string) error {
	_, err := q.db.Exec(ctx, deleteJournalItems, journalEntryID)
	return err
}

const getJournalEntryByID = `-- name: GetJournalEntryByID :one
SELECT id, entry_date, description, created_at, updated_at FROM journal_entries WHERE id = $1
`

func (q *Queries) GetJournalEntryByID(ctx context.Context, id string) (JournalEntry, error) {
	row := q.db.QueryRow(ctx, getJournalEntryByID, id)
	var i JournalEntry
	err := row.Scan(
		&i.ID,
		&i.EntryDate,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getJournalEntryByIDForUpdate = `-- name: GetJournalEntryByIDForUpdate :one
SELECT id, entry_date, description, created_at, updated_at FROM journal_entries WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetJournalEntryByIDForUpdate(ctx context.Context, id string) (JournalEntry, error) {
	row := q.db.QueryRow(ctx, getJournalEntryByIDForUpdate, id)
	var i JournalEntry
	err := row.Scan(
		&i.ID,
		&i.EntryDate,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listJournalEntries = `-- name: ListJournalEntries :many
SELECT id, entry_date, description, created_at, updated_at FROM journal_entries
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`

type ListJournalEntriesParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListJournalEntries(ctx context.Context, arg ListJournalEntriesParams) ([]JournalEntry, error) {
	rows, err := q.db.Query(ctx, listJournalEntries, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JournalEntry
	for rows.Next() {
		var i JournalEntry
		if err := rows.Scan(
			&i.ID,
			&i.EntryDate,
			&i.Description,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listJournalItemsByEntries = `-- name: ListJournalItemsByEntries :many
SELECT id, journal_entry_id, account_id, debit, credit, position FROM journal_items
WHERE journal_entry_id = ANY($1::varchar[])
ORDER BY journal_entry_id, position
`

func (q *Queries) ListJournalItemsByEntries(ctx context.Context, entryIds []string) ([]JournalItem, error) {
	rows, err := q.db.Query(ctx, listJournalItemsByEntries, entryIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JournalItem
	for rows.Next() {
		var i JournalItem
		if err := rows.Scan(
			&i.ID,
			&i.JournalEntryID,
			&i.AccountID,
			&i.Debit,
			&i.Credit,
			&i.Position,
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

const updateJournalEntry = `-- name: UpdateJournalEntry :execrows
UPDATE journal_entries SET entry_date = $2, description = $3, updated_at = $4 WHERE id = $1
`

type UpdateJournalEntryParams struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Timestamptz `json:"entry_date"`
	Description string             `json:"description"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateJournalEntry(ctx context.Context, arg UpdateJournalEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateJournalEntry,
		arg.ID,
		arg.EntryDate,
		arg.Description,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
