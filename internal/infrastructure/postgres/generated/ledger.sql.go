package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getAccountActivity = `-- name: GetAccountActivity :one
SELECT
    (SELECT COALESCE(SUM(debit), 0) FROM journal_items WHERE journal_items.account_id = $1)::numeric AS journal_debits,
    (SELECT COALESCE(SUM(credit), 0) FROM journal_items WHERE journal_items.account_id = $1)::numeric AS journal_credits,
    (SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE ledger_entries.account_id = $1 AND type = 'DEBIT')::numeric AS ledger_debits,
    (SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE ledger_entries.account_id = $1 AND type = 'CREDIT')::numeric AS ledger_credits,
    (SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE target_account_id = $1)::numeric AS transfers_in,
    (SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE source_account_id = $1)::numeric AS transfers_out
`

type GetAccountActivityRow struct {
	JournalDebits  pgtype.Numeric `json:"journal_debits"`
	JournalCredits pgtype.Numeric `json:"journal_credits"`
	LedgerDebits   pgtype.Numeric `json:"ledger_debits"`
	LedgerCredits  pgtype.Numeric `json:"ledger_credits"`
	TransfersIn    pgtype.Numeric `json:"transfers_in"`
	TransfersOut   pgtype.Numeric `json:"transfers_out"`
}

func (q *Queries) GetAccountActivity(ctx context.Context, accountID string) (GetAccountActivityRow, error) {
	row := q.db.QueryRow(ctx, getAccountActivity, accountID)
	var i GetAccountActivityRow
	err := row.Scan(
		&i.JournalDebits,
		&i.JournalCredits,
		&i.LedgerDebits,
		&i.LedgerCredits,
		&i.TransfersIn,
		&i.TransfersOut,
	)
	return i, err
}

const getJournalTotals = `-- name: GetJournalTotals :one
SELECT
    COALESCE(SUM(debit), 0)::numeric AS total_debits,
    COALESCE(SUM(credit), 0)::numeric AS total_credits
FROM journal_items
`

type GetJournalTotalsRow struct {
	TotalDebits  pgtype.Numeric `json:"total_debits"`
	TotalCredits pgtype.Numeric `json:"total_credits"`
}

func (q *Queries) GetJournalTotals(ctx context.Context) (GetJournalTotalsRow, error) {
	row := q.db.QueryRow(ctx, getJournalTotals)
	var i GetJournalTotalsRow
	err := row.Scan(&i.TotalDebits, &i.TotalCredits)
	return i, err
}
