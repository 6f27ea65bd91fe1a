package generated

import (
	"context"
)

const getFiscalYearByID = `-- name: GetFiscalYearByID :one
SELECT id, year, start_date, end_date, closed FROM fiscal_years WHERE id = $1
`

func (q *Queries) GetFiscalYearByID(ctx context.Context, id string) (FiscalYear, error) {
	row := q.db.QueryRow(ctx, getFiscalYearByID, id)
	var i FiscalYear
	err := row.Scan(
		&i.ID,
		&i.Year,
		&i.StartDate,
		&i.EndDate,
		&i.Closed,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, name, active, created_at FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.Active,
		&i.CreatedAt,
	)
	return i, err
}
