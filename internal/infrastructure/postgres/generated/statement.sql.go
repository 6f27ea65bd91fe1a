package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createBalanceSheet = `-- name: CreateBalanceSheet :exec
INSERT INTO balance_sheets (id, date, total_assets, total_liabilities, total_equity, fiscal_year_id, confirmed, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type CreateBalanceSheetParams struct {
	ID               string             `json:"id"`
	Date             pgtype.Date        `json:"date"`
	TotalAssets      pgtype.Numeric     `json:"total_assets"`
	TotalLiabilities pgtype.Numeric     `json:"total_liabilities"`
	TotalEquity      pgtype.Numeric     `json:"total_equity"`
	FiscalYearID     string             `json:"fiscal_year_id"`
	Confirmed        bool               `json:"confirmed"`
	Status           string             `json:"status"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateBalanceSheet(ctx context.Context, arg CreateBalanceSheetParams) error {
	_, err := q.db.Exec(ctx, createBalanceSheet,
		arg.ID,
		arg.Date,
		arg.TotalAssets,
		arg.TotalLiabilities,
		arg.TotalEquity,
		arg.FiscalYearID,
		arg.Confirmed,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBalanceSheetByID = `-- name: GetBalanceSheetByID :one
SELECT id, date, total_assets, total_liabilities, total_equity, fiscal_year_id, confirmed, status, created_at, updated_at FROM balance_sheets WHERE id = $1
`

func (q *Queries) GetBalanceSheetByID(ctx context.Context, id string) (BalanceSheet, error) {
	row := q.db.QueryRow(ctx, getBalanceSheetByID, id)
	var i BalanceSheet
	err := row.Scan(
		&i.ID,
		&i.Date,
		&i.TotalAssets,
		&i.TotalLiabilities,
		&i.TotalEquity,
		&i.FiscalYearID,
		&i.Confirmed,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBalanceSheetByIDForUpdate = `-- name: GetBalanceSheetByIDForUpdate :one
SELECT id, date, total_assets, total_liabilities, total_equity, fiscal_year_id, confirmed, status, created_at, updated_at FROM balance_sheets WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetBalanceSheetByIDForUpdate(ctx context.Context, id string) (BalanceSheet, error) {
	row := q.db.QueryRow(ctx, getBalanceSheetByIDForUpdate, id)
	var i BalanceSheet
	err := row.Scan(
		&i.ID,
		&i.Date,
		&i.TotalAssets,
		&i.TotalLiabilities,
		&i.TotalEquity,
		&i.FiscalYearID,
		&i.Confirmed,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listBalanceSheetsByFiscalYear = `-- name: ListBalanceSheetsByFiscalYear :many
SELECT id, date, total_assets, total_liabilities, total_equity, fiscal_year_id, confirmed, status, created_at, updated_at FROM balance_sheets
WHERE fiscal_year_id = $1
ORDER BY created_at, id
LIMIT $2 OFFSET $3
`

type ListBalanceSheetsByFiscalYearParams struct {
	FiscalYearID string `json:"fiscal_year_id"`
	Limit        int32  `json:"limit"`
	Offset       int32  `json:"offset"`
}

func (q *Queries) ListBalanceSheetsByFiscalYear(ctx context.Context, arg ListBalanceSheetsByFiscalYearParams) ([]BalanceSheet, error) {
	rows, err := q.db.Query(ctx, listBalanceSheetsByFiscalYear, arg.FiscalYearID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BalanceSheet
	for rows.Next() {
		var i BalanceSheet
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.TotalAssets,
			&i.TotalLiabilities,
			&i.TotalEquity,
			&i.FiscalYearID,
			&i.Confirmed,
			&i.Status,
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

const updateBalanceSheet = `-- name: UpdateBalanceSheet :execrows
UPDATE balance_sheets
SET date = $2, total_assets = $3, total_liabilities = $4, total_equity = $5, fiscal_year_id = $6, confirmed = $7, status = $8, updated_at = $9
WHERE id = $1
`

type UpdateBalanceSheetParams struct {
	ID               string             `json:"id"`
	Date             pgtype.Date        `json:"date"`
	TotalAssets      pgtype.Numeric     `json:"total_assets"`
	TotalLiabilities pgtype.Numeric     `json:"total_liabilities"`
	TotalEquity      pgtype.Numeric     `json:"total_equity"`
	FiscalYearID     string             `json:"fiscal_year_id"`
	Confirmed        bool               `json:"confirmed"`
	Status           string             `json:"status"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBalanceSheet(ctx context.Context, arg UpdateBalanceSheetParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateBalanceSheet,
		arg.ID,
		arg.Date,
		arg.TotalAssets,
		arg.TotalLiabilities,
		arg.TotalEquity,
		arg.FiscalYearID,
		arg.Confirmed,
		arg.Status,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createIncomeStatement = `-- name: CreateIncomeStatement :exec
INSERT INTO income_statements (id, period_start, period_end, total_revenue, total_expenses, net_profit, fiscal_year_id, confirmed, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateIncomeStatementParams struct {
	ID            string             `json:"id"`
	PeriodStart   pgtype.Date        `json:"period_start"`
	PeriodEnd     pgtype.Date        `json:"period_end"`
	TotalRevenue  pgtype.Numeric     `json:"total_revenue"`
	TotalExpenses pgtype.Numeric     `json:"total_expenses"`
	NetProfit     pgtype.Numeric     `json:"net_profit"`
	FiscalYearID  string             `json:"fiscal_year_id"`
	Confirmed     bool               `json:"confirmed"`
	Status        string             `json:"status"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateIncomeStatement(ctx context.Context, arg CreateIncomeStatementParams) error {
	_, err := q.db.Exec(ctx, createIncomeStatement,
		arg.ID,
		arg.PeriodStart,
		arg.PeriodEnd,
		arg.TotalRevenue,
		arg.TotalExpenses,
		arg.NetProfit,
		arg.FiscalYearID,
		arg.Confirmed,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getIncomeStatementByID = `-- name: GetIncomeStatementByID :one
SELECT id, period_start, period_end, total_revenue, total_expenses, net_profit, fiscal_year_id, confirmed, status, created_at, updated_at FROM income_statements WHERE id = $1
`

func (q *Queries) GetIncomeStatementByID(ctx context.Context, id string) (IncomeStatement, error) {
	row := q.db.QueryRow(ctx, getIncomeStatementByID, id)
	var i IncomeStatement
	err := row.Scan(
		&i.ID,
		&i.PeriodStart,
		&i.PeriodEnd,
		&i.TotalRevenue,
		&i.TotalExpenses,
		&i.NetProfit,
		&i.FiscalYearID,
		&i.Confirmed,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getIncomeStatementByIDForUpdate = `-- name: GetIncomeStatementByIDForUpdate :one
SELECT id, period_start, period_end, total_revenue, total_expenses, net_profit, fiscal_year_id, confirmed, status, created_at, updated_at FROM income_statements WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetIncomeStatementByIDForUpdate(ctx context.Context, id string) (IncomeStatement, error) {
	row := q.db.QueryRow(ctx, getIncomeStatementByIDForUpdate, id)
	var i IncomeStatement
	err := row.Scan(
		&i.ID,
		&i.PeriodStart,
		&i.PeriodEnd,
		&i.TotalRevenue,
		&i.TotalExpenses,
		&i.NetProfit,
		&i.FiscalYearID,
		&i.Confirmed,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listIncomeStatementsByFiscalYear = `-- name: ListIncomeStatementsByFiscalYear :many
SELECT id, period_start, period_end, total_revenue, total_expenses, net_profit, fiscal_year_id, confirmed, status, created_at, updated_at FROM income_statements
WHERE fiscal_year_id = $1
ORDER BY created_at, id
LIMIT $2 OFFSET $3
`

type ListIncomeStatementsByFiscalYearParams struct {
	FiscalYearID string `json:"fiscal_year_id"`
	Limit        int32  `json:"limit"`
	Offset       int32  `json:"offset"`
}

func (q *Queries) ListIncomeStatementsByFiscalYear(ctx context.Context, arg ListIncomeStatementsByFiscalYearParams) ([]IncomeStatement, error) {
	rows, err := q.db.Query(ctx, listIncomeStatementsByFiscalYear, arg.FiscalYearID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []IncomeStatement
	for rows.Next() {
		var i IncomeStatement
		if err := rows.Scan(
			&i.ID,
			&i.PeriodStart,
			&i.PeriodEnd,
			&i.TotalRevenue,
			&i.TotalExpenses,
			&i.NetProfit,
			&i.FiscalYearID,
			&i.Confirmed,
			&i.Status,
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

const updateIncomeStatement = `-- name: UpdateIncomeStatement :execrows
UPDATE income_statements
SET period_start = $2, period_end = $3, total_revenue = $4, total_expenses = $5, net_profit = $6, fiscal_year_id = $7, confirmed = $8, status = $9, updated_at = $10
WHERE id = $1
`

type UpdateIncomeStatementParams struct {
	ID            string             `json:"id"`
	PeriodStart   pgtype.Date        `json:"period_start"`
	PeriodEnd     pgtype.Date        `json:"period_end"`
	TotalRevenue  pgtype.Numeric     `json:"total_revenue"`
	TotalExpenses pgtype.Numeric     `json:"total_expenses"`
	NetProfit     pgtype.Numeric     `json:"net_profit"`
	FiscalYearID  string             `json:"fiscal_year_id"`
	Confirmed     bool               `json:"confirmed"`
	Status        string             `json:"status"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateIncomeStatement(ctx context.Context, arg UpdateIncomeStatementParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateIncomeStatement,
		arg.ID,
		arg.PeriodStart,
		arg.PeriodEnd,
		arg.TotalRevenue,
		arg.TotalExpenses,
		arg.NetProfit,
		arg.FiscalYearID,
		arg.Confirmed,
		arg.Status,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
