package postgres

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
	"github.com/iho/finledger/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
type LedgerEntryRepository struct {
	queries *generated.Queries
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(db generated.DBTX) *LedgerEntryRepository {
	return &LedgerEntryRepository{queries: generated.New(db)}
}

func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.LedgerEntry) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:          entry.ID,
		EntryDate:   timeToPgTimestamptz(entry.EntryDate),
		Amount:      decimalToNumeric(entry.Amount),
		Description: entry.Description,
		AccountID:   entry.AccountID,
		Type:        string(entry.Type),
		CreatedAt:   timeToPgTimestamptz(entry.CreatedAt),
		ModifiedAt:  timePtrToPgTimestamptz(entry.ModifiedAt),
	})
}

func (r *LedgerEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrLedgerEntryNotFound)
	}

	return rowToLedgerEntry(row), nil
}

func (r *LedgerEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.LedgerEntry, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetLedgerEntryByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrLedgerEntryNotFound)
	}

	return rowToLedgerEntry(row), nil
}

func (r *LedgerEntryRepository) Update(ctx context.Context, tx usecase.Tx, entry *domain.LedgerEntry) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateLedgerEntry(ctx, generated.UpdateLedgerEntryParams{
		ID:          entry.ID,
		EntryDate:   timeToPgTimestamptz(entry.EntryDate),
		Amount:      decimalToNumeric(entry.Amount),
		Description: entry.Description,
		AccountID:   entry.AccountID,
		Type:        string(entry.Type),
		ModifiedAt:  timePtrToPgTimestamptz(entry.ModifiedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLedgerEntryNotFound
	}

	return nil
}

// ListByAccount lists an account's entries newest first.
func (r *LedgerEntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesByAccount(ctx, generated.ListLedgerEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

func rowToLedgerEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:          row.ID,
		EntryDate:   row.EntryDate.Time,
		Amount:      numericToDecimal(row.Amount),
		Description: row.Description,
		AccountID:   row.AccountID,
		Type:        domain.EntryType(row.Type),
		CreatedAt:   row.CreatedAt.Time,
		ModifiedAt:  pgTimestamptzToTimePtr(row.ModifiedAt),
	}
}
