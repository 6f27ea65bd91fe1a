package postgres

import (
	"context"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/infrastructure/postgres/generated"
	"github.com/iho/finledger/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	queries *generated.Queries
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(db generated.DBTX) *JournalRepository {
	return &JournalRepository{queries: generated.New(db)}
}

// Create inserts the entry header and its items.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.JournalEntry) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	err = queries.CreateJournalEntry(ctx, generated.CreateJournalEntryParams{
		ID:          entry.ID,
		EntryDate:   timeToPgTimestamptz(entry.EntryDate),
		Description: entry.Description,
		CreatedAt:   timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}

	return insertItems(ctx, queries, entry)
}

// GetByID retrieves an entry with its items.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row, err := r.queries.GetJournalEntryByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrJournalEntryNotFound)
	}

	entries, err := withItems(ctx, r.queries, []generated.JournalEntry{row})
	if err != nil {
		return nil, err
	}

	return entries[0], nil
}

// GetByIDForUpdate locks the entry header; items are read under the same lock.
func (r *JournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.JournalEntry, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.GetJournalEntryByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrJournalEntryNotFound)
	}

	entries, err := withItems(ctx, queries, []generated.JournalEntry{row})
	if err != nil {
		return nil, err
	}

	return entries[0], nil
}

// Update rewrites the header and replaces the full item set.
func (r *JournalRepository) Update(ctx context.Context, tx usecase.Tx, entry *domain.JournalEntry) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateJournalEntry(ctx, generated.UpdateJournalEntryParams{
		ID:          entry.ID,
		EntryDate:   timeToPgTimestamptz(entry.EntryDate),
		Description: entry.Description,
		UpdatedAt:   timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrJournalEntryNotFound
	}

	if err := queries.DeleteJournalItems(ctx, entry.ID); err != nil {
		return err
	}

	return insertItems(ctx, queries, entry)
}

// List lists entries newest first.
func (r *JournalRepository) List(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.queries.ListJournalEntries(ctx, generated.ListJournalEntriesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return withItems(ctx, r.queries, rows)
}

func insertItems(ctx context.Context, queries *generated.Queries, entry *domain.JournalEntry) error {
	for _, item := range entry.Items {
		err := queries.CreateJournalItem(ctx, generated.CreateJournalItemParams{
			ID:             item.ID,
			JournalEntryID: entry.ID,
			AccountID:      item.AccountID,
			Debit:          decimalToNumeric(item.Debit),
			Credit:         decimalToNumeric(item.Credit),
			Position:       int32(item.Position),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// withItems loads the items of every row in a single query.
func withItems(ctx context.Context, queries *generated.Queries, rows []generated.JournalEntry) ([]*domain.JournalEntry, error) {
	entries := make([]*domain.JournalEntry, 0, len(rows))
	if len(rows) == 0 {
		return entries, nil
	}

	ids := make([]string, 0, len(rows))
	byID := make(map[string]*domain.JournalEntry, len(rows))
	for _, row := range rows {
		entry := &domain.JournalEntry{
			ID:          row.ID,
			EntryDate:   row.EntryDate.Time,
			Description: row.Description,
			CreatedAt:   row.CreatedAt.Time,
			UpdatedAt:   row.UpdatedAt.Time,
		}
		ids = append(ids, row.ID)
		byID[row.ID] = entry
		entries = append(entries, entry)
	}

	items, err := queries.ListJournalItemsByEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		entry, ok := byID[item.JournalEntryID]
		if !ok {
			continue
		}
		entry.Items = append(entry.Items, domain.JournalItem{
			ID:             item.ID,
			JournalEntryID: item.JournalEntryID,
			AccountID:      item.AccountID,
			Debit:          numericToDecimal(item.Debit),
			Credit:         numericToDecimal(item.Credit),
			Position:       int(item.Position),
		})
	}

	return entries, nil
}
