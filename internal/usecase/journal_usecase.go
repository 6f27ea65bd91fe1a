package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// JournalUseCase posts balanced multi-line journal entries.
type JournalUseCase struct {
	txManager   TxManager
	retrier     Retrier
	accountRepo AccountRepository
	journalRepo JournalRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     Metrics
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TxManager,
	retrier Retrier,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics Metrics,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// JournalLineInput is one debit or credit line.
type JournalLineInput struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// JournalEntryInput represents input for posting or updating a journal entry.
type JournalEntryInput struct {
	EntryDate   *time.Time
	Description string
	Lines       []JournalLineInput
}

// PostEntry validates the entry, then applies every line to its account and
// persists the entry in one unit of work. An unbalanced entry touches nothing.
func (uc *JournalUseCase) PostEntry(ctx context.Context, input JournalEntryInput) (*domain.JournalEntry, error) {
	now := time.Now().UTC()

	entry := &domain.JournalEntry{
		ID:          uc.idGen.Generate(),
		EntryDate:   entryDate(input.EntryDate, now),
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	entry.Items = uc.buildItems(entry.ID, input.Lines)

	if err := uc.validate(entry); err != nil {
		uc.metrics.PostingRejected(OpJournalPost, err)
		return nil, err
	}

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		accounts, err := lockAccounts(ctx, uc.accountRepo, tx, entry.AccountIDs())
		if err != nil {
			return err
		}

		applyItems(accounts, entry.Items, false, now)

		if err := saveBalances(ctx, uc.accountRepo, tx, accounts, entry.AccountIDs()); err != nil {
			return err
		}

		if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, uc.event(entry, domain.EventTypeJournalEntryPosted, now))
	})
	if err != nil {
		uc.metrics.PostingRejected(OpJournalPost, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpJournalPost)

	return entry, nil
}

// UpdateEntry replaces the lines of a posted entry. The effect of the old
// lines is reversed and the new lines are applied atomically.
func (uc *JournalUseCase) UpdateEntry(ctx context.Context, id string, input JournalEntryInput) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	items := uc.buildItems(id, input.Lines)

	candidate := &domain.JournalEntry{ID: id, Description: input.Description, Items: items}
	if err := uc.validate(candidate); err != nil {
		uc.metrics.PostingRejected(OpJournalUpdate, err)
		return nil, err
	}

	var updated *domain.JournalEntry

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		existing, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		touched := append(existing.AccountIDs(), candidate.AccountIDs()...)

		accounts, err := lockAccounts(ctx, uc.accountRepo, tx, touched)
		if err != nil {
			return err
		}

		applyItems(accounts, existing.Items, true, now)
		applyItems(accounts, items, false, now)

		if err := saveBalances(ctx, uc.accountRepo, tx, accounts, touched); err != nil {
			return err
		}

		existing.Items = items
		existing.Description = input.Description
		if input.EntryDate != nil {
			existing.EntryDate = *input.EntryDate
		}
		existing.UpdatedAt = now

		if err := uc.journalRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		updated = existing

		return uc.outboxRepo.Create(ctx, tx, uc.event(existing, domain.EventTypeJournalEntryUpdated, now))
	})
	if err != nil {
		uc.metrics.PostingRejected(OpJournalUpdate, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpJournalUpdate)

	return updated, nil
}

// GetEntry retrieves a journal entry with its items.
func (uc *JournalUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// ListEntriesInput represents input for listing journal entries.
type ListEntriesInput struct {
	Limit  int
	Offset int
}

// ListEntries lists journal entries, newest first.
func (uc *JournalUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.JournalEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.journalRepo.List(ctx, limit, offset)
}

func (uc *JournalUseCase) buildItems(entryID string, lines []JournalLineInput) []domain.JournalItem {
	items := make([]domain.JournalItem, 0, len(lines))
	for i, line := range lines {
		items = append(items, domain.JournalItem{
			ID:             uc.idGen.Generate(),
			JournalEntryID: entryID,
			AccountID:      line.AccountID,
			Debit:          line.Debit,
			Credit:         line.Credit,
			Position:       i + 1,
		})
	}
	return items
}

func (uc *JournalUseCase) validate(entry *domain.JournalEntry) error {
	if err := domain.ValidateDescription(entry.Description); err != nil {
		return err
	}
	return entry.Validate()
}

func (uc *JournalUseCase) event(entry *domain.JournalEntry, eventType string, now time.Time) *domain.OutboxEvent {
	debits, credits := entry.Totals()

	return newOutboxEvent(uc.idGen.Generate(), entry.ID, domain.AggregateTypeJournalEntry, eventType,
		domain.JournalEntryPostedEvent{
			JournalEntryID: entry.ID,
			Description:    entry.Description,
			TotalDebits:    debits.String(),
			TotalCredits:   credits.String(),
			Lines:          len(entry.Items),
			EntryDate:      entry.EntryDate.Format(time.DateOnly),
		}, now)
}

// applyItems posts items to their accounts, or takes them back out when reverse is set.
func applyItems(accounts map[string]*domain.Account, items []domain.JournalItem, reverse bool, now time.Time) {
	for _, item := range items {
		acc := accounts[item.AccountID]
		delta := acc.SignedDelta(item.Debit, item.Credit)
		if reverse {
			delta = delta.Neg()
		}
		acc.ApplyDelta(delta, now)
	}
}

func entryDate(date *time.Time, now time.Time) time.Time {
	if date != nil {
		return *date
	}
	return now
}
