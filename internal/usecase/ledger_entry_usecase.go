package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// LedgerEntryUseCase records single-sided ledger entries.
type LedgerEntryUseCase struct {
	txManager   TxManager
	retrier     Retrier
	accountRepo AccountRepository
	entryRepo   LedgerEntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     Metrics
}

// NewLedgerEntryUseCase creates a new LedgerEntryUseCase.
func NewLedgerEntryUseCase(
	txManager TxManager,
	retrier Retrier,
	accountRepo AccountRepository,
	entryRepo LedgerEntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics Metrics,
) *LedgerEntryUseCase {
	return &LedgerEntryUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// LedgerEntryInput represents input for recording or updating a ledger entry.
type LedgerEntryInput struct {
	AccountID   string
	Amount      *decimal.Decimal
	Type        domain.EntryType
	EntryDate   *time.Time
	Description string
}

// Record applies the entry to its account and persists it.
func (uc *LedgerEntryUseCase) Record(ctx context.Context, input LedgerEntryInput) (*domain.LedgerEntry, error) {
	if err := validateLedgerInput(input); err != nil {
		uc.metrics.PostingRejected(OpLedgerRecord, err)
		return nil, err
	}

	now := time.Now().UTC()

	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		EntryDate:   entryDate(input.EntryDate, now),
		Amount:      *input.Amount,
		Description: input.Description,
		AccountID:   input.AccountID,
		Type:        normalizeEntryType(input.Type),
		CreatedAt:   now,
	}

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		accounts, err := lockAccounts(ctx, uc.accountRepo, tx, []string{entry.AccountID})
		if err != nil {
			return err
		}

		acc := accounts[entry.AccountID]
		acc.ApplyDelta(entry.DeltaFor(acc), now)

		if err := saveBalances(ctx, uc.accountRepo, tx, accounts, []string{acc.ID}); err != nil {
			return err
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		return uc.outboxRepo.Create(ctx, tx, uc.event(entry, now))
	})
	if err != nil {
		uc.metrics.PostingRejected(OpLedgerRecord, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpLedgerRecord)

	return entry, nil
}

// Update reverses the previous effect of the entry and applies the new one.
// The account may change; both accounts are adjusted in the same unit of work.
func (uc *LedgerEntryUseCase) Update(ctx context.Context, id string, input LedgerEntryInput) (*domain.LedgerEntry, error) {
	if err := validateLedgerInput(input); err != nil {
		uc.metrics.PostingRejected(OpLedgerUpdate, err)
		return nil, err
	}

	now := time.Now().UTC()

	var updated *domain.LedgerEntry

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		existing, err := uc.entryRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		touched := []string{existing.AccountID, input.AccountID}

		accounts, err := lockAccounts(ctx, uc.accountRepo, tx, touched)
		if err != nil {
			return err
		}

		previous := accounts[existing.AccountID]
		previous.ApplyDelta(existing.DeltaFor(previous).Neg(), now)

		existing.AccountID = input.AccountID
		existing.Amount = *input.Amount
		existing.Type = normalizeEntryType(input.Type)
		existing.Description = input.Description
		if input.EntryDate != nil {
			existing.EntryDate = *input.EntryDate
		}
		existing.ModifiedAt = &now

		current := accounts[existing.AccountID]
		current.ApplyDelta(existing.DeltaFor(current), now)

		if err := saveBalances(ctx, uc.accountRepo, tx, accounts, touched); err != nil {
			return err
		}

		if err := uc.entryRepo.Update(ctx, tx, existing); err != nil {
			return err
		}

		updated = existing

		return nil
	})
	if err != nil {
		uc.metrics.PostingRejected(OpLedgerUpdate, err)
		return nil, err
	}

	uc.metrics.PostingCompleted(OpLedgerUpdate)

	return updated, nil
}

// GetEntry retrieves a ledger entry by ID.
func (uc *LedgerEntryUseCase) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListByAccountInput represents input for listing postings of an account.
type ListByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists ledger entries of an account, newest first.
func (uc *LedgerEntryUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.LedgerEntry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entryRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

func (uc *LedgerEntryUseCase) event(entry *domain.LedgerEntry, now time.Time) *domain.OutboxEvent {
	return newOutboxEvent(uc.idGen.Generate(), entry.ID, domain.AggregateTypeLedgerEntry, domain.EventTypeLedgerEntryRecorded,
		domain.LedgerEntryRecordedEvent{
			LedgerEntryID: entry.ID,
			AccountID:     entry.AccountID,
			Amount:        entry.Amount.String(),
			Type:          string(entry.Type),
		}, now)
}

func validateLedgerInput(input LedgerEntryInput) error {
	if err := domain.ValidateLedgerAmount(input.Amount); err != nil {
		return err
	}

	entry := domain.LedgerEntry{Amount: *input.Amount, Type: normalizeEntryType(input.Type)}
	if err := entry.Validate(); err != nil {
		return err
	}

	return domain.ValidateDescription(input.Description)
}

func normalizeEntryType(t domain.EntryType) domain.EntryType {
	return domain.EntryType(strings.ToUpper(strings.TrimSpace(string(t))))
}
