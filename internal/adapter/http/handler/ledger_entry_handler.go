package handler

import (
	"context"
	"net/http"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// LedgerEntryService defines the behavior needed by LedgerEntryHandler.
type LedgerEntryService interface {
	Record(ctx context.Context, input usecase.LedgerEntryInput) (*domain.LedgerEntry, error)
	Update(ctx context.Context, id string, input usecase.LedgerEntryInput) (*domain.LedgerEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.LedgerEntry, error)
}

// LedgerEntryHandler handles single-sided ledger entry requests.
type LedgerEntryHandler struct {
	entryUC LedgerEntryService
}

// NewLedgerEntryHandler creates a new LedgerEntryHandler.
func NewLedgerEntryHandler(entryUC LedgerEntryService) *LedgerEntryHandler {
	return &LedgerEntryHandler{entryUC: entryUC}
}

// Create records a ledger entry against one account.
func (h *LedgerEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.LedgerEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.entryUC.Record(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to record ledger entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerEntryFromDomain(entry))
}

// Update changes a recorded ledger entry.
func (h *LedgerEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "ledger entry")
	if !ok {
		return
	}

	var req dto.LedgerEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.entryUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update ledger entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntryFromDomain(entry))
}

// Get retrieves a ledger entry by ID.
func (h *LedgerEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "ledger entry")
	if !ok {
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get ledger entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntryFromDomain(entry))
}

// ListByAccount lists the ledger entries of an account.
func (h *LedgerEntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account")
	if !ok {
		return
	}
	limit, offset := page(r)

	entries, err := h.entryUC.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list ledger entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.LedgerEntryResponse]{
		Items:  dto.LedgerEntriesFromDomain(entries),
		Limit:  limit,
		Offset: offset,
	})
}
