package handler

import (
	"context"
	"net/http"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	PostEntry(ctx context.Context, input usecase.JournalEntryInput) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, input usecase.JournalEntryInput) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.JournalEntry, error)
}

// JournalHandler handles journal entry requests.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Create posts a balanced journal entry.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.JournalEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.journalUC.PostEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to post journal entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.JournalEntryFromDomain(entry))
}

// Update replaces the lines of a posted journal entry.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "journal entry")
	if !ok {
		return
	}

	var req dto.JournalEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.journalUC.UpdateEntry(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update journal entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// Get retrieves a journal entry with its lines.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "journal entry")
	if !ok {
		return
	}

	entry, err := h.journalUC.GetEntry(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get journal entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalEntryFromDomain(entry))
}

// List lists journal entries, newest first.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)

	entries, err := h.journalUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list journal entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.JournalEntryResponse]{
		Items:  dto.JournalEntriesFromDomain(entries),
		Limit:  limit,
		Offset: offset,
	})
}
