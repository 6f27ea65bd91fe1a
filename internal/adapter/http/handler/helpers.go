package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

var notFoundErrors = []error{
	domain.ErrAccountNotFound,
	domain.ErrJournalEntryNotFound,
	domain.ErrLedgerEntryNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrBalanceSheetNotFound,
	domain.ErrIncomeStatementNotFound,
	domain.ErrFiscalYearNotFound,
	domain.ErrUserNotFound,
}

var badRequestErrors = []error{
	domain.ErrValidation,
	domain.ErrMissingField,
	domain.ErrInvalidLine,
	domain.ErrInvalidAmount,
	domain.ErrSameAccount,
	domain.ErrUnbalancedSheet,
	domain.ErrInvalidAccountName,
	domain.ErrInvalidAccountNumber,
	domain.ErrInvalidAccountType,
	domain.ErrDescriptionTooLong,
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateAccount), errors.Is(err, domain.ErrAlreadyConfirmed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnbalancedEntry), errors.Is(err, domain.ErrInsolvent):
		return http.StatusUnprocessableEntity
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// pathID reads the {id} URL parameter, writing a 400 when it is empty.
func pathID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing "+what+" ID", "")
		return "", false
	}
	return id, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// page reads limit and offset, clamped the same way the use cases clamp them.
func page(r *http.Request) (int, int) {
	return domain.ValidatePagination(
		parseIntQuery(r, "limit", domain.DefaultPageSize),
		parseIntQuery(r, "offset", 0),
	)
}
