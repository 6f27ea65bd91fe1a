package handler

import (
	"context"
	"net/http"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// BalanceSheetService defines the behavior needed by BalanceSheetHandler.
type BalanceSheetService interface {
	Derive(input usecase.BalanceSheetInput) (*domain.BalanceSheet, error)
	Create(ctx context.Context, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error)
	Update(ctx context.Context, id string, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error)
	Get(ctx context.Context, id string) (*domain.BalanceSheet, error)
	ListByFiscalYear(ctx context.Context, input usecase.ListByFiscalYearInput) ([]*domain.BalanceSheet, error)
	Confirm(ctx context.Context, id string) (*domain.BalanceSheet, error)
}

// BalanceSheetHandler handles balance sheet requests.
type BalanceSheetHandler struct {
	sheetUC BalanceSheetService
}

// NewBalanceSheetHandler creates a new BalanceSheetHandler.
func NewBalanceSheetHandler(sheetUC BalanceSheetService) *BalanceSheetHandler {
	return &BalanceSheetHandler{sheetUC: sheetUC}
}

// Derive fills in the missing total without storing anything.
func (h *BalanceSheetHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceSheetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sheet, err := h.sheetUC.Derive(req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to derive balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// Create stores a new balance sheet.
func (h *BalanceSheetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceSheetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sheet, err := h.sheetUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create balance sheet", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BalanceSheetFromDomain(sheet))
}

// Update changes an unconfirmed balance sheet.
func (h *BalanceSheetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "balance sheet")
	if !ok {
		return
	}

	var req dto.BalanceSheetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sheet, err := h.sheetUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// Get retrieves a balance sheet by ID.
func (h *BalanceSheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "balance sheet")
	if !ok {
		return
	}

	sheet, err := h.sheetUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// Confirm locks a balance sheet against further changes.
func (h *BalanceSheetHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "balance sheet")
	if !ok {
		return
	}

	sheet, err := h.sheetUC.Confirm(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to confirm balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// ListByFiscalYear lists the balance sheets of a fiscal year.
func (h *BalanceSheetHandler) ListByFiscalYear(w http.ResponseWriter, r *http.Request) {
	fiscalYearID, ok := pathID(w, r, "fiscal year")
	if !ok {
		return
	}
	limit, offset := page(r)

	sheets, err := h.sheetUC.ListByFiscalYear(r.Context(), usecase.ListByFiscalYearInput{
		FiscalYearID: fiscalYearID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list balance sheets", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.BalanceSheetResponse]{
		Items:  dto.BalanceSheetsFromDomain(sheets),
		Limit:  limit,
		Offset: offset,
	})
}

// IncomeStatementService defines the behavior needed by IncomeStatementHandler.
type IncomeStatementService interface {
	Derive(input usecase.IncomeStatementInput) (*domain.IncomeStatement, error)
	Create(ctx context.Context, input usecase.IncomeStatementInput) (*domain.IncomeStatement, error)
	Update(ctx context.Context, id string, input usecase.IncomeStatementInput) (*domain.IncomeStatement, error)
	Get(ctx context.Context, id string) (*domain.IncomeStatement, error)
	ListByFiscalYear(ctx context.Context, input usecase.ListByFiscalYearInput) ([]*domain.IncomeStatement, error)
	Confirm(ctx context.Context, id string) (*domain.IncomeStatement, error)
}

// IncomeStatementHandler handles income statement requests.
type IncomeStatementHandler struct {
	statementUC IncomeStatementService
}

// NewIncomeStatementHandler creates a new IncomeStatementHandler.
func NewIncomeStatementHandler(statementUC IncomeStatementService) *IncomeStatementHandler {
	return &IncomeStatementHandler{statementUC: statementUC}
}

// Derive fills in the missing figure without storing anything.
func (h *IncomeStatementHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req dto.IncomeStatementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	statement, err := h.statementUC.Derive(req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to derive income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(statement))
}

// Create stores a new income statement.
func (h *IncomeStatementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.IncomeStatementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	statement, err := h.statementUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create income statement", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.IncomeStatementFromDomain(statement))
}

// Update changes an unconfirmed income statement.
func (h *IncomeStatementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "income statement")
	if !ok {
		return
	}

	var req dto.IncomeStatementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	statement, err := h.statementUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(statement))
}

// Get retrieves an income statement by ID.
func (h *IncomeStatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "income statement")
	if !ok {
		return
	}

	statement, err := h.statementUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(statement))
}

// Confirm locks an income statement against further changes.
func (h *IncomeStatementHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "income statement")
	if !ok {
		return
	}

	statement, err := h.statementUC.Confirm(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to confirm income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(statement))
}

// ListByFiscalYear lists the income statements of a fiscal year.
func (h *IncomeStatementHandler) ListByFiscalYear(w http.ResponseWriter, r *http.Request) {
	fiscalYearID, ok := pathID(w, r, "fiscal year")
	if !ok {
		return
	}
	limit, offset := page(r)

	statements, err := h.statementUC.ListByFiscalYear(r.Context(), usecase.ListByFiscalYearInput{
		FiscalYearID: fiscalYearID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list income statements", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.IncomeStatementResponse]{
		Items:  dto.IncomeStatementsFromDomain(statements),
		Limit:  limit,
		Offset: offset,
	})
}
