package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// ConsistencyChecker defines the trial-balance check.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// Reconciler defines stored-versus-replayed balance checks.
type Reconciler interface {
	ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error)
	ReconcileAll(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC    ConsistencyChecker
	reconcileUC Reconciler
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC ConsistencyChecker, reconcileUC Reconciler) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, reconcileUC: reconcileUC}
}

// CheckConsistency checks that journal debits equal journal credits.
// An inconsistent ledger answers 409 with the full report.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentLedger) && report != nil {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromReport(report))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}

// ReconcileAll compares every account's balance with its replayed postings.
func (h *LedgerHandler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.ReconcileAll(r.Context())
	if err != nil {
		writeDomainError(w, "failed to reconcile accounts", err)
		return
	}

	status := http.StatusOK
	if len(report.Discrepancies) > 0 {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ReconciliationFromReport(report))
}

// ReconcileAccount reconciles a single account.
func (h *LedgerHandler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account")
	if !ok {
		return
	}

	result, err := h.reconcileUC.ReconcileAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to reconcile account", err)
		return
	}

	status := http.StatusOK
	if !result.IsReconciled {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ReconciliationFromResult(result))
}
