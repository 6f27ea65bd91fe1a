package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

type journalServiceStub struct {
	postFn   func(ctx context.Context, input usecase.JournalEntryInput) (*domain.JournalEntry, error)
	updateFn func(ctx context.Context, id string, input usecase.JournalEntryInput) (*domain.JournalEntry, error)
}

func (s *journalServiceStub) PostEntry(ctx context.Context, input usecase.JournalEntryInput) (*domain.JournalEntry, error) {
	return s.postFn(ctx, input)
}

func (s *journalServiceStub) UpdateEntry(ctx context.Context, id string, input usecase.JournalEntryInput) (*domain.JournalEntry, error) {
	return s.updateFn(ctx, id, input)
}

func (s *journalServiceStub) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return nil, domain.ErrJournalEntryNotFound
}

func (s *journalServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.JournalEntry, error) {
	return nil, nil
}

func TestJournalHandler_Create(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		postFn: func(ctx context.Context, input usecase.JournalEntryInput) (*domain.JournalEntry, error) {
			items := make([]domain.JournalItem, len(input.Lines))
			for i, l := range input.Lines {
				items[i] = domain.JournalItem{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Position: i}
			}
			return &domain.JournalEntry{ID: "je-1", Description: input.Description, Items: items}, nil
		},
	})

	body := `{"description":"rent","lines":[{"account_id":"exp","debit":"100"},{"account_id":"cash","credit":"100"}]}`
	req := httptest.NewRequest(http.MethodPost, "/journal-entries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.JournalEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "je-1", resp.ID)
	assert.Len(t, resp.Lines, 2)
	assert.True(t, resp.TotalDebits.Equal(decimal.NewFromInt(100)))
}

func TestJournalHandler_Create_UnbalancedIsUnprocessable(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		postFn: func(ctx context.Context, input usecase.JournalEntryInput) (*domain.JournalEntry, error) {
			return nil, fmt.Errorf("%w: debits 100, credits 90", domain.ErrUnbalancedEntry)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/journal-entries", strings.NewReader(`{"lines":[]}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestJournalHandler_Update_PassesID(t *testing.T) {
	var gotID string
	handler := NewJournalHandler(&journalServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.JournalEntryInput) (*domain.JournalEntry, error) {
			gotID = id
			return &domain.JournalEntry{ID: id}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/journal-entries/je-7", strings.NewReader(`{"lines":[]}`))
	req = setChiURLParam(req, "id", "je-7")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "je-7", gotID)
}

type transactionServiceStub struct {
	postFn func(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, error)
	listFn func(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error)
}

func (s *transactionServiceStub) Post(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, error) {
	return s.postFn(ctx, input)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return nil, domain.ErrTransactionNotFound
}

func (s *transactionServiceStub) ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func TestTransactionHandler_Create_SameAccount(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		postFn: func(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrSameAccount
		},
	})

	body := `{"source_account_id":"a","target_account_id":"a","amount":"10"}`
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/transactions/x", nil), "id", "x")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransactionHandler_ListByAccount(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error) {
			assert.Equal(t, "acc-1", input.AccountID)
			return []*domain.Transaction{{ID: "t1", Amount: decimal.NewFromInt(5)}}, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transactions", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ListResponse[*dto.TransactionResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "t1", resp.Items[0].ID)
}

type ledgerEntryServiceStub struct {
	recordFn func(ctx context.Context, input usecase.LedgerEntryInput) (*domain.LedgerEntry, error)
}

func (s *ledgerEntryServiceStub) Record(ctx context.Context, input usecase.LedgerEntryInput) (*domain.LedgerEntry, error) {
	return s.recordFn(ctx, input)
}

func (s *ledgerEntryServiceStub) Update(ctx context.Context, id string, input usecase.LedgerEntryInput) (*domain.LedgerEntry, error) {
	return nil, domain.ErrLedgerEntryNotFound
}

func (s *ledgerEntryServiceStub) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return nil, domain.ErrLedgerEntryNotFound
}

func (s *ledgerEntryServiceStub) ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.LedgerEntry, error) {
	return nil, domain.ErrAccountNotFound
}

func TestLedgerEntryHandler_Create_MissingAmount(t *testing.T) {
	handler := NewLedgerEntryHandler(&ledgerEntryServiceStub{
		recordFn: func(ctx context.Context, input usecase.LedgerEntryInput) (*domain.LedgerEntry, error) {
			assert.Nil(t, input.Amount)
			return nil, domain.ValidateLedgerAmount(input.Amount)
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger-entries", strings.NewReader(`{"account_id":"a","type":"DEBIT"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLedgerEntryHandler_Update_NotFound(t *testing.T) {
	handler := NewLedgerEntryHandler(&ledgerEntryServiceStub{})

	req := httptest.NewRequest(http.MethodPut, "/ledger-entries/le-1", strings.NewReader(`{"amount":"5"}`))
	req = setChiURLParam(req, "id", "le-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLedgerEntryHandler_ListByUnknownAccount(t *testing.T) {
	handler := NewLedgerEntryHandler(&ledgerEntryServiceStub{})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/nope/ledger-entries", nil), "id", "nope")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
