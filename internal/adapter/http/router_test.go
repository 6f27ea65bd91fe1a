package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/finledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finledger/internal/adapter/repository/redis"
	"github.com/iho/finledger/internal/app"
	"github.com/iho/finledger/internal/infrastructure/metrics"
)

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	uc := app.NewUseCases(app.MemoryRepositories(memory.NewStore()), postgresRepo.NewULIDGenerator(), nil, zerolog.Nop())

	cfg := RouterConfig{
		AccountHandler:         handler.NewAccountHandler(uc.Accounts),
		JournalHandler:         handler.NewJournalHandler(uc.Journal),
		LedgerEntryHandler:     handler.NewLedgerEntryHandler(uc.LedgerEntries),
		TransactionHandler:     handler.NewTransactionHandler(uc.Transactions),
		BalanceSheetHandler:    handler.NewBalanceSheetHandler(uc.BalanceSheets),
		IncomeStatementHandler: handler.NewIncomeStatementHandler(uc.IncomeStatements),
		LedgerHandler:          handler.NewLedgerHandler(uc.Ledger, uc.Reconciliation),
		HealthHandler:          handler.NewHealthHandler(),
		Logger:                 zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/metrics", "").Code)
}

func TestNewRouter_ReadinessReportsFailingCheck(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HealthHandler = handler.NewHealthHandler(handler.HealthCheck{
			Name:  "database",
			Check: func(context.Context) error { return assert.AnError },
		})
	}))

	rec := do(t, router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database")
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig()).(chi.Routes)

	routes := map[string]bool{}
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, want := range []string{
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/by-number/{number}",
		"GET /api/v1/accounts/{id}/reconciliation",
		"POST /api/v1/journal-entries/",
		"PUT /api/v1/journal-entries/{id}",
		"POST /api/v1/ledger-entries/",
		"POST /api/v1/transactions/",
		"POST /api/v1/balance-sheets/derive",
		"POST /api/v1/income-statements/{id}/confirm",
		"GET /api/v1/fiscal-years/{id}/balance-sheets",
		"GET /api/v1/ledger/consistency",
		"GET /api/v1/ledger/reconciliation",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = apimiddleware.NewRateLimiter(1, 1)
		cfg.Metrics = m
	}))

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitHits.WithLabelValues("health")))
}

func TestNewRouter_PostingFlow(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodPost, "/api/v1/accounts", `{"account_number":"1010","account_name":"Cash","type":"ASSET"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cash := decodeID(t, rec)

	rec = do(t, router, http.MethodPost, "/api/v1/accounts", `{"account_number":"4000","account_name":"Sales","type":"REVENUE"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sales := decodeID(t, rec)

	rec = do(t, router, http.MethodPost, "/api/v1/accounts", `{"account_number":"1010","account_name":"Cash again","type":"ASSET"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	entry := `{"description":"cash sale","lines":[` +
		`{"account_id":"` + cash + `","debit":"120.50"},` +
		`{"account_id":"` + sales + `","credit":"120.50"}]}`
	rec = do(t, router, http.MethodPost, "/api/v1/journal-entries", entry)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	unbalanced := `{"description":"typo","lines":[` +
		`{"account_id":"` + cash + `","debit":"10"},` +
		`{"account_id":"` + sales + `","credit":"9"}]}`
	rec = do(t, router, http.MethodPost, "/api/v1/journal-entries", unbalanced)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/by-number/1010", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var account struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "120.5", account.Balance)

	rec = do(t, router, http.MethodGet, "/api/v1/ledger/consistency", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"consistent"`)

	rec = do(t, router, http.MethodGet, "/api/v1/ledger/reconciliation", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_IdempotentReplay(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisRepo.NewIdempotencyStore(client)
	}))

	body := `{"account_number":"2000","account_name":"Payables","type":"LIABILITY"}`
	first := do(t, router, http.MethodPost, "/api/v1/accounts", body, apimiddleware.IdempotencyKeyHeader, "k-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := do(t, router, http.MethodPost, "/api/v1/accounts", body, apimiddleware.IdempotencyKeyHeader, "k-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(apimiddleware.ReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// a failed request frees its key
	bad := do(t, router, http.MethodPost, "/api/v1/accounts", `{"account_number":""}`, apimiddleware.IdempotencyKeyHeader, "k-2")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	retry := do(t, router, http.MethodPost, "/api/v1/accounts", `{"account_number":"2100","account_name":"Accruals","type":"LIABILITY"}`,
		apimiddleware.IdempotencyKeyHeader, "k-2")
	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Empty(t, retry.Header().Get(apimiddleware.ReplayHeader))
}

func TestResource(t *testing.T) {
	assert.Equal(t, "accounts", resource("/api/v1/accounts/abc"))
	assert.Equal(t, "ledger", resource("/api/v1/ledger/consistency"))
	assert.Equal(t, "health", resource("/health"))
	assert.Equal(t, "other", resource("/api/v1/unknown"))
	assert.Equal(t, "other", resource("/favicon.ico"))
}
