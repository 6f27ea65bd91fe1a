package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler         *handler.AccountHandler
	JournalHandler         *handler.JournalHandler
	LedgerEntryHandler     *handler.LedgerEntryHandler
	TransactionHandler     *handler.TransactionHandler
	BalanceSheetHandler    *handler.BalanceSheetHandler
	IncomeStatementHandler *handler.IncomeStatementHandler
	LedgerHandler          *handler.LedgerHandler
	HealthHandler          *handler.HealthHandler

	Logger             zerolog.Logger
	Metrics            *metrics.Metrics
	MetricsHandler     http.Handler
	RateLimiter        *middleware.RateLimiter
	CORSAllowedOrigins []string
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.IdempotencyKeyHeader},
			ExposedHeaders: []string{middleware.ReplayHeader},
			MaxAge:         300,
		}))
	}
	if cfg.RateLimiter != nil {
		if cfg.Metrics != nil {
			cfg.RateLimiter.OnLimit(func(req *http.Request) {
				cfg.Metrics.RateLimitHits.WithLabelValues(resource(req.URL.Path)).Inc()
			})
		}
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/by-number/{number}", cfg.AccountHandler.GetByNumber)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/ledger-entries", cfg.LedgerEntryHandler.ListByAccount)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/reconciliation", cfg.LedgerHandler.ReconcileAccount)
		})

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.Create)
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/{id}", cfg.JournalHandler.Get)
			r.Put("/{id}", cfg.JournalHandler.Update)
		})

		// Ledger entries
		r.Route("/ledger-entries", func(r chi.Router) {
			r.Post("/", cfg.LedgerEntryHandler.Create)
			r.Get("/{id}", cfg.LedgerEntryHandler.Get)
			r.Put("/{id}", cfg.LedgerEntryHandler.Update)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
		})

		// Balance sheets
		r.Route("/balance-sheets", func(r chi.Router) {
			r.Post("/", cfg.BalanceSheetHandler.Create)
			r.Post("/derive", cfg.BalanceSheetHandler.Derive)
			r.Get("/{id}", cfg.BalanceSheetHandler.Get)
			r.Put("/{id}", cfg.BalanceSheetHandler.Update)
			r.Post("/{id}/confirm", cfg.BalanceSheetHandler.Confirm)
		})

		// Income statements
		r.Route("/income-statements", func(r chi.Router) {
			r.Post("/", cfg.IncomeStatementHandler.Create)
			r.Post("/derive", cfg.IncomeStatementHandler.Derive)
			r.Get("/{id}", cfg.IncomeStatementHandler.Get)
			r.Put("/{id}", cfg.IncomeStatementHandler.Update)
			r.Post("/{id}/confirm", cfg.IncomeStatementHandler.Confirm)
		})

		r.Route("/fiscal-years/{id}", func(r chi.Router) {
			r.Get("/balance-sheets", cfg.BalanceSheetHandler.ListByFiscalYear)
			r.Get("/income-statements", cfg.IncomeStatementHandler.ListByFiscalYear)
		})

		// Ledger-wide checks
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
			r.Get("/reconciliation", cfg.LedgerHandler.ReconcileAll)
		})
	})

	return r
}

var resources = map[string]bool{
	"accounts": true, "journal-entries": true, "ledger-entries": true,
	"transactions": true, "balance-sheets": true, "income-statements": true,
	"fiscal-years": true, "ledger": true,
}

// resource returns a bounded label for a request path: the API resource
// name, or "other".
func resource(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "api" && resources[parts[2]] {
		return parts[2]
	}
	if len(parts) == 1 && (parts[0] == "health" || parts[0] == "ready" || parts[0] == "metrics") {
		return parts[0]
	}
	return "other"
}
