package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/finledger/internal/domain"
)

// Metrics holds all Prometheus metrics and implements usecase.Metrics.
type Metrics struct {
	// Posting metrics
	PostingsCompleted *prometheus.CounterVec
	PostingsRejected  *prometheus.CounterVec
	IntegrityWarnings *prometheus.CounterVec
	DBRetries         *prometheus.CounterVec

	// API metrics
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PostingsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_postings_completed_total",
				Help: "Postings committed, by operation",
			},
			[]string{"operation"},
		),
		PostingsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_postings_rejected_total",
				Help: "Postings rejected or failed, by operation and reason",
			},
			[]string{"operation", "reason"},
		),
		IntegrityWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_integrity_warnings_total",
				Help: "Stored records that failed their load-time integrity check",
			},
			[]string{"resource"},
		),
		DBRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_db_retries_total",
				Help: "Units of work rerun after a lock conflict, by SQLSTATE",
			},
			[]string{"sqlstate"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finledger_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}

// PostingCompleted counts a committed posting.
func (m *Metrics) PostingCompleted(operation string) {
	m.PostingsCompleted.WithLabelValues(operation).Inc()
}

// PostingRejected counts a posting that did not commit.
func (m *Metrics) PostingRejected(operation string, err error) {
	m.PostingsRejected.WithLabelValues(operation, Reason(err)).Inc()
}

// IntegrityWarning counts a record that failed its load-time check.
func (m *Metrics) IntegrityWarning(resource string) {
	m.IntegrityWarnings.WithLabelValues(resource).Inc()
}

// DBRetry counts a unit of work rerun after a conflict.
func (m *Metrics) DBRetry(sqlState string) {
	m.DBRetries.WithLabelValues(sqlState).Inc()
}

var reasons = []struct {
	err   error
	label string
}{
	{domain.ErrUnbalancedEntry, "unbalanced_entry"},
	{domain.ErrInvalidLine, "invalid_line"},
	{domain.ErrInvalidAmount, "invalid_amount"},
	{domain.ErrSameAccount, "same_account"},
	{domain.ErrInsolvent, "insolvent"},
	{domain.ErrAlreadyConfirmed, "already_confirmed"},
	{domain.ErrAccountNotFound, "not_found"},
	{domain.ErrFiscalYearNotFound, "not_found"},
	{domain.ErrUserNotFound, "not_found"},
	{domain.ErrJournalEntryNotFound, "not_found"},
	{domain.ErrLedgerEntryNotFound, "not_found"},
	{domain.ErrBalanceSheetNotFound, "not_found"},
	{domain.ErrIncomeStatementNotFound, "not_found"},
	{domain.ErrValidation, "validation"},
}

// Reason maps an error to a low-cardinality label value.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "internal"
}
