package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// SQLSTATE codes of conflicts that succeed when the unit of work is rerun.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrLockNotAvailable     = "55P03"
)

// RetryConfig tunes a Retrier. Zero fields take the DefaultRetryConfig value.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig reruns a unit of work at most three more times.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:      3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// Retrier implements usecase.Retrier. Lock conflicts are retried with
// exponential backoff; every other error, domain rejections included,
// surfaces on the first attempt.
type Retrier struct {
	cfg     RetryConfig
	logger  zerolog.Logger
	onRetry func(sqlState string)
}

// NewRetrier creates a Retrier with DefaultRetryConfig.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return NewRetrierWithConfig(RetryConfig{}, logger)
}

// NewRetrierWithConfig creates a Retrier from cfg.
func NewRetrierWithConfig(cfg RetryConfig, logger zerolog.Logger) *Retrier {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultRetryConfig.MaxRetries
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultRetryConfig.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DefaultRetryConfig.MaxInterval
	}
	if cfg.MaxElapsedTime <= 0 {
		cfg.MaxElapsedTime = DefaultRetryConfig.MaxElapsedTime
	}

	return &Retrier{cfg: cfg, logger: logger}
}

// OnRetry registers a hook called with the SQLSTATE before every rerun.
func (r *Retrier) OnRetry(fn func(sqlState string)) *Retrier {
	r.onRetry = fn
	return r
}

// Retry runs operation until it succeeds, fails permanently, or the retry
// budget or ctx runs out.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.cfg.InitialInterval
	exp.MaxInterval = r.cfg.MaxInterval
	exp.MaxElapsedTime = r.cfg.MaxElapsedTime

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(r.cfg.MaxRetries)), ctx)

	return backoff.RetryNotify(func() error {
		err := operation()
		if err == nil {
			return nil
		}
		if _, ok := retryableState(err); !ok {
			return backoff.Permanent(err)
		}
		return err
	}, policy, r.notify)
}

func (r *Retrier) notify(err error, wait time.Duration) {
	state, _ := retryableState(err)

	r.logger.Warn().
		Err(err).
		Str("sqlstate", state).
		Dur("backoff", wait).
		Msg("transient database conflict, retrying")

	if r.onRetry != nil {
		r.onRetry(state)
	}
}

// retryableState returns the SQLSTATE of err when rerunning can fix it.
func retryableState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	switch pgErr.Code {
	case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable:
		return pgErr.Code, true
	}
	return "", false
}
