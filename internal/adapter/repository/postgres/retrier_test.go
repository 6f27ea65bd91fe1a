package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
)

func fastRetrier(maxRetries int) *Retrier {
	return NewRetrierWithConfig(RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
	}, zerolog.Nop())
}

func TestNewRetrier_Defaults(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	assert.Equal(t, DefaultRetryConfig, r.cfg)

	r = NewRetrierWithConfig(RetryConfig{MaxRetries: 7}, zerolog.Nop())
	assert.Equal(t, 7, r.cfg.MaxRetries)
	assert.Equal(t, DefaultRetryConfig.MaxInterval, r.cfg.MaxInterval)
}

func TestRetrier_RetriesLockConflicts(t *testing.T) {
	var states []string
	r := fastRetrier(3).OnRetry(func(state string) { states = append(states, state) })

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		switch attempts {
		case 1:
			return &pgconn.PgError{Code: pgErrDeadlock}
		case 2:
			return fmt.Errorf("lock accounts: %w", &pgconn.PgError{Code: pgErrLockNotAvailable})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []string{pgErrDeadlock, pgErrLockNotAvailable}, states)
}

func TestRetrier_DomainErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	err := fastRetrier(3).Retry(context.Background(), func() error {
		attempts++
		return fmt.Errorf("%w: debits 10, credits 9", domain.ErrUnbalancedEntry)
	})

	assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
	assert.Equal(t, 1, attempts)
}

func TestRetrier_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := fastRetrier(2).Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, pgErrSerializationFailure, pgErr.Code)
	assert.Equal(t, 3, attempts)
}

func TestRetrier_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := fastRetrier(5).Retry(ctx, func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryableState(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		state string
		ok    bool
	}{
		{name: "deadlock", err: &pgconn.PgError{Code: pgErrDeadlock}, state: pgErrDeadlock, ok: true},
		{name: "serialization", err: &pgconn.PgError{Code: pgErrSerializationFailure}, state: pgErrSerializationFailure, ok: true},
		{name: "lock timeout", err: &pgconn.PgError{Code: pgErrLockNotAvailable}, state: pgErrLockNotAvailable, ok: true},
		{name: "unique violation", err: &pgconn.PgError{Code: pgErrUniqueViolation}},
		{name: "plain error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, ok := retryableState(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.state, state)
		})
	}
}
