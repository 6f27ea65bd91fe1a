package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/finledger/internal/domain"
)

// CachedFiscalYearRepository serves fiscal years from Cache and falls back to
// the wrapped repository. Cache failures are logged and never fail a lookup.
type CachedFiscalYearRepository struct {
	repo   FiscalYearRepository
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedFiscalYearRepository wraps repo with cache.
func NewCachedFiscalYearRepository(repo FiscalYearRepository, cache Cache, logger zerolog.Logger) *CachedFiscalYearRepository {
	return &CachedFiscalYearRepository{repo: repo, cache: cache, ttl: FiscalYearCacheTTL, logger: logger}
}

// WithTTL overrides how long entries stay cached. Non-positive values are ignored.
func (r *CachedFiscalYearRepository) WithTTL(ttl time.Duration) *CachedFiscalYearRepository {
	if ttl > 0 {
		r.ttl = ttl
	}
	return r
}

func fiscalYearKey(id string) string {
	return "fiscal_year:" + id
}

// GetByID returns the fiscal year, reading through the cache.
func (r *CachedFiscalYearRepository) GetByID(ctx context.Context, id string) (*domain.FiscalYear, error) {
	key := fiscalYearKey(id)

	raw, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var fy domain.FiscalYear
		if err := json.Unmarshal(raw, &fy); err == nil {
			return &fy, nil
		}
		r.logger.Warn().Str("fiscal_year_id", id).Msg("discarding undecodable cached fiscal year")
	case !errors.Is(err, ErrCacheMiss):
		r.logger.Warn().Err(err).Str("fiscal_year_id", id).Msg("fiscal year cache read failed")
	}

	fy, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(fy); err == nil {
		if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
			r.logger.Warn().Err(err).Str("fiscal_year_id", id).Msg("fiscal year cache write failed")
		}
	}

	return fy, nil
}

// Invalidate drops the cached copy of a fiscal year.
func (r *CachedFiscalYearRepository) Invalidate(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, fiscalYearKey(id))
}
