package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// HOLIDAY CACHE
// Caches per-year holiday date sets in front of the PostgreSQL
// repository. Writes pass through and invalidate the affected year, so
// the cache sits entirely at the store boundary; the computation layer
// never knows it exists.
// ══════════════════════════════════════════════════════════════════════════════

const (
	holidayKeyPrefix = "holidays:year:"
	holidayTTL       = 12 * time.Hour
)

// CachedHolidayRepository decorates a holiday.Repository with a Redis
// cache for the DateSet lookup that backs every prediction.
type CachedHolidayRepository struct {
	inner holiday.Repository
	cache *Cache
}

// NewCachedHolidayRepository wraps inner with the cache. A nil cache
// turns the wrapper into a pass-through.
func NewCachedHolidayRepository(inner holiday.Repository, cache *Cache) *CachedHolidayRepository {
	return &CachedHolidayRepository{inner: inner, cache: cache}
}

func yearKey(year int) string {
	return fmt.Sprintf("%s%d", holidayKeyPrefix, year)
}

// UpsertByDate writes through and invalidates the holiday's year.
func (r *CachedHolidayRepository) UpsertByDate(ctx context.Context, h *holiday.Holiday) (*holiday.Holiday, error) {
	stored, err := r.inner.UpsertByDate(ctx, h)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, stored.Year)
	return stored, nil
}

// Create writes through and invalidates the holiday's year.
func (r *CachedHolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	if err := r.inner.Create(ctx, h); err != nil {
		return err
	}
	r.invalidate(ctx, h.Year)
	return nil
}

// Delete writes through. The holiday's year is unknown from the id
// alone, so every cached year is dropped.
func (r *CachedHolidayRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	if r.cache != nil {
		// Conservative: a deleted holiday is rare enough that a full
		// reload next read costs nothing.
		now := time.Now().UTC().Year()
		for year := now - 1; year <= now+2; year++ {
			r.invalidate(ctx, year)
		}
	}
	return nil
}

// ListByYear always reads through; listings are not on the hot path.
func (r *CachedHolidayRepository) ListByYear(ctx context.Context, year int) ([]*holiday.Holiday, error) {
	return r.inner.ListByYear(ctx, year)
}

// DateSet serves each year from the cache when possible and falls back
// to the store per missing year. Cache failures degrade to store reads.
func (r *CachedHolidayRepository) DateSet(ctx context.Context, years ...int) (calendar.DateSet, error) {
	merged := calendar.NewDateSet()
	var missing []int

	for _, year := range years {
		var dates []string
		err := r.cache.Get(ctx, yearKey(year), &dates)
		if err != nil {
			missing = append(missing, year)
			continue
		}
		for _, d := range dates {
			merged[d] = struct{}{}
		}
	}

	if len(missing) == 0 {
		return merged, nil
	}

	for _, year := range missing {
		set, err := r.inner.DateSet(ctx, year)
		if err != nil {
			return nil, err
		}

		dates := make([]string, 0, len(set))
		for d := range set {
			merged[d] = struct{}{}
			dates = append(dates, d)
		}

		// Population failure is not a read failure; the next call
		// falls back to the store again.
		_ = r.cache.Set(ctx, yearKey(year), dates, holidayTTL)
	}
	return merged, nil
}

// invalidate drops one cached year. Failures are ignored; stale
// entries expire with the TTL anyway.
func (r *CachedHolidayRepository) invalidate(ctx context.Context, year int) {
	_ = r.cache.Delete(ctx, yearKey(year))
}
