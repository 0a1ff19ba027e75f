package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

type stubHolidayRepo struct {
	byYear map[int][]string

	dateSetCalls int
}

func (s *stubHolidayRepo) UpsertByDate(_ context.Context, h *holiday.Holiday) (*holiday.Holiday, error) {
	return h, nil
}

func (s *stubHolidayRepo) Create(context.Context, *holiday.Holiday) error { return nil }
func (s *stubHolidayRepo) Delete(context.Context, string) error           { return nil }

func (s *stubHolidayRepo) ListByYear(context.Context, int) ([]*holiday.Holiday, error) {
	return nil, nil
}

func (s *stubHolidayRepo) DateSet(_ context.Context, years ...int) (calendar.DateSet, error) {
	s.dateSetCalls++
	set := calendar.NewDateSet()
	for _, y := range years {
		for _, d := range s.byYear[y] {
			set[d] = struct{}{}
		}
	}
	return set, nil
}

func TestCachedDateSet_NilCacheFallsBackToStore(t *testing.T) {
	inner := &stubHolidayRepo{byYear: map[int][]string{
		2024: {"2024-01-01", "2024-12-25"},
		2025: {"2025-04-18"},
	}}
	repo := NewCachedHolidayRepository(inner, nil)

	set, err := repo.DateSet(context.Background(), 2024, 2025)
	require.NoError(t, err)

	assert.Len(t, set, 3)
	assert.Contains(t, set, "2024-12-25")
	assert.Contains(t, set, "2025-04-18")
	assert.Equal(t, 2, inner.dateSetCalls)

	// A disabled cache never serves a hit, so every call reads the store.
	_, err = repo.DateSet(context.Background(), 2024, 2025)
	require.NoError(t, err)
	assert.Equal(t, 4, inner.dateSetCalls)
}
