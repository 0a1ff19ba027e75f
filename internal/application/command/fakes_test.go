package command

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

// memWorkLogRepo is a minimal in-memory worklog.Repository for command tests.
type memWorkLogRepo struct {
	entries map[string]*worklog.Entry
}

func newMemWorkLogRepo() *memWorkLogRepo {
	return &memWorkLogRepo{entries: make(map[string]*worklog.Entry)}
}

func (r *memWorkLogRepo) Create(_ context.Context, entry *worklog.Entry) error {
	for _, e := range r.entries {
		if calendar.SameDay(e.Date, entry.Date) {
			return shared.ErrDuplicateDate
		}
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *memWorkLogRepo) Update(_ context.Context, entry *worklog.Entry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return shared.ErrWorkLogNotFound
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *memWorkLogRepo) UpsertByDate(_ context.Context, entry *worklog.Entry) error {
	for id, e := range r.entries {
		if calendar.SameDay(e.Date, entry.Date) {
			delete(r.entries, id)
			break
		}
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *memWorkLogRepo) GetByID(_ context.Context, id string) (*worklog.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, shared.ErrWorkLogNotFound
	}
	return e, nil
}

func (r *memWorkLogRepo) GetByDate(_ context.Context, date time.Time) (*worklog.Entry, error) {
	for _, e := range r.entries {
		if calendar.SameDay(e.Date, date) {
			return e, nil
		}
	}
	return nil, shared.ErrWorkLogNotFound
}

func (r *memWorkLogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.entries[id]; !ok {
		return shared.ErrWorkLogNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memWorkLogRepo) List(_ context.Context, filter worklog.ListFilter) ([]*worklog.Entry, int, error) {
	all, _ := r.ListAll(context.Background())
	return all, len(all), nil
}

func (r *memWorkLogRepo) ListAll(_ context.Context) ([]*worklog.Entry, error) {
	out := make([]*worklog.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memWorkLogRepo) ListNormal(_ context.Context, _, _ time.Time) ([]*worklog.Entry, error) {
	var out []*worklog.Entry
	all, _ := r.ListAll(context.Background())
	for _, e := range all {
		if e.IsNormal() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memWorkLogRepo) TotalNormalHours(_ context.Context) (float64, error) {
	var total float64
	for _, e := range r.entries {
		if e.IsNormal() {
			total += e.CalculatedHours
		}
	}
	return total, nil
}

func (r *memWorkLogRepo) CountNormal(_ context.Context) (int, error) {
	count := 0
	for _, e := range r.entries {
		if e.IsNormal() {
			count++
		}
	}
	return count, nil
}

// memHolidayRepo is a minimal in-memory holiday.Repository.
type memHolidayRepo struct {
	holidays map[string]*holiday.Holiday // keyed by ISO date
	upserts  int
}

func newMemHolidayRepo() *memHolidayRepo {
	return &memHolidayRepo{holidays: make(map[string]*holiday.Holiday)}
}

func (r *memHolidayRepo) UpsertByDate(_ context.Context, h *holiday.Holiday) (*holiday.Holiday, error) {
	r.upserts++
	if existing, ok := r.holidays[h.DateISO()]; ok {
		existing.Name = h.Name
		existing.Movable = h.Movable
		return existing, nil
	}
	r.holidays[h.DateISO()] = h
	return h, nil
}

func (r *memHolidayRepo) Create(_ context.Context, h *holiday.Holiday) error {
	if _, ok := r.holidays[h.DateISO()]; ok {
		return shared.ErrHolidayExists
	}
	r.holidays[h.DateISO()] = h
	return nil
}

func (r *memHolidayRepo) Delete(_ context.Context, id string) error {
	for key, h := range r.holidays {
		if h.ID == id {
			delete(r.holidays, key)
			return nil
		}
	}
	return shared.ErrHolidayNotFound
}

func (r *memHolidayRepo) ListByYear(_ context.Context, year int) ([]*holiday.Holiday, error) {
	var out []*holiday.Holiday
	for _, h := range r.holidays {
		if h.Year == year {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memHolidayRepo) DateSet(_ context.Context, years ...int) (calendar.DateSet, error) {
	set := calendar.NewDateSet()
	for _, h := range r.holidays {
		for _, y := range years {
			if h.Year == y {
				set.Add(h.Date)
			}
		}
	}
	return set, nil
}

// memSettingsRepo is a minimal in-memory settings.Repository.
type memSettingsRepo struct {
	current *settings.Settings
	saves   int
}

func (r *memSettingsRepo) Get(_ context.Context) (*settings.Settings, error) {
	if r.current == nil {
		r.current = settings.Default()
	}
	return r.current, nil
}

func (r *memSettingsRepo) Save(_ context.Context, s *settings.Settings) error {
	r.current = s
	r.saves++
	return nil
}
