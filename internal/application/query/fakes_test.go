package query

import (
	"context"
	"sort"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// memWorkLogRepo is an in-memory worklog.Repository keyed by entry ID.
type memWorkLogRepo struct {
	entries map[string]*worklog.Entry
}

func newMemWorkLogRepo(entries ...*worklog.Entry) *memWorkLogRepo {
	r := &memWorkLogRepo{entries: make(map[string]*worklog.Entry)}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
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

func (r *memWorkLogRepo) sorted() []*worklog.Entry {
	out := make([]*worklog.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *memWorkLogRepo) List(_ context.Context, filter worklog.ListFilter) ([]*worklog.Entry, int, error) {
	filter.Normalize()
	var matched []*worklog.Entry
	for _, e := range r.sorted() {
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		matched = append(matched, e)
	}
	// Date descending, like the store.
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	total := len(matched)
	offset := (filter.Page - 1) * filter.Limit
	if offset >= total {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *memWorkLogRepo) ListAll(_ context.Context) ([]*worklog.Entry, error) {
	return r.sorted(), nil
}

func (r *memWorkLogRepo) ListNormal(_ context.Context, from, to time.Time) ([]*worklog.Entry, error) {
	var out []*worklog.Entry
	for _, e := range r.sorted() {
		if !e.IsNormal() {
			continue
		}
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		out = append(out, e)
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

// memHolidayRepo is an in-memory holiday.Repository.
type memHolidayRepo struct {
	holidays map[string]*holiday.Holiday // keyed by ISO date
}

func newMemHolidayRepo(holidays ...*holiday.Holiday) *memHolidayRepo {
	r := &memHolidayRepo{holidays: make(map[string]*holiday.Holiday)}
	for _, h := range holidays {
		r.holidays[h.DateISO()] = h
	}
	return r
}

func (r *memHolidayRepo) UpsertByDate(_ context.Context, h *holiday.Holiday) (*holiday.Holiday, error) {
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

// memSettingsRepo is an in-memory settings.Repository.
type memSettingsRepo struct {
	current *settings.Settings
}

func newMemSettingsRepo(s *settings.Settings) *memSettingsRepo {
	return &memSettingsRepo{current: s}
}

func (r *memSettingsRepo) Get(_ context.Context) (*settings.Settings, error) {
	if r.current == nil {
		r.current = settings.Default()
	}
	return r.current, nil
}

func (r *memSettingsRepo) Save(_ context.Context, s *settings.Settings) error {
	r.current = s
	return nil
}

// normalEntry builds a validated NORMAL entry with the given span.
func normalEntry(date time.Time, start, end string, task string) *worklog.Entry {
	s := worklog.MustClockTime(start)
	e := worklog.MustClockTime(end)
	entry := worklog.NewEntry(date, worklog.TypeNormal)
	entry.StartTime = &s
	entry.EndTime = &e
	entry.TaskDescription = task
	entry.RecalculateHours()
	return entry
}
