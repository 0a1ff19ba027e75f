// Package holiday contains the Portuguese public-holiday model and the
// generator that derives each year's calendar from the date of Easter.
package holiday

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// Year bounds accepted by the generator. The Gregorian computus is
// meaningless before the calendar reform and the hub has no use for
// dates centuries ahead.
const (
	MinYear = 1583
	MaxYear = 4099
)

// Holiday is a single public (or custom) holiday date.
type Holiday struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
	Movable bool      `json:"movable"`
	Year    int       `json:"year"`
}

// New creates a holiday with a fresh identifier. Year is derived from the
// date, never supplied.
func New(date time.Time, name string, movable bool) *Holiday {
	d := calendar.Truncate(date)
	return &Holiday{
		ID:      uuid.NewString(),
		Date:    d,
		Name:    name,
		Movable: movable,
		Year:    d.Year(),
	}
}

// DateISO returns the holiday's calendar date as an ISO string.
func (h *Holiday) DateISO() string {
	return calendar.ISO(h.Date)
}

// Repository defines the interface for holiday persistence.
type Repository interface {
	// UpsertByDate inserts the holiday or updates the row sharing its
	// calendar date. Generation is idempotent per year.
	UpsertByDate(ctx context.Context, h *Holiday) (*Holiday, error)

	// Create inserts a custom holiday; a duplicate date is a conflict.
	Create(ctx context.Context, h *Holiday) error

	// Delete removes a holiday by identifier.
	Delete(ctx context.Context, id string) error

	// ListByYear returns the holidays of one year ordered by date.
	ListByYear(ctx context.Context, year int) ([]*Holiday, error)

	// DateSet returns the ISO date strings of all holidays in the given
	// years, for work-day membership testing.
	DateSet(ctx context.Context, years ...int) (calendar.DateSet, error)
}
