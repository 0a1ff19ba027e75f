package worklog

import (
	"context"
	"time"
)

// ListFilter narrows and pages a work-log listing.
type ListFilter struct {
	// From/To bound the calendar date range (inclusive); zero means open.
	From time.Time
	To   time.Time

	// Page is 1-based; Limit caps the page size.
	Page  int
	Limit int
}

// Normalize applies listing defaults.
func (f *ListFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
}

// Repository defines the interface for work-log persistence.
// This interface is implemented by the infrastructure layer; the domain
// layer has no knowledge of the actual storage mechanism.
type Repository interface {
	// Create persists a new entry. A duplicate calendar date surfaces as a
	// conflict error from the store.
	Create(ctx context.Context, entry *Entry) error

	// Update persists changes to an existing entry.
	Update(ctx context.Context, entry *Entry) error

	// UpsertByDate creates the entry or replaces the one sharing its
	// calendar date. Used by the CSV import flow.
	UpsertByDate(ctx context.Context, entry *Entry) error

	// GetByID returns an entry by identifier.
	GetByID(ctx context.Context, id string) (*Entry, error)

	// GetByDate returns the entry for a calendar date, if any.
	GetByDate(ctx context.Context, date time.Time) (*Entry, error)

	// Delete removes an entry by identifier.
	Delete(ctx context.Context, id string) error

	// List returns a page of entries of any type, ordered by date
	// descending, plus the total count matching the filter.
	List(ctx context.Context, filter ListFilter) ([]*Entry, int, error)

	// ListAll returns every entry ordered by date ascending. Used by the
	// CSV export flow.
	ListAll(ctx context.Context) ([]*Entry, error)

	// ListNormal returns all NORMAL entries in the inclusive date range,
	// ordered by date ascending. Zero bounds leave the range open.
	ListNormal(ctx context.Context, from, to time.Time) ([]*Entry, error)

	// TotalNormalHours returns the sum of CalculatedHours over all NORMAL
	// entries.
	TotalNormalHours(ctx context.Context) (float64, error)

	// CountNormal returns the number of NORMAL entries.
	CountNormal(ctx context.Context) (int, error)
}
