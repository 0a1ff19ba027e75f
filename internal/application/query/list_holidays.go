package query

import (
	"context"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST HOLIDAYS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListHolidaysQuery selects the holidays of one year.
type ListHolidaysQuery struct {
	// Year to list. Zero means the current year.
	Year int
}

// Validate normalizes the query parameters.
func (q *ListHolidaysQuery) Validate() error {
	if q.Year == 0 {
		q.Year = time.Now().UTC().Year()
	}
	if q.Year < holiday.MinYear || q.Year > holiday.MaxYear {
		return shared.NewDomainError("query", "ListHolidays",
			shared.ErrInvalidYear, "year outside the supported range")
	}
	return nil
}

// ListHolidaysHandler handles holiday listing requests.
type ListHolidaysHandler struct {
	holidayRepo holiday.Repository
}

// NewListHolidaysHandler creates a new handler.
func NewListHolidaysHandler(holidayRepo holiday.Repository) *ListHolidaysHandler {
	return &ListHolidaysHandler{holidayRepo: holidayRepo}
}

// Handle executes the query.
func (h *ListHolidaysHandler) Handle(ctx context.Context, query ListHolidaysQuery) ([]*holiday.Holiday, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	list, err := h.holidayRepo.ListByYear(ctx, query.Year)
	if err != nil {
		return nil, shared.WrapError("query", "ListHolidays", shared.ErrStoreUnavailable, "list holidays", err)
	}
	return list, nil
}
