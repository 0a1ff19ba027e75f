package query

import (
	"context"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET WEEKLY SUMMARY QUERY
// Summarizes one ISO week (Monday through Sunday) of logged hours,
// with a per-day breakdown for the dashboard's week view.
// ══════════════════════════════════════════════════════════════════════════════

// GetWeeklySummaryQuery selects the week containing Date.
type GetWeeklySummaryQuery struct {
	// Date is any day inside the wanted week. Zero means today.
	Date time.Time
}

// Validate normalizes the query parameters.
func (q *GetWeeklySummaryQuery) Validate() error {
	if q.Date.IsZero() {
		q.Date = time.Now().UTC()
	}
	q.Date = calendar.Truncate(q.Date)
	return nil
}

// DailyHoursDTO is one day inside a weekly breakdown.
type DailyHoursDTO struct {
	Date            string  `json:"date"`
	Hours           float64 `json:"hours"`
	TaskDescription string  `json:"taskDescription"`
}

// WeeklySummaryDTO is the weekly report payload.
type WeeklySummaryDTO struct {
	// WeekNumber is the ISO 8601 week number of the queried date.
	WeekNumber int `json:"weekNumber"`

	// StartDate and EndDate bound the week in ISO format.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	TotalHours     float64 `json:"totalHours"`
	DaysWorked     int     `json:"daysWorked"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`

	// DailyBreakdown lists the work entries of the week in date order.
	DailyBreakdown []DailyHoursDTO `json:"dailyBreakdown"`
}

// GetWeeklySummaryHandler handles weekly summary requests.
type GetWeeklySummaryHandler struct {
	workLogRepo worklog.Repository
}

// NewGetWeeklySummaryHandler creates a new handler.
func NewGetWeeklySummaryHandler(workLogRepo worklog.Repository) *GetWeeklySummaryHandler {
	return &GetWeeklySummaryHandler{workLogRepo: workLogRepo}
}

// Handle executes the query.
func (h *GetWeeklySummaryHandler) Handle(ctx context.Context, query GetWeeklySummaryQuery) (*WeeklySummaryDTO, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetWeeklySummary", shared.ErrValidation, err.Error(), err)
	}

	start, end := calendar.WeekRange(query.Date)
	weekNumber := calendar.ISOWeek(query.Date)

	entries, err := h.workLogRepo.ListNormal(ctx, start, end)
	if err != nil {
		return nil, shared.WrapError("query", "GetWeeklySummary", shared.ErrStoreUnavailable, "list week entries", err)
	}

	dto := &WeeklySummaryDTO{
		WeekNumber:     weekNumber,
		StartDate:      calendar.ISO(start),
		EndDate:        calendar.ISO(end),
		DailyBreakdown: make([]DailyHoursDTO, 0, len(entries)),
	}

	for _, e := range entries {
		dto.TotalHours += e.CalculatedHours
		dto.DaysWorked++
		dto.DailyBreakdown = append(dto.DailyBreakdown, DailyHoursDTO{
			Date:            e.DateISO(),
			Hours:           e.CalculatedHours,
			TaskDescription: e.TaskDescription,
		})
	}

	dto.TotalHours = worklog.Round2(dto.TotalHours)
	if dto.DaysWorked > 0 {
		dto.AvgHoursPerDay = worklog.Round2(dto.TotalHours / float64(dto.DaysWorked))
	}

	return dto, nil
}
