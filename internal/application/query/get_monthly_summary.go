package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MONTHLY SUMMARY QUERY
// Summarizes one calendar month of logged hours, grouped into ISO
// weeks for the month view chart.
// ══════════════════════════════════════════════════════════════════════════════

// GetMonthlySummaryQuery selects a calendar month.
type GetMonthlySummaryQuery struct {
	// Year and Month select the month. Zero values mean the current month.
	Year  int
	Month time.Month
}

// Validate normalizes the query parameters.
func (q *GetMonthlySummaryQuery) Validate() error {
	now := time.Now().UTC()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = now.Month()
	}
	if q.Month < time.January || q.Month > time.December {
		return shared.NewDomainError("query", "GetMonthlySummary",
			shared.ErrValueOutOfRange,
			fmt.Sprintf("month %d is out of range", q.Month))
	}
	return nil
}

// WeekHoursDTO is one ISO week inside a monthly breakdown.
type WeekHoursDTO struct {
	Week  int     `json:"week"`
	Hours float64 `json:"hours"`
	Days  int     `json:"days"`
}

// MonthlySummaryDTO is the monthly report payload.
type MonthlySummaryDTO struct {
	// Month is the queried month in YYYY-MM format.
	Month string `json:"month"`

	TotalHours     float64 `json:"totalHours"`
	DaysWorked     int     `json:"daysWorked"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`

	// WeeklyBreakdown lists the ISO weeks touched by the month in
	// ascending week order.
	WeeklyBreakdown []WeekHoursDTO `json:"weeklyBreakdown"`
}

// GetMonthlySummaryHandler handles monthly summary requests.
type GetMonthlySummaryHandler struct {
	workLogRepo worklog.Repository
}

// NewGetMonthlySummaryHandler creates a new handler.
func NewGetMonthlySummaryHandler(workLogRepo worklog.Repository) *GetMonthlySummaryHandler {
	return &GetMonthlySummaryHandler{workLogRepo: workLogRepo}
}

// Handle executes the query.
func (h *GetMonthlySummaryHandler) Handle(ctx context.Context, query GetMonthlySummaryQuery) (*MonthlySummaryDTO, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	start, end := calendar.MonthRange(query.Year, int(query.Month))

	entries, err := h.workLogRepo.ListNormal(ctx, start, end)
	if err != nil {
		return nil, shared.WrapError("query", "GetMonthlySummary", shared.ErrStoreUnavailable, "list month entries", err)
	}

	dto := &MonthlySummaryDTO{
		Month: fmt.Sprintf("%04d-%02d", query.Year, int(query.Month)),
	}

	byWeek := make(map[int]*WeekHoursDTO)
	for _, e := range entries {
		dto.TotalHours += e.CalculatedHours
		dto.DaysWorked++

		week := calendar.ISOWeek(e.Date)
		w, ok := byWeek[week]
		if !ok {
			w = &WeekHoursDTO{Week: week}
			byWeek[week] = w
		}
		w.Hours += e.CalculatedHours
		w.Days++
	}

	dto.TotalHours = worklog.Round2(dto.TotalHours)
	if dto.DaysWorked > 0 {
		dto.AvgHoursPerDay = worklog.Round2(dto.TotalHours / float64(dto.DaysWorked))
	}

	dto.WeeklyBreakdown = make([]WeekHoursDTO, 0, len(byWeek))
	for _, w := range byWeek {
		w.Hours = worklog.Round2(w.Hours)
		dto.WeeklyBreakdown = append(dto.WeeklyBreakdown, *w)
	}
	sort.Slice(dto.WeeklyBreakdown, func(i, j int) bool {
		return dto.WeeklyBreakdown[i].Week < dto.WeeklyBreakdown[j].Week
	})

	return dto, nil
}
