// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"math"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DASHBOARD STATS QUERY
// Aggregates the internship progress into a single dashboard view:
// hours logged against the contract total, average pace, and a
// completion-date prediction that walks the calendar skipping
// non-working days and holidays.
// ══════════════════════════════════════════════════════════════════════════════

// predictionHorizonDays caps the completion-date walk. A prediction
// further than ten years out means the inputs are degenerate, not that
// the intern has a very long internship.
const predictionHorizonDays = 3660

// GetDashboardStatsQuery contains the dashboard request parameters.
type GetDashboardStatsQuery struct {
	// Today anchors the prediction walk. Zero means the current date.
	Today time.Time
}

// Validate normalizes the query parameters.
func (q *GetDashboardStatsQuery) Validate() error {
	if q.Today.IsZero() {
		q.Today = time.Now().UTC()
	}
	q.Today = calendar.Truncate(q.Today)
	return nil
}

// DashboardStatsDTO is the dashboard payload.
type DashboardStatsDTO struct {
	// TotalHoursLogged is the sum of calculated hours over all entries.
	TotalHoursLogged float64 `json:"totalHoursLogged"`

	// TotalHoursRequired comes from the internship settings.
	TotalHoursRequired float64 `json:"totalHoursRequired"`

	// RemainingHours is required minus logged, floored at zero.
	RemainingHours float64 `json:"remainingHours"`

	// PercentComplete is clamped to [0, 100].
	PercentComplete float64 `json:"percentComplete"`

	// AvgHoursPerDay is logged hours over days worked. With no days
	// worked yet it falls back to the configured daily workload.
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`

	// DaysWorked counts work days with a logged entry.
	DaysWorked int `json:"daysWorked"`

	// RemainingWorkDays is the estimated number of work days left.
	RemainingWorkDays int `json:"remainingWorkDays"`

	// EstimatedCompletionDate is the predicted last work day in ISO
	// format. Nil when the required hours are already met.
	EstimatedCompletionDate *string `json:"estimatedCompletionDate"`

	// GeneratedAt is the time the stats were computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// GetDashboardStatsHandler handles dashboard requests.
type GetDashboardStatsHandler struct {
	workLogRepo  worklog.Repository
	holidayRepo  holiday.Repository
	settingsRepo settings.Repository
}

// NewGetDashboardStatsHandler creates a new handler.
func NewGetDashboardStatsHandler(
	workLogRepo worklog.Repository,
	holidayRepo holiday.Repository,
	settingsRepo settings.Repository,
) *GetDashboardStatsHandler {
	return &GetDashboardStatsHandler{
		workLogRepo:  workLogRepo,
		holidayRepo:  holidayRepo,
		settingsRepo: settingsRepo,
	}
}

// Handle executes the query.
func (h *GetDashboardStatsHandler) Handle(ctx context.Context, query GetDashboardStatsQuery) (*DashboardStatsDTO, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetDashboardStats", shared.ErrValidation, err.Error(), err)
	}

	cfg, err := h.settingsRepo.Get(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetDashboardStats", shared.ErrStoreUnavailable, "load settings", err)
	}

	logged, err := h.workLogRepo.TotalNormalHours(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetDashboardStats", shared.ErrStoreUnavailable, "sum logged hours", err)
	}

	daysWorked, err := h.workLogRepo.CountNormal(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetDashboardStats", shared.ErrStoreUnavailable, "count work days", err)
	}

	required := cfg.TotalRequiredHours
	remaining := required - logged
	if remaining < 0 {
		remaining = 0
	}

	var percent float64
	if required > 0 {
		percent = logged / required * 100
		if percent > 100 {
			percent = 100
		}
	}

	avg := cfg.DailyWorkHours
	if daysWorked > 0 {
		avg = logged / float64(daysWorked)
	}

	dto := &DashboardStatsDTO{
		TotalHoursLogged:   worklog.Round2(logged),
		TotalHoursRequired: worklog.Round2(required),
		RemainingHours:     worklog.Round2(remaining),
		PercentComplete:    worklog.Round2(percent),
		AvgHoursPerDay:     worklog.Round2(avg),
		DaysWorked:         daysWorked,
		GeneratedAt:        time.Now().UTC(),
	}

	if remaining == 0 {
		return dto, nil
	}

	if avg <= 0 {
		return nil, shared.NewDomainError("query", "GetDashboardStats",
			shared.ErrNoProgressBaseline,
			"no average pace available to predict completion")
	}

	dto.RemainingWorkDays = int(math.Ceil(remaining / avg))

	completion, err := h.predictCompletionDate(ctx, query.Today, dto.RemainingWorkDays, cfg.WorkingDays)
	if err != nil {
		return nil, err
	}
	iso := calendar.ISO(completion)
	dto.EstimatedCompletionDate = &iso

	return dto, nil
}

// predictCompletionDate walks the calendar one day at a time starting
// tomorrow, counting only days that fall on a configured working
// weekday and are not holidays. The holiday set covers the current and
// next year, matching the scheduler's seeding horizon.
func (h *GetDashboardStatsHandler) predictCompletionDate(ctx context.Context, today time.Time, workDays int, workingDays []int) (time.Time, error) {
	year := today.Year()
	holidays, err := h.holidayRepo.DateSet(ctx, year, year+1)
	if err != nil {
		return time.Time{}, shared.WrapError("query", "GetDashboardStats", shared.ErrStoreUnavailable, "load holiday calendar", err)
	}

	cursor := today
	counted := 0
	for steps := 0; counted < workDays; steps++ {
		if steps >= predictionHorizonDays {
			return time.Time{}, shared.NewDomainError("query", "GetDashboardStats",
				shared.ErrPredictionHorizon,
				"completion date falls beyond the prediction horizon")
		}
		cursor = cursor.AddDate(0, 0, 1)
		if calendar.IsWorkDay(cursor, holidays, workingDays) {
			counted++
		}
	}

	return cursor, nil
}
