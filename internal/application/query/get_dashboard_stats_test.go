package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

func dashboardHandler(workLogs *memWorkLogRepo, holidays *memHolidayRepo, cfg *settings.Settings) *GetDashboardStatsHandler {
	return NewGetDashboardStatsHandler(workLogs, holidays, newMemSettingsRepo(cfg))
}

func testSettings(required, daily float64) *settings.Settings {
	s := settings.Default()
	s.TotalRequiredHours = required
	s.DailyWorkHours = daily
	return s
}

func TestDashboard_AggregatesTotals(t *testing.T) {
	// Three 7-hour days against a 640-hour contract.
	workLogs := newMemWorkLogRepo(
		normalEntry(calendar.Date(2024, 6, 3), "09:00", "16:00", "API"),
		normalEntry(calendar.Date(2024, 6, 4), "09:00", "16:00", "API"),
		normalEntry(calendar.Date(2024, 6, 5), "09:00", "16:00", "API"),
	)
	h := dashboardHandler(workLogs, newMemHolidayRepo(), testSettings(640, 7))

	dto, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.NoError(t, err)

	assert.Equal(t, 21.0, dto.TotalHoursLogged)
	assert.Equal(t, 640.0, dto.TotalHoursRequired)
	assert.Equal(t, 619.0, dto.RemainingHours)
	assert.Equal(t, 3, dto.DaysWorked)
	assert.Equal(t, 7.0, dto.AvgHoursPerDay)
	assert.InDelta(t, 3.28, dto.PercentComplete, 0.01)
	assert.GreaterOrEqual(t, dto.PercentComplete, 0.0)
	assert.LessOrEqual(t, dto.PercentComplete, 100.0)
	// 619 remaining at 7 hours/day is 89 work days.
	assert.Equal(t, 89, dto.RemainingWorkDays)
	require.NotNil(t, dto.EstimatedCompletionDate)
}

func TestDashboard_PredictionSkipsWeekendsAndHolidays(t *testing.T) {
	// 7 hours logged, 14 remaining: exactly 2 more work days at the
	// current pace. From Thursday 2024-06-06 those are Friday 06-07 and,
	// with Monday 06-10 a holiday (Dia de Portugal), Tuesday 06-11.
	workLogs := newMemWorkLogRepo(
		normalEntry(calendar.Date(2024, 6, 5), "09:00", "16:00", "API"),
	)
	holidays := newMemHolidayRepo(holiday.New(calendar.Date(2024, 6, 10), "Dia de Portugal", false))
	h := dashboardHandler(workLogs, holidays, testSettings(21, 7))

	dto, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 6)})
	require.NoError(t, err)

	assert.Equal(t, 2, dto.RemainingWorkDays)
	require.NotNil(t, dto.EstimatedCompletionDate)
	assert.Equal(t, "2024-06-11", *dto.EstimatedCompletionDate)
}

func TestDashboard_CompleteInternshipHasNoPrediction(t *testing.T) {
	workLogs := newMemWorkLogRepo(
		normalEntry(calendar.Date(2024, 6, 3), "09:00", "16:00", "API"),
		normalEntry(calendar.Date(2024, 6, 4), "09:00", "16:00", "API"),
	)
	h := dashboardHandler(workLogs, newMemHolidayRepo(), testSettings(14, 7))

	dto, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.NoError(t, err)

	assert.Equal(t, 100.0, dto.PercentComplete)
	assert.Zero(t, dto.RemainingHours)
	assert.Zero(t, dto.RemainingWorkDays)
	assert.Nil(t, dto.EstimatedCompletionDate)
}

func TestDashboard_OverLoggedClampsAtHundredPercent(t *testing.T) {
	workLogs := newMemWorkLogRepo(
		normalEntry(calendar.Date(2024, 6, 3), "09:00", "17:00", "API"),
		normalEntry(calendar.Date(2024, 6, 4), "09:00", "17:00", "API"),
	)
	h := dashboardHandler(workLogs, newMemHolidayRepo(), testSettings(10, 7))

	dto, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.NoError(t, err)

	assert.Equal(t, 100.0, dto.PercentComplete)
	assert.Zero(t, dto.RemainingHours)
	assert.Nil(t, dto.EstimatedCompletionDate)
}

func TestDashboard_EmptyLogFallsBackToConfiguredPace(t *testing.T) {
	h := dashboardHandler(newMemWorkLogRepo(), newMemHolidayRepo(), testSettings(70, 7))

	dto, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.NoError(t, err)

	assert.Zero(t, dto.TotalHoursLogged)
	assert.Zero(t, dto.DaysWorked)
	assert.Equal(t, 7.0, dto.AvgHoursPerDay)
	assert.Equal(t, 10, dto.RemainingWorkDays)
	require.NotNil(t, dto.EstimatedCompletionDate)
}

func TestDashboard_NoBaselineIsAnError(t *testing.T) {
	// No entries and a zero daily workload: no pace to predict with.
	h := dashboardHandler(newMemWorkLogRepo(), newMemHolidayRepo(), testSettings(640, 0))

	_, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNoProgressBaseline)
}

func TestDashboard_HorizonCap(t *testing.T) {
	// An absurdly large contract at a tiny pace would predict decades
	// out; the walk stops at the horizon instead of running away.
	workLogs := newMemWorkLogRepo(
		normalEntry(calendar.Date(2024, 6, 3), "09:00", "09:30", "API"),
	)
	h := dashboardHandler(workLogs, newMemHolidayRepo(), testSettings(100000, 7))

	_, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrPredictionHorizon)
}

func TestDashboard_NonWorkingScheduleNeverCompletes(t *testing.T) {
	// A schedule with only Sundays allowed still terminates at the
	// horizon rather than spinning on skipped days forever.
	workLogs := newMemWorkLogRepo(
		normalEntry(calendar.Date(2024, 6, 3), "09:00", "16:00", "API"),
	)
	cfg := testSettings(6400, 7)
	cfg.WorkingDays = []int{7}
	h := NewGetDashboardStatsHandler(workLogs, newMemHolidayRepo(), newMemSettingsRepo(cfg))

	_, err := h.Handle(context.Background(), GetDashboardStatsQuery{Today: calendar.Date(2024, 6, 5)})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrPredictionHorizon)
}
