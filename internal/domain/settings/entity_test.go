package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, SingletonID, s.ID)
	assert.Equal(t, 640.0, s.TotalRequiredHours)
	assert.Equal(t, 7.0, s.DailyWorkHours)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.WorkingDays)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	s.TotalRequiredHours = 0
	assert.Error(t, s.Validate())
	s.TotalRequiredHours = 640

	s.DailyWorkHours = 25
	assert.Error(t, s.Validate())
	s.DailyWorkHours = -1
	assert.Error(t, s.Validate())
	s.DailyWorkHours = 7

	s.WorkingDays = nil
	assert.Error(t, s.Validate())
	s.WorkingDays = []int{0, 1}
	assert.Error(t, s.Validate())
	s.WorkingDays = []int{1, 8}
	assert.Error(t, s.Validate())
	s.WorkingDays = []int{6, 7}
	assert.NoError(t, s.Validate())
}

func TestApply_PartialPatch(t *testing.T) {
	s := Default()
	before := s.UpdatedAt

	hours := 780.0
	name := "Maria Santos"
	start := time.Date(2024, 9, 16, 10, 30, 0, 0, time.Local)
	s.Apply(Patch{
		TotalRequiredHours: &hours,
		StudentName:        &name,
		StartDate:          &start,
		WorkingDays:        []int{1, 2, 3, 4, 5, 6},
	})

	assert.Equal(t, 780.0, s.TotalRequiredHours)
	assert.Equal(t, "Maria Santos", s.StudentName)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.WorkingDays)
	assert.Equal(t, calendar.Date(2024, 9, 16), s.StartDate)

	// Untouched fields survive.
	assert.Equal(t, 7.0, s.DailyWorkHours)
	assert.False(t, s.UpdatedAt.Before(before))
}

func TestApply_EmptyPatchLeavesValues(t *testing.T) {
	s := Default()
	s.StudentName = "Ana"
	s.Apply(Patch{})
	assert.Equal(t, "Ana", s.StudentName)
	assert.Equal(t, 640.0, s.TotalRequiredHours)
}
