// Package settings contains the singleton internship configuration:
// required totals, the working-day calendar, and the descriptive fields
// used by generated reports. Exactly one instance exists; it is created
// with defaults on first access and threaded explicitly into every core
// computation.
package settings

import (
	"context"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// SingletonID is the fixed row identifier of the settings record.
const SingletonID = "default"

// Settings is the internship configuration singleton.
type Settings struct {
	ID                 string    `json:"id"`
	TotalRequiredHours float64   `json:"totalRequiredHours"`
	DailyWorkHours     float64   `json:"dailyWorkHours"`
	WorkingDays        []int     `json:"workingDays"` // ISO weekdays, 1=Monday..7=Sunday
	StartDate          time.Time `json:"startDate"`
	InternshipTitle    string    `json:"internshipTitle,omitempty"`
	OrganizationName   string    `json:"organizationName,omitempty"`
	SupervisorName     string    `json:"supervisorName,omitempty"`
	StudentName        string    `json:"studentName,omitempty"`
	StudentNumber      string    `json:"studentNumber,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Default returns the settings created on first access: a 640-hour
// internship at 7 hours per day, Monday through Friday, starting today.
func Default() *Settings {
	now := time.Now().UTC()
	return &Settings{
		ID:                 SingletonID,
		TotalRequiredHours: 640,
		DailyWorkHours:     7,
		WorkingDays:        []int{1, 2, 3, 4, 5},
		StartDate:          calendar.Truncate(now),
		UpdatedAt:          now,
	}
}

// Validate checks the configuration ranges.
func (s *Settings) Validate() error {
	if s.TotalRequiredHours <= 0 {
		return shared.ErrInvalidHours
	}
	if s.DailyWorkHours < 0 || s.DailyWorkHours > 24 {
		return shared.ErrInvalidHours
	}
	if len(s.WorkingDays) == 0 {
		return shared.ErrInvalidWorkDays
	}
	for _, d := range s.WorkingDays {
		if d < 1 || d > 7 {
			return shared.ErrInvalidWorkDays
		}
	}
	return nil
}

// Patch carries a partial settings update; nil fields are left unchanged.
type Patch struct {
	TotalRequiredHours *float64
	DailyWorkHours     *float64
	WorkingDays        []int
	StartDate          *time.Time
	InternshipTitle    *string
	OrganizationName   *string
	SupervisorName     *string
	StudentName        *string
	StudentNumber      *string
}

// Apply merges the patch into the settings value.
func (s *Settings) Apply(p Patch) {
	if p.TotalRequiredHours != nil {
		s.TotalRequiredHours = *p.TotalRequiredHours
	}
	if p.DailyWorkHours != nil {
		s.DailyWorkHours = *p.DailyWorkHours
	}
	if p.WorkingDays != nil {
		s.WorkingDays = p.WorkingDays
	}
	if p.StartDate != nil {
		s.StartDate = calendar.Truncate(*p.StartDate)
	}
	if p.InternshipTitle != nil {
		s.InternshipTitle = *p.InternshipTitle
	}
	if p.OrganizationName != nil {
		s.OrganizationName = *p.OrganizationName
	}
	if p.SupervisorName != nil {
		s.SupervisorName = *p.SupervisorName
	}
	if p.StudentName != nil {
		s.StudentName = *p.StudentName
	}
	if p.StudentNumber != nil {
		s.StudentNumber = *p.StudentNumber
	}
	s.UpdatedAt = time.Now().UTC()
}

// Repository defines the interface for settings persistence.
type Repository interface {
	// Get returns the singleton, creating it with defaults when absent.
	Get(ctx context.Context) (*Settings, error)

	// Save upserts the singleton.
	Save(ctx context.Context, s *Settings) error
}
