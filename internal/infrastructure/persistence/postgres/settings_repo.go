package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// SETTINGS REPOSITORY
// The settings table holds a single row keyed by the fixed singleton
// id. A missing row means a fresh installation: Get seeds the defaults
// instead of failing.
// ══════════════════════════════════════════════════════════════════════════════

// SettingsRepository implements settings.Repository on PostgreSQL.
type SettingsRepository struct {
	conn *Connection
}

// NewSettingsRepository creates a new repository.
func NewSettingsRepository(conn *Connection) *SettingsRepository {
	return &SettingsRepository{conn: conn}
}

// Get returns the settings singleton, creating it with defaults on
// first access.
func (r *SettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	row := r.conn.pool.QueryRow(ctx, `
		SELECT id, total_required_hours, daily_work_hours, working_days,
		       start_date, internship_title, organization_name,
		       supervisor_name, student_name, student_number, updated_at
		FROM settings WHERE id = $1`, settings.SingletonID)

	var (
		s           settings.Settings
		workingDays []int16
		startDate   *time.Time
	)
	err := row.Scan(
		&s.ID, &s.TotalRequiredHours, &s.DailyWorkHours, &workingDays,
		&startDate, &s.InternshipTitle, &s.OrganizationName,
		&s.SupervisorName, &s.StudentName, &s.StudentNumber, &s.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			defaults := settings.Default()
			if err := r.Save(ctx, defaults); err != nil {
				return nil, err
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("postgres: get settings: %w", err)
	}

	s.WorkingDays = make([]int, len(workingDays))
	for i, d := range workingDays {
		s.WorkingDays[i] = int(d)
	}
	if startDate != nil {
		s.StartDate = calendar.Truncate(*startDate)
	}
	return &s, nil
}

// Save upserts the settings singleton.
func (r *SettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	workingDays := make([]int16, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		workingDays[i] = int16(d)
	}

	var startDate *time.Time
	if !s.StartDate.IsZero() {
		d := calendar.Truncate(s.StartDate)
		startDate = &d
	}

	_, err := r.conn.pool.Exec(ctx, `
		INSERT INTO settings (
			id, total_required_hours, daily_work_hours, working_days,
			start_date, internship_title, organization_name,
			supervisor_name, student_name, student_number, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			total_required_hours = EXCLUDED.total_required_hours,
			daily_work_hours = EXCLUDED.daily_work_hours,
			working_days = EXCLUDED.working_days,
			start_date = EXCLUDED.start_date,
			internship_title = EXCLUDED.internship_title,
			organization_name = EXCLUDED.organization_name,
			supervisor_name = EXCLUDED.supervisor_name,
			student_name = EXCLUDED.student_name,
			student_number = EXCLUDED.student_number,
			updated_at = EXCLUDED.updated_at`,
		s.ID, s.TotalRequiredHours, s.DailyWorkHours, workingDays,
		startDate, s.InternshipTitle, s.OrganizationName,
		s.SupervisorName, s.StudentName, s.StudentNumber, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: save settings: %w", err)
	}
	return nil
}
