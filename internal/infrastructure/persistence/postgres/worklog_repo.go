package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// WORK LOG REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const workLogColumns = `
	id, log_date, entry_type,
	start_minutes, end_minutes, lunch_start_minutes, lunch_end_minutes,
	calculated_hours, organization, task_description, justification,
	created_at, updated_at`

// WorkLogRepository implements worklog.Repository on PostgreSQL.
type WorkLogRepository struct {
	conn *Connection
}

// NewWorkLogRepository creates a new repository.
func NewWorkLogRepository(conn *Connection) *WorkLogRepository {
	return &WorkLogRepository{conn: conn}
}

// Create inserts a new entry. A second entry on the same date surfaces
// the domain duplicate-date error.
func (r *WorkLogRepository) Create(ctx context.Context, entry *worklog.Entry) error {
	_, err := r.conn.pool.Exec(ctx, `
		INSERT INTO work_logs (
			id, log_date, entry_type,
			start_minutes, end_minutes, lunch_start_minutes, lunch_end_minutes,
			calculated_hours, organization, task_description, justification,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID, entry.Date, string(entry.Type),
		clockToMinutes(entry.StartTime), clockToMinutes(entry.EndTime),
		clockToMinutes(entry.LunchStart), clockToMinutes(entry.LunchEnd),
		entry.CalculatedHours, entry.Organization, entry.TaskDescription, entry.Justification,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.WrapError("worklog", "Create",
				shared.ErrDuplicateDate, "entry already exists for "+entry.DateISO(), err)
		}
		return fmt.Errorf("postgres: insert work log: %w", err)
	}
	return nil
}

// Update persists changes to an existing entry.
func (r *WorkLogRepository) Update(ctx context.Context, entry *worklog.Entry) error {
	tag, err := r.conn.pool.Exec(ctx, `
		UPDATE work_logs SET
			log_date = $2, entry_type = $3,
			start_minutes = $4, end_minutes = $5,
			lunch_start_minutes = $6, lunch_end_minutes = $7,
			calculated_hours = $8, organization = $9,
			task_description = $10, justification = $11,
			updated_at = $12
		WHERE id = $1`,
		entry.ID, entry.Date, string(entry.Type),
		clockToMinutes(entry.StartTime), clockToMinutes(entry.EndTime),
		clockToMinutes(entry.LunchStart), clockToMinutes(entry.LunchEnd),
		entry.CalculatedHours, entry.Organization,
		entry.TaskDescription, entry.Justification,
		entry.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.WrapError("worklog", "Update",
				shared.ErrDuplicateDate, "entry already exists for "+entry.DateISO(), err)
		}
		return fmt.Errorf("postgres: update work log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrWorkLogNotFound
	}
	return nil
}

// UpsertByDate inserts or replaces the entry sharing the calendar date.
// The stored id survives a replace so external references stay valid.
func (r *WorkLogRepository) UpsertByDate(ctx context.Context, entry *worklog.Entry) error {
	_, err := r.conn.pool.Exec(ctx, `
		INSERT INTO work_logs (
			id, log_date, entry_type,
			start_minutes, end_minutes, lunch_start_minutes, lunch_end_minutes,
			calculated_hours, organization, task_description, justification,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (log_date) DO UPDATE SET
			entry_type = EXCLUDED.entry_type,
			start_minutes = EXCLUDED.start_minutes,
			end_minutes = EXCLUDED.end_minutes,
			lunch_start_minutes = EXCLUDED.lunch_start_minutes,
			lunch_end_minutes = EXCLUDED.lunch_end_minutes,
			calculated_hours = EXCLUDED.calculated_hours,
			organization = EXCLUDED.organization,
			task_description = EXCLUDED.task_description,
			justification = EXCLUDED.justification,
			updated_at = EXCLUDED.updated_at`,
		entry.ID, entry.Date, string(entry.Type),
		clockToMinutes(entry.StartTime), clockToMinutes(entry.EndTime),
		clockToMinutes(entry.LunchStart), clockToMinutes(entry.LunchEnd),
		entry.CalculatedHours, entry.Organization, entry.TaskDescription, entry.Justification,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: upsert work log: %w", err)
	}
	return nil
}

// GetByID returns an entry by identifier.
func (r *WorkLogRepository) GetByID(ctx context.Context, id string) (*worklog.Entry, error) {
	row := r.conn.pool.QueryRow(ctx,
		`SELECT `+workLogColumns+` FROM work_logs WHERE id = $1`, id)
	entry, err := scanWorkLog(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrWorkLogNotFound
		}
		return nil, fmt.Errorf("postgres: get work log: %w", err)
	}
	return entry, nil
}

// GetByDate returns the entry for a calendar date.
func (r *WorkLogRepository) GetByDate(ctx context.Context, date time.Time) (*worklog.Entry, error) {
	row := r.conn.pool.QueryRow(ctx,
		`SELECT `+workLogColumns+` FROM work_logs WHERE log_date = $1`,
		calendar.Truncate(date))
	entry, err := scanWorkLog(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrWorkLogNotFound
		}
		return nil, fmt.Errorf("postgres: get work log by date: %w", err)
	}
	return entry, nil
}

// Delete removes an entry by identifier.
func (r *WorkLogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.pool.Exec(ctx, `DELETE FROM work_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete work log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrWorkLogNotFound
	}
	return nil
}

// List returns a page of entries ordered by date descending plus the
// total count matching the filter.
func (r *WorkLogRepository) List(ctx context.Context, filter worklog.ListFilter) ([]*worklog.Entry, int, error) {
	filter.Normalize()

	where, args := dateRangeClause(filter.From, filter.To)

	var total int
	err := r.conn.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM work_logs`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: count work logs: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	rows, err := r.conn.pool.Query(ctx,
		`SELECT `+workLogColumns+` FROM work_logs`+where+
			fmt.Sprintf(` ORDER BY log_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list work logs: %w", err)
	}
	defer rows.Close()

	entries, err := collectWorkLogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListAll returns every entry ordered by date ascending.
func (r *WorkLogRepository) ListAll(ctx context.Context) ([]*worklog.Entry, error) {
	rows, err := r.conn.pool.Query(ctx,
		`SELECT `+workLogColumns+` FROM work_logs ORDER BY log_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list all work logs: %w", err)
	}
	defer rows.Close()
	return collectWorkLogs(rows)
}

// ListNormal returns NORMAL entries in the inclusive date range,
// ordered by date ascending. Zero bounds leave the range open.
func (r *WorkLogRepository) ListNormal(ctx context.Context, from, to time.Time) ([]*worklog.Entry, error) {
	args := []any{string(worklog.TypeNormal)}
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE entry_type = $1`
	if !from.IsZero() {
		args = append(args, calendar.Truncate(from))
		query += fmt.Sprintf(" AND log_date >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, calendar.Truncate(to))
		query += fmt.Sprintf(" AND log_date <= $%d", len(args))
	}
	query += ` ORDER BY log_date ASC`

	rows, err := r.conn.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list normal work logs: %w", err)
	}
	defer rows.Close()
	return collectWorkLogs(rows)
}

// TotalNormalHours sums calculated hours over NORMAL entries.
func (r *WorkLogRepository) TotalNormalHours(ctx context.Context) (float64, error) {
	var total float64
	err := r.conn.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(calculated_hours), 0) FROM work_logs WHERE entry_type = $1`,
		string(worklog.TypeNormal)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres: sum work log hours: %w", err)
	}
	return total, nil
}

// CountNormal counts NORMAL entries.
func (r *WorkLogRepository) CountNormal(ctx context.Context) (int, error) {
	var count int
	err := r.conn.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM work_logs WHERE entry_type = $1`,
		string(worklog.TypeNormal)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: count normal work logs: %w", err)
	}
	return count, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// dateRangeClause builds a WHERE clause for the optional [from, to]
// bounds.
func dateRangeClause(from, to time.Time) (string, []any) {
	var args []any
	var conds []string
	if !from.IsZero() {
		args = append(args, calendar.Truncate(from))
		conds = append(conds, fmt.Sprintf("log_date >= $%d", len(args)))
	}
	if !to.IsZero() {
		args = append(args, calendar.Truncate(to))
		conds = append(conds, fmt.Sprintf("log_date <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	where := " WHERE " + conds[0]
	if len(conds) == 2 {
		where += " AND " + conds[1]
	}
	return where, args
}

func scanWorkLog(row pgx.Row) (*worklog.Entry, error) {
	var (
		e          worklog.Entry
		entryType  string
		start      *int16
		end        *int16
		lunchStart *int16
		lunchEnd   *int16
	)
	err := row.Scan(
		&e.ID, &e.Date, &entryType,
		&start, &end, &lunchStart, &lunchEnd,
		&e.CalculatedHours, &e.Organization, &e.TaskDescription, &e.Justification,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = worklog.EntryType(entryType)
	e.Date = calendar.Truncate(e.Date)
	e.StartTime = minutesToClock(start)
	e.EndTime = minutesToClock(end)
	e.LunchStart = minutesToClock(lunchStart)
	e.LunchEnd = minutesToClock(lunchEnd)
	return &e, nil
}

func collectWorkLogs(rows pgx.Rows) ([]*worklog.Entry, error) {
	var entries []*worklog.Entry
	for rows.Next() {
		entry, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan work log: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func clockToMinutes(ct *worklog.ClockTime) *int16 {
	if ct == nil {
		return nil
	}
	m := int16(ct.Minutes())
	return &m
}

func minutesToClock(m *int16) *worklog.ClockTime {
	if m == nil {
		return nil
	}
	ct := worklog.ClockTime(*m)
	return &ct
}
