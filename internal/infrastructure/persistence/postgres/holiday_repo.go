package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// HOLIDAY REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

const holidayColumns = `id, holiday_date, name, movable, holiday_year`

// HolidayRepository implements holiday.Repository on PostgreSQL.
type HolidayRepository struct {
	conn *Connection
}

// NewHolidayRepository creates a new repository.
func NewHolidayRepository(conn *Connection) *HolidayRepository {
	return &HolidayRepository{conn: conn}
}

// UpsertByDate inserts the holiday or updates the row sharing its date.
// The stored row is returned so regeneration keeps stable identifiers.
func (r *HolidayRepository) UpsertByDate(ctx context.Context, h *holiday.Holiday) (*holiday.Holiday, error) {
	row := r.conn.pool.QueryRow(ctx, `
		INSERT INTO holidays (id, holiday_date, name, movable, holiday_year)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (holiday_date) DO UPDATE SET
			name = EXCLUDED.name,
			movable = EXCLUDED.movable,
			holiday_year = EXCLUDED.holiday_year
		RETURNING `+holidayColumns,
		h.ID, h.Date, h.Name, h.Movable, h.Year)

	stored, err := scanHoliday(row)
	if err != nil {
		return nil, fmt.Errorf("postgres: upsert holiday: %w", err)
	}
	return stored, nil
}

// Create inserts a custom holiday. A duplicate date is a conflict.
func (r *HolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	_, err := r.conn.pool.Exec(ctx, `
		INSERT INTO holidays (id, holiday_date, name, movable, holiday_year)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.Date, h.Name, h.Movable, h.Year)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.WrapError("holiday", "Create",
				shared.ErrHolidayExists, "holiday already exists on "+h.DateISO(), err)
		}
		return fmt.Errorf("postgres: insert holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday by identifier.
func (r *HolidayRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.pool.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrHolidayNotFound
	}
	return nil
}

// ListByYear returns the holidays of one year ordered by date.
func (r *HolidayRepository) ListByYear(ctx context.Context, year int) ([]*holiday.Holiday, error) {
	rows, err := r.conn.pool.Query(ctx,
		`SELECT `+holidayColumns+` FROM holidays WHERE holiday_year = $1 ORDER BY holiday_date ASC`,
		year)
	if err != nil {
		return nil, fmt.Errorf("postgres: list holidays: %w", err)
	}
	defer rows.Close()

	var list []*holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan holiday: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// DateSet returns the ISO dates of all holidays in the given years.
func (r *HolidayRepository) DateSet(ctx context.Context, years ...int) (calendar.DateSet, error) {
	set := calendar.NewDateSet()
	if len(years) == 0 {
		return set, nil
	}

	rows, err := r.conn.pool.Query(ctx,
		`SELECT holiday_date FROM holidays WHERE holiday_year = ANY($1)`, years)
	if err != nil {
		return nil, fmt.Errorf("postgres: load holiday dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("postgres: scan holiday date: %w", err)
		}
		set.Add(d)
	}
	return set, rows.Err()
}

func scanHoliday(row pgx.Row) (*holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.Date, &h.Name, &h.Movable, &h.Year)
	if err != nil {
		return nil, err
	}
	h.Date = calendar.Truncate(h.Date)
	return &h, nil
}
