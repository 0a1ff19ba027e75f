package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// Embedded schema migrations, applied in order and tracked in a
// schema_migrations table.
// ══════════════════════════════════════════════════════════════════════════════

// Migration is one versioned schema change.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Migrator applies pending migrations.
type Migrator struct {
	conn       *Connection
	migrations []Migration
	tableName  string
}

// NewMigrator creates a migrator with the embedded migrations.
func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{
		conn:       conn,
		migrations: GetMigrations(),
		tableName:  "schema_migrations",
	}
}

// Migrate applies all pending migrations, each in its own transaction.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		err := m.conn.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
				return fmt.Errorf("execute migration %d: %w", mig.Version, err)
			}
			_, err := tx.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (version, name) VALUES ($1, $2)", m.tableName),
				mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
	}
	return nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.conn.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`, m.tableName))
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.pool.Query(ctx,
		fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.tableName))
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan migration row: %w", err)
		}
		applied[version] = appliedAt
	}
	return applied, rows.Err()
}

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_work_logs",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_holidays",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_settings",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// Clock times are stored as minutes since midnight; dates as DATE in
// UTC. The unique index on work_logs.log_date backs the one-entry-per-
// day rule and the import upsert.
const migration001Up = `
CREATE TABLE IF NOT EXISTS work_logs (
	id UUID PRIMARY KEY,
	log_date DATE NOT NULL,
	entry_type TEXT NOT NULL CHECK (entry_type IN ('NORMAL', 'HOLIDAY', 'JUSTIFIED_ABSENCE')),
	start_minutes SMALLINT,
	end_minutes SMALLINT,
	lunch_start_minutes SMALLINT,
	lunch_end_minutes SMALLINT,
	calculated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	organization TEXT NOT NULL DEFAULT '',
	task_description TEXT NOT NULL DEFAULT '',
	justification TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_work_logs_date ON work_logs (log_date);
CREATE INDEX IF NOT EXISTS idx_work_logs_type_date ON work_logs (entry_type, log_date);
`

const migration001Down = `DROP TABLE IF EXISTS work_logs;`

const migration002Up = `
CREATE TABLE IF NOT EXISTS holidays (
	id UUID PRIMARY KEY,
	holiday_date DATE NOT NULL,
	name TEXT NOT NULL,
	movable BOOLEAN NOT NULL DEFAULT FALSE,
	holiday_year INTEGER NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date ON holidays (holiday_date);
CREATE INDEX IF NOT EXISTS idx_holidays_year ON holidays (holiday_year);
`

const migration002Down = `DROP TABLE IF EXISTS holidays;`

const migration003Up = `
CREATE TABLE IF NOT EXISTS settings (
	id TEXT PRIMARY KEY,
	total_required_hours DOUBLE PRECISION NOT NULL,
	daily_work_hours DOUBLE PRECISION NOT NULL,
	working_days SMALLINT[] NOT NULL,
	start_date DATE,
	internship_title TEXT NOT NULL DEFAULT '',
	organization_name TEXT NOT NULL DEFAULT '',
	supervisor_name TEXT NOT NULL DEFAULT '',
	student_name TEXT NOT NULL DEFAULT '',
	student_number TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const migration003Down = `DROP TABLE IF EXISTS settings;`
