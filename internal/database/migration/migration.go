// Package migration creates the database schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// sentinelTable exists once the schema has been created.
const sentinelTable = "persons"

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_persons",
		SQL: `CREATE TABLE IF NOT EXISTS persons (
  id            TEXT        PRIMARY KEY,
  username      TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL DEFAULT '',
  first_name    TEXT        NOT NULL DEFAULT '',
  last_name     TEXT        NOT NULL DEFAULT '',
  email         TEXT        NOT NULL DEFAULT '',
  permissions   TEXT        NOT NULL DEFAULT '',
  notifications TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_departments",
		SQL: `CREATE TABLE IF NOT EXISTS departments (
  id                 TEXT        PRIMARY KEY,
  name               TEXT        NOT NULL,
  description        TEXT        NOT NULL DEFAULT '',
  two_stage_approval BOOLEAN     NOT NULL DEFAULT false,
  last_modification  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_department_members",
		SQL: `CREATE TABLE IF NOT EXISTS department_members (
  department_id TEXT NOT NULL REFERENCES departments (id) ON DELETE CASCADE,
  person_id     TEXT NOT NULL REFERENCES persons (id) ON DELETE CASCADE,
  role          TEXT NOT NULL,
  PRIMARY KEY (department_id, person_id, role)
);`,
	},
	{
		Name: "create_table_accounts",
		SQL: `CREATE TABLE IF NOT EXISTS accounts (
  id                                   TEXT    PRIMARY KEY,
  person_id                            TEXT    NOT NULL REFERENCES persons (id) ON DELETE CASCADE,
  valid_from                           DATE    NOT NULL,
  valid_to                             DATE    NOT NULL,
  annual_vacation_days                 NUMERIC NOT NULL CHECK (annual_vacation_days >= 0),
  vacation_days                        NUMERIC NOT NULL CHECK (vacation_days >= 0),
  remaining_vacation_days              NUMERIC NOT NULL DEFAULT 0,
  remaining_vacation_days_not_expiring NUMERIC NOT NULL DEFAULT 0,
  comment                              TEXT    NOT NULL DEFAULT '',
  CHECK (valid_from <= valid_to)
);`,
	},
	{
		Name: "create_index_accounts_person_valid_from",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_person_valid_from ON accounts (person_id, valid_from);`,
	},
	{
		Name: "create_table_working_times",
		SQL: `CREATE TABLE IF NOT EXISTS working_times (
  id                     TEXT PRIMARY KEY,
  person_id              TEXT NOT NULL REFERENCES persons (id) ON DELETE CASCADE,
  valid_from             DATE NOT NULL,
  monday                 TEXT NOT NULL,
  tuesday                TEXT NOT NULL,
  wednesday              TEXT NOT NULL,
  thursday               TEXT NOT NULL,
  friday                 TEXT NOT NULL,
  saturday               TEXT NOT NULL,
  sunday                 TEXT NOT NULL,
  federal_state_override TEXT,
  UNIQUE (person_id, valid_from)
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id                     TEXT    PRIMARY KEY,
  person_id              TEXT    NOT NULL REFERENCES persons (id),
  applier_id             TEXT    REFERENCES persons (id),
  boss_id                TEXT    REFERENCES persons (id),
  canceller_id           TEXT    REFERENCES persons (id),
  holiday_replacement_id TEXT    REFERENCES persons (id),
  start_date             DATE    NOT NULL,
  end_date               DATE    NOT NULL,
  vacation_type          TEXT    NOT NULL,
  day_length             TEXT    NOT NULL,
  reason                 TEXT    NOT NULL DEFAULT '',
  address                TEXT    NOT NULL DEFAULT '',
  hours                  NUMERIC,
  status                 TEXT    NOT NULL,
  team_informed          BOOLEAN NOT NULL DEFAULT false,
  two_stage_approval     BOOLEAN NOT NULL DEFAULT false,
  application_date       DATE,
  edited_date            DATE,
  cancel_date            DATE,
  remind_date            DATE,
  CHECK (start_date <= end_date)
);`,
	},
	{
		Name: "create_index_applications_person_period",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_person_period ON applications (person_id, start_date, end_date);`,
	},
	{
		Name: "create_index_applications_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (status);`,
	},
	{
		Name: "create_table_application_comments",
		SQL: `CREATE TABLE IF NOT EXISTS application_comments (
  id             TEXT        PRIMARY KEY,
  application_id TEXT        NOT NULL REFERENCES applications (id) ON DELETE CASCADE,
  person_id      TEXT        REFERENCES persons (id),
  action         TEXT        NOT NULL,
  text           TEXT        NOT NULL DEFAULT '',
  date           TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sick_notes",
		SQL: `CREATE TABLE IF NOT EXISTS sick_notes (
  id                                TEXT        PRIMARY KEY,
  person_id                         TEXT        NOT NULL REFERENCES persons (id),
  applier_id                        TEXT        REFERENCES persons (id),
  type                              TEXT        NOT NULL,
  start_date                        DATE        NOT NULL,
  end_date                          DATE        NOT NULL,
  day_length                        TEXT        NOT NULL,
  aub_start_date                    DATE,
  aub_end_date                      DATE,
  status                            TEXT        NOT NULL,
  last_edited                       TIMESTAMPTZ NOT NULL DEFAULT now(),
  end_of_sick_pay_notification_send TIMESTAMPTZ,
  CHECK (start_date <= end_date)
);`,
	},
	{
		Name: "create_index_sick_notes_person_period",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_sick_notes_person_period ON sick_notes (person_id, start_date, end_date);`,
	},
	{
		Name: "create_table_sick_note_comments",
		SQL: `CREATE TABLE IF NOT EXISTS sick_note_comments (
  id           TEXT        PRIMARY KEY,
  sick_note_id TEXT        NOT NULL REFERENCES sick_notes (id) ON DELETE CASCADE,
  person_id    TEXT        REFERENCES persons (id),
  action       TEXT        NOT NULL,
  text         TEXT        NOT NULL DEFAULT '',
  date         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sick_note_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS sick_note_attachments (
  id                TEXT        PRIMARY KEY,
  sick_note_id      TEXT        NOT NULL REFERENCES sick_notes (id) ON DELETE CASCADE,
  filename          TEXT        NOT NULL,
  original_filename TEXT        NOT NULL,
  storage_path      TEXT        NOT NULL UNIQUE,
  size              BIGINT      NOT NULL CHECK (size >= 0),
  content_type      TEXT        NOT NULL,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_sick_note_attachments_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_sick_note_attachments_created_at ON sick_note_attachments (sick_note_id, created_at);`,
	},
	{
		Name: "create_table_settings",
		SQL: `CREATE TABLE IF NOT EXISTS settings (
  id   INTEGER PRIMARY KEY,
  data JSONB   NOT NULL
);`,
	},
	{
		Name: "create_table_calendars",
		SQL: `CREATE TABLE IF NOT EXISTS calendars (
  id        TEXT PRIMARY KEY,
  person_id TEXT NOT NULL REFERENCES persons (id) ON DELETE CASCADE,
  kind      TEXT NOT NULL,
  secret    TEXT NOT NULL UNIQUE,
  period    TEXT NOT NULL,
  UNIQUE (person_id, kind)
);`,
	},
}

// EnsureMigrated creates the schema unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('public.%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
