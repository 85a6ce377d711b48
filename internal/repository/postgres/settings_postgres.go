package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

// SettingsPostgres stores the settings document as JSONB in a single row.
type SettingsPostgres struct {
	db *sql.DB
}

// NewSettingsPostgres creates a new SettingsPostgres repository.
func NewSettingsPostgres(db *sql.DB) *SettingsPostgres {
	return &SettingsPostgres{db: db}
}

var _ repository.SettingsRepository = (*SettingsPostgres)(nil)

// Get returns the stored settings or sql.ErrNoRows if none were saved yet.
func (r *SettingsPostgres) Get(ctx context.Context) (*model.Settings, error) {
	const q = `SELECT id, data FROM settings ORDER BY id LIMIT 1`
	var (
		id   int
		data []byte
	)
	if err := r.db.QueryRowContext(ctx, q).Scan(&id, &data); err != nil {
		return nil, err
	}
	var s model.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.ID = id
	return &s, nil
}

// Save upserts the settings row with id 1.
func (r *SettingsPostgres) Save(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	const q = `
		INSERT INTO settings (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`
	out := *s
	out.ID = 1
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, q, data); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalendarPostgres is a PostgreSQL implementation of repository.CalendarRepository.
type CalendarPostgres struct {
	db *sql.DB
}

// NewCalendarPostgres creates a new CalendarPostgres repository.
func NewCalendarPostgres(db *sql.DB) *CalendarPostgres {
	return &CalendarPostgres{db: db}
}

var _ repository.CalendarRepository = (*CalendarPostgres)(nil)

// Save creates or replaces the calendar of a person and kind.
func (r *CalendarPostgres) Save(ctx context.Context, c *model.Calendar) (*model.Calendar, error) {
	const q = `
		INSERT INTO calendars (id, person_id, kind, secret, period)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (person_id, kind) DO UPDATE SET secret = EXCLUDED.secret, period = EXCLUDED.period
		RETURNING id, person_id, kind, secret, period
	`
	var out model.Calendar
	if err := r.db.QueryRowContext(ctx, q, c.ID, c.PersonID, string(c.Kind), c.Secret, string(c.Period)).Scan(
		&out.ID,
		&out.PersonID,
		&out.Kind,
		&out.Secret,
		&out.Period,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByPersonAndKind returns the calendar of a person and kind.
func (r *CalendarPostgres) FindByPersonAndKind(ctx context.Context, personID string, kind model.CalendarKind) (*model.Calendar, error) {
	const q = `
		SELECT id, person_id, kind, secret, period
		FROM calendars
		WHERE person_id = $1 AND kind = $2
	`
	var out model.Calendar
	if err := r.db.QueryRowContext(ctx, q, personID, string(kind)).Scan(
		&out.ID,
		&out.PersonID,
		&out.Kind,
		&out.Secret,
		&out.Period,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindBySecret returns the calendar a feed secret belongs to.
func (r *CalendarPostgres) FindBySecret(ctx context.Context, secret string) (*model.Calendar, error) {
	const q = `
		SELECT id, person_id, kind, secret, period
		FROM calendars
		WHERE secret = $1
	`
	var out model.Calendar
	if err := r.db.QueryRowContext(ctx, q, secret).Scan(
		&out.ID,
		&out.PersonID,
		&out.Kind,
		&out.Secret,
		&out.Period,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the calendar of a person and kind.
func (r *CalendarPostgres) Delete(ctx context.Context, personID string, kind model.CalendarKind) error {
	const q = `DELETE FROM calendars WHERE person_id = $1 AND kind = $2`
	_, err := r.db.ExecContext(ctx, q, personID, string(kind))
	return err
}
