package postgres

import (
	"context"
	"database/sql"
	"time"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

const accountColumns = `id, person_id, valid_from, valid_to, annual_vacation_days, vacation_days,
		remaining_vacation_days, remaining_vacation_days_not_expiring, comment`

func scanAccount(s rowScanner) (*model.Account, error) {
	var a model.Account
	if err := s.Scan(
		&a.ID,
		&a.PersonID,
		&a.ValidFrom,
		&a.ValidTo,
		&a.AnnualVacationDays,
		&a.VacationDays,
		&a.RemainingVacationDays,
		&a.RemainingVacationDaysNotExpiring,
		&a.Comment,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func accountArgs(a *model.Account) []any {
	return []any{
		a.ID,
		a.PersonID,
		a.ValidFrom,
		a.ValidTo,
		a.AnnualVacationDays.String(),
		a.VacationDays.String(),
		a.RemainingVacationDays.String(),
		a.RemainingVacationDaysNotExpiring.String(),
		a.Comment,
	}
}

// Create inserts a new account and returns the stored record.
func (r *AccountPostgres) Create(ctx context.Context, a *model.Account) (*model.Account, error) {
	const q = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + accountColumns
	return scanAccount(r.db.QueryRowContext(ctx, q, accountArgs(a)...))
}

// Update overwrites all columns of an account.
func (r *AccountPostgres) Update(ctx context.Context, a *model.Account) (*model.Account, error) {
	const q = `
		UPDATE accounts
		SET person_id = $2, valid_from = $3, valid_to = $4, annual_vacation_days = $5, vacation_days = $6,
		    remaining_vacation_days = $7, remaining_vacation_days_not_expiring = $8, comment = $9
		WHERE id = $1
		RETURNING ` + accountColumns
	return scanAccount(r.db.QueryRowContext(ctx, q, accountArgs(a)...))
}

// FindByPersonAndYear returns the account of a person whose validity starts in year.
func (r *AccountPostgres) FindByPersonAndYear(ctx context.Context, personID string, year int) (*model.Account, error) {
	const q = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE person_id = $1 AND EXTRACT(YEAR FROM valid_from) = $2
	`
	return scanAccount(r.db.QueryRowContext(ctx, q, personID, year))
}

// FindByYear returns the accounts of all persons for year.
func (r *AccountPostgres) FindByYear(ctx context.Context, year int) ([]model.Account, error) {
	const q = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE EXTRACT(YEAR FROM valid_from) = $1
		ORDER BY person_id
	`
	return r.query(ctx, q, year)
}

// FindByPerson returns all accounts of a person ordered by validity.
func (r *AccountPostgres) FindByPerson(ctx context.Context, personID string) ([]model.Account, error) {
	const q = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE person_id = $1
		ORDER BY valid_from
	`
	return r.query(ctx, q, personID)
}

func (r *AccountPostgres) query(ctx context.Context, q string, args ...any) ([]model.Account, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// WorkingTimePostgres is a PostgreSQL implementation of repository.WorkingTimeRepository.
type WorkingTimePostgres struct {
	db *sql.DB
}

// NewWorkingTimePostgres creates a new WorkingTimePostgres repository.
func NewWorkingTimePostgres(db *sql.DB) *WorkingTimePostgres {
	return &WorkingTimePostgres{db: db}
}

var _ repository.WorkingTimeRepository = (*WorkingTimePostgres)(nil)

const workingTimeColumns = `id, person_id, valid_from, monday, tuesday, wednesday, thursday, friday,
		saturday, sunday, federal_state_override`

func scanWorkingTime(s rowScanner) (*model.WorkingTime, error) {
	var (
		w        model.WorkingTime
		override sql.NullString
	)
	if err := s.Scan(
		&w.ID,
		&w.PersonID,
		&w.ValidFrom,
		&w.Monday,
		&w.Tuesday,
		&w.Wednesday,
		&w.Thursday,
		&w.Friday,
		&w.Saturday,
		&w.Sunday,
		&override,
	); err != nil {
		return nil, err
	}
	if override.Valid {
		fs := model.FederalState(override.String)
		w.FederalStateOverride = &fs
	}
	return &w, nil
}

func workingTimeArgs(w *model.WorkingTime) []any {
	var override any
	if w.FederalStateOverride != nil {
		override = string(*w.FederalStateOverride)
	}
	return []any{
		w.ID,
		w.PersonID,
		w.ValidFrom,
		string(w.DayLengthFor(time.Monday)),
		string(w.DayLengthFor(time.Tuesday)),
		string(w.DayLengthFor(time.Wednesday)),
		string(w.DayLengthFor(time.Thursday)),
		string(w.DayLengthFor(time.Friday)),
		string(w.DayLengthFor(time.Saturday)),
		string(w.DayLengthFor(time.Sunday)),
		override,
	}
}

// Create inserts a new working time and returns the stored record.
func (r *WorkingTimePostgres) Create(ctx context.Context, w *model.WorkingTime) (*model.WorkingTime, error) {
	const q = `
		INSERT INTO working_times (` + workingTimeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + workingTimeColumns
	return scanWorkingTime(r.db.QueryRowContext(ctx, q, workingTimeArgs(w)...))
}

// Update overwrites all columns of a working time.
func (r *WorkingTimePostgres) Update(ctx context.Context, w *model.WorkingTime) (*model.WorkingTime, error) {
	const q = `
		UPDATE working_times
		SET person_id = $2, valid_from = $3, monday = $4, tuesday = $5, wednesday = $6, thursday = $7,
		    friday = $8, saturday = $9, sunday = $10, federal_state_override = $11
		WHERE id = $1
		RETURNING ` + workingTimeColumns
	return scanWorkingTime(r.db.QueryRowContext(ctx, q, workingTimeArgs(w)...))
}

// FindByPersonAndValidFrom returns the working time starting exactly at validFrom.
func (r *WorkingTimePostgres) FindByPersonAndValidFrom(ctx context.Context, personID string, validFrom time.Time) (*model.WorkingTime, error) {
	const q = `SELECT ` + workingTimeColumns + ` FROM working_times WHERE person_id = $1 AND valid_from = $2`
	return scanWorkingTime(r.db.QueryRowContext(ctx, q, personID, validFrom))
}

// FindByPersonValidAt returns the working time in effect at date.
func (r *WorkingTimePostgres) FindByPersonValidAt(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error) {
	const q = `
		SELECT ` + workingTimeColumns + `
		FROM working_times
		WHERE person_id = $1 AND valid_from <= $2
		ORDER BY valid_from DESC
		LIMIT 1
	`
	return scanWorkingTime(r.db.QueryRowContext(ctx, q, personID, date))
}

// FindByPerson returns all working times of a person, latest first.
func (r *WorkingTimePostgres) FindByPerson(ctx context.Context, personID string) ([]model.WorkingTime, error) {
	const q = `
		SELECT ` + workingTimeColumns + `
		FROM working_times
		WHERE person_id = $1
		ORDER BY valid_from DESC
	`
	rows, err := r.db.QueryContext(ctx, q, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WorkingTime, 0)
	for rows.Next() {
		w, err := scanWorkingTime(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
