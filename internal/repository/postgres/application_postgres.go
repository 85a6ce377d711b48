package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationColumns = `id, person_id, applier_id, boss_id, canceller_id, holiday_replacement_id,
		start_date, end_date, vacation_type, day_length, reason, address, hours, status,
		team_informed, two_stage_approval, application_date, edited_date, cancel_date, remind_date`

func scanApplication(s rowScanner) (*model.Application, error) {
	var (
		a                                               model.Application
		boss, canceller, replacement                    sql.NullString
		hours                                           decimal.NullDecimal
		applicationDate, editedDate, cancelDate, remind sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.PersonID,
		&a.ApplierID,
		&boss,
		&canceller,
		&replacement,
		&a.StartDate,
		&a.EndDate,
		&a.VacationType,
		&a.DayLength,
		&a.Reason,
		&a.Address,
		&hours,
		&a.Status,
		&a.TeamInformed,
		&a.TwoStageApproval,
		&applicationDate,
		&editedDate,
		&cancelDate,
		&remind,
	); err != nil {
		return nil, err
	}
	a.BossID = boss.String
	a.CancellerID = canceller.String
	a.HolidayReplacementID = replacement.String
	if hours.Valid {
		h := hours.Decimal
		a.Hours = &h
	}
	a.ApplicationDate = timePtr(applicationDate)
	a.EditedDate = timePtr(editedDate)
	a.CancelDate = timePtr(cancelDate)
	a.RemindDate = timePtr(remind)
	return &a, nil
}

func applicationArgs(a *model.Application) []any {
	var hours any
	if a.Hours != nil {
		hours = a.Hours.String()
	}
	return []any{
		a.ID,
		a.PersonID,
		a.ApplierID,
		nullString(a.BossID),
		nullString(a.CancellerID),
		nullString(a.HolidayReplacementID),
		a.StartDate,
		a.EndDate,
		string(a.VacationType),
		string(a.DayLength),
		a.Reason,
		a.Address,
		hours,
		string(a.Status),
		a.TeamInformed,
		a.TwoStageApproval,
		a.ApplicationDate,
		a.EditedDate,
		a.CancelDate,
		a.RemindDate,
	}
}

// Create inserts a new application and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	const q = `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRowContext(ctx, q, applicationArgs(a)...))
}

// Update overwrites all columns of an application.
func (r *ApplicationPostgres) Update(ctx context.Context, a *model.Application) (*model.Application, error) {
	const q = `
		UPDATE applications
		SET person_id = $2, applier_id = $3, boss_id = $4, canceller_id = $5, holiday_replacement_id = $6,
		    start_date = $7, end_date = $8, vacation_type = $9, day_length = $10, reason = $11,
		    address = $12, hours = $13, status = $14, team_informed = $15, two_stage_approval = $16,
		    application_date = $17, edited_date = $18, cancel_date = $19, remind_date = $20
		WHERE id = $1
		RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRowContext(ctx, q, applicationArgs(a)...))
}

// FindByID fetches a single application by its ID.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	const q = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

// FindByPersonAndPeriod returns the applications of a person touching [start, end].
func (r *ApplicationPostgres) FindByPersonAndPeriod(ctx context.Context, personID string, start, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications
		WHERE person_id = $1 AND start_date <= $3 AND end_date >= $2`
	args := []any{personID, start, end}
	if len(statuses) > 0 {
		var clause string
		clause, args = inClause("status", 4, statuses, args)
		q += " AND " + clause
	}
	q += " ORDER BY start_date, id"
	return r.query(ctx, q, args...)
}

// FindByPeriod returns the applications of all persons touching [start, end].
func (r *ApplicationPostgres) FindByPeriod(ctx context.Context, start, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications
		WHERE start_date <= $2 AND end_date >= $1`
	args := []any{start, end}
	if len(statuses) > 0 {
		var clause string
		clause, args = inClause("status", 3, statuses, args)
		q += " AND " + clause
	}
	q += " ORDER BY start_date, id"
	return r.query(ctx, q, args...)
}

// FindByStatuses returns all applications in one of statuses.
func (r *ApplicationPostgres) FindByStatuses(ctx context.Context, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	if len(statuses) == 0 {
		return []model.Application{}, nil
	}
	clause, args := inClause("status", 1, statuses, nil)
	q := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY start_date, id`, applicationColumns, clause)
	return r.query(ctx, q, args...)
}

// SumOvertimeReduction adds up the hours of waiting and allowed overtime applications.
func (r *ApplicationPostgres) SumOvertimeReduction(ctx context.Context, personID string) (decimal.Decimal, error) {
	const q = `
		SELECT COALESCE(SUM(hours), 0)
		FROM applications
		WHERE person_id = $1 AND vacation_type = $2 AND status IN ($3, $4, $5)
	`
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, q,
		personID,
		string(model.VacationOvertime),
		string(model.StatusWaiting),
		string(model.StatusTemporaryAllowed),
		string(model.StatusAllowed),
	).Scan(&sum)
	return sum, err
}

func (r *ApplicationPostgres) query(ctx context.Context, q string, args ...any) ([]model.Application, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
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

// ApplicationCommentPostgres is a PostgreSQL implementation of repository.ApplicationCommentRepository.
type ApplicationCommentPostgres struct {
	db *sql.DB
}

// NewApplicationCommentPostgres creates a new ApplicationCommentPostgres repository.
func NewApplicationCommentPostgres(db *sql.DB) *ApplicationCommentPostgres {
	return &ApplicationCommentPostgres{db: db}
}

var _ repository.ApplicationCommentRepository = (*ApplicationCommentPostgres)(nil)

// Create inserts a comment and returns the stored record.
func (r *ApplicationCommentPostgres) Create(ctx context.Context, c *model.ApplicationComment) (*model.ApplicationComment, error) {
	const q = `
		INSERT INTO application_comments (id, application_id, person_id, action, text, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, application_id, person_id, action, text, date
	`
	row := r.db.QueryRowContext(ctx, q, c.ID, c.ApplicationID, nullString(c.PersonID), string(c.Action), c.Text, c.Date)
	var (
		out    model.ApplicationComment
		person sql.NullString
	)
	if err := row.Scan(&out.ID, &out.ApplicationID, &person, &out.Action, &out.Text, &out.Date); err != nil {
		return nil, err
	}
	out.PersonID = person.String
	return &out, nil
}

// FindByApplication returns the comments of an application, oldest first.
func (r *ApplicationCommentPostgres) FindByApplication(ctx context.Context, applicationID string) ([]model.ApplicationComment, error) {
	const q = `
		SELECT id, application_id, person_id, action, text, date
		FROM application_comments
		WHERE application_id = $1
		ORDER BY date, id
	`
	rows, err := r.db.QueryContext(ctx, q, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ApplicationComment, 0)
	for rows.Next() {
		var (
			c      model.ApplicationComment
			person sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.ApplicationID, &person, &c.Action, &c.Text, &c.Date); err != nil {
			return nil, err
		}
		c.PersonID = person.String
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
