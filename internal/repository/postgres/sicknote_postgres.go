package postgres

import (
	"context"
	"database/sql"
	"time"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

// SickNotePostgres is a PostgreSQL implementation of repository.SickNoteRepository.
type SickNotePostgres struct {
	db *sql.DB
}

// NewSickNotePostgres creates a new SickNotePostgres repository.
func NewSickNotePostgres(db *sql.DB) *SickNotePostgres {
	return &SickNotePostgres{db: db}
}

var _ repository.SickNoteRepository = (*SickNotePostgres)(nil)

const sickNoteColumns = `id, person_id, applier_id, type, start_date, end_date, day_length,
		aub_start_date, aub_end_date, status, last_edited, end_of_sick_pay_notification_send`

func scanSickNote(s rowScanner) (*model.SickNote, error) {
	var (
		n                      model.SickNote
		applier                sql.NullString
		aubStart, aubEnd, sent sql.NullTime
	)
	if err := s.Scan(
		&n.ID,
		&n.PersonID,
		&applier,
		&n.Type,
		&n.StartDate,
		&n.EndDate,
		&n.DayLength,
		&aubStart,
		&aubEnd,
		&n.Status,
		&n.LastEdited,
		&sent,
	); err != nil {
		return nil, err
	}
	n.ApplierID = applier.String
	n.AubStartDate = timePtr(aubStart)
	n.AubEndDate = timePtr(aubEnd)
	n.EndOfSickPayNotificationSend = timePtr(sent)
	return &n, nil
}

func sickNoteArgs(n *model.SickNote) []any {
	return []any{
		n.ID,
		n.PersonID,
		nullString(n.ApplierID),
		string(n.Type),
		n.StartDate,
		n.EndDate,
		string(n.DayLength),
		n.AubStartDate,
		n.AubEndDate,
		string(n.Status),
		n.LastEdited,
		n.EndOfSickPayNotificationSend,
	}
}

// Create inserts a new sick note and returns the stored record.
func (r *SickNotePostgres) Create(ctx context.Context, n *model.SickNote) (*model.SickNote, error) {
	const q = `
		INSERT INTO sick_notes (` + sickNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + sickNoteColumns
	return scanSickNote(r.db.QueryRowContext(ctx, q, sickNoteArgs(n)...))
}

// Update overwrites all columns of a sick note.
func (r *SickNotePostgres) Update(ctx context.Context, n *model.SickNote) (*model.SickNote, error) {
	const q = `
		UPDATE sick_notes
		SET person_id = $2, applier_id = $3, type = $4, start_date = $5, end_date = $6, day_length = $7,
		    aub_start_date = $8, aub_end_date = $9, status = $10, last_edited = $11,
		    end_of_sick_pay_notification_send = $12
		WHERE id = $1
		RETURNING ` + sickNoteColumns
	return scanSickNote(r.db.QueryRowContext(ctx, q, sickNoteArgs(n)...))
}

// FindByID fetches a single sick note by its ID.
func (r *SickNotePostgres) FindByID(ctx context.Context, id string) (*model.SickNote, error) {
	const q = `SELECT ` + sickNoteColumns + ` FROM sick_notes WHERE id = $1`
	return scanSickNote(r.db.QueryRowContext(ctx, q, id))
}

// FindByPersonAndPeriod returns the sick notes of a person touching [start, end].
func (r *SickNotePostgres) FindByPersonAndPeriod(ctx context.Context, personID string, start, end time.Time) ([]model.SickNote, error) {
	const q = `
		SELECT ` + sickNoteColumns + `
		FROM sick_notes
		WHERE person_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date, id
	`
	return r.query(ctx, q, personID, start, end)
}

// FindByPeriod returns the sick notes of all persons touching [start, end].
func (r *SickNotePostgres) FindByPeriod(ctx context.Context, start, end time.Time) ([]model.SickNote, error) {
	const q = `
		SELECT ` + sickNoteColumns + `
		FROM sick_notes
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, id
	`
	return r.query(ctx, q, start, end)
}

// FindByMinimumLengthAndStartedBefore returns active, not yet notified sick notes
// spanning at least minDays days that started on or before startedOnOrBefore.
func (r *SickNotePostgres) FindByMinimumLengthAndStartedBefore(ctx context.Context, minDays int, startedOnOrBefore time.Time) ([]model.SickNote, error) {
	const q = `
		SELECT ` + sickNoteColumns + `
		FROM sick_notes
		WHERE status = $1
		  AND end_of_sick_pay_notification_send IS NULL
		  AND (end_date - start_date) >= $2
		  AND start_date <= $3
		ORDER BY start_date, id
	`
	return r.query(ctx, q, string(model.SickNoteActive), minDays, startedOnOrBefore)
}

func (r *SickNotePostgres) query(ctx context.Context, q string, args ...any) ([]model.SickNote, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SickNote, 0)
	for rows.Next() {
		n, err := scanSickNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SickNoteCommentPostgres is a PostgreSQL implementation of repository.SickNoteCommentRepository.
type SickNoteCommentPostgres struct {
	db *sql.DB
}

// NewSickNoteCommentPostgres creates a new SickNoteCommentPostgres repository.
func NewSickNoteCommentPostgres(db *sql.DB) *SickNoteCommentPostgres {
	return &SickNoteCommentPostgres{db: db}
}

var _ repository.SickNoteCommentRepository = (*SickNoteCommentPostgres)(nil)

// Create inserts a comment and returns the stored record.
func (r *SickNoteCommentPostgres) Create(ctx context.Context, c *model.SickNoteComment) (*model.SickNoteComment, error) {
	const q = `
		INSERT INTO sick_note_comments (id, sick_note_id, person_id, action, text, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, sick_note_id, person_id, action, text, date
	`
	var (
		out    model.SickNoteComment
		person sql.NullString
	)
	row := r.db.QueryRowContext(ctx, q, c.ID, c.SickNoteID, nullString(c.PersonID), string(c.Action), c.Text, c.Date)
	if err := row.Scan(&out.ID, &out.SickNoteID, &person, &out.Action, &out.Text, &out.Date); err != nil {
		return nil, err
	}
	out.PersonID = person.String
	return &out, nil
}

// FindBySickNote returns the comments of a sick note, oldest first.
func (r *SickNoteCommentPostgres) FindBySickNote(ctx context.Context, sickNoteID string) ([]model.SickNoteComment, error) {
	const q = `
		SELECT id, sick_note_id, person_id, action, text, date
		FROM sick_note_comments
		WHERE sick_note_id = $1
		ORDER BY date, id
	`
	rows, err := r.db.QueryContext(ctx, q, sickNoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SickNoteComment, 0)
	for rows.Next() {
		var (
			c      model.SickNoteComment
			person sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.SickNoteID, &person, &c.Action, &c.Text, &c.Date); err != nil {
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

// SickNoteAttachmentPostgres is a PostgreSQL implementation of repository.SickNoteAttachmentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type SickNoteAttachmentPostgres struct {
	db *sql.DB
}

// NewSickNoteAttachmentPostgres creates a new SickNoteAttachmentPostgres repository.
func NewSickNoteAttachmentPostgres(db *sql.DB) *SickNoteAttachmentPostgres {
	return &SickNoteAttachmentPostgres{db: db}
}

var _ repository.SickNoteAttachmentRepository = (*SickNoteAttachmentPostgres)(nil)

const attachmentColumns = `id, sick_note_id, filename, original_filename, storage_path, size, content_type, created_at`

func scanAttachment(s rowScanner) (*model.SickNoteAttachment, error) {
	var a model.SickNoteAttachment
	if err := s.Scan(
		&a.ID,
		&a.SickNoteID,
		&a.Filename,
		&a.OriginalFilename,
		&a.StoragePath,
		&a.Size,
		&a.ContentType,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new attachment row and returns the stored record.
func (r *SickNoteAttachmentPostgres) Create(ctx context.Context, a *model.SickNoteAttachment) (*model.SickNoteAttachment, error) {
	const q = `
		INSERT INTO sick_note_attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attachmentColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.SickNoteID,
		a.Filename,
		a.OriginalFilename,
		a.StoragePath,
		a.Size,
		a.ContentType,
		a.CreatedAt,
	)
	return scanAttachment(row)
}

// FindByID fetches a single attachment by its ID.
func (r *SickNoteAttachmentPostgres) FindByID(ctx context.Context, id string) (*model.SickNoteAttachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM sick_note_attachments WHERE id = $1`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id))
}

// List returns the attachments of a sick note using LIMIT/OFFSET pagination and a total count.
func (r *SickNoteAttachmentPostgres) List(ctx context.Context, sickNoteID string, pq repository.PageQuery) (*repository.PageResult[model.SickNoteAttachment], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM sick_note_attachments WHERE sick_note_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, sickNoteID).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT ` + attachmentColumns + `
		FROM sick_note_attachments
		WHERE sick_note_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, sickNoteID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SickNoteAttachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.SickNoteAttachment]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes an attachment by ID. It does not return an error if the row does not exist.
func (r *SickNoteAttachmentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM sick_note_attachments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
