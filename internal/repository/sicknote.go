package repository

import (
	"context"
	"time"

	"urlaubsverwaltung/internal/model"
)

// SickNoteRepository defines data access for sick notes.
type SickNoteRepository interface {
	Create(ctx context.Context, s *model.SickNote) (*model.SickNote, error)
	Update(ctx context.Context, s *model.SickNote) (*model.SickNote, error)
	FindByID(ctx context.Context, id string) (*model.SickNote, error)
	// FindByPersonAndPeriod returns the sick notes of a person touching [start, end].
	FindByPersonAndPeriod(ctx context.Context, personID string, start, end time.Time) ([]model.SickNote, error)
	// FindByPeriod returns the sick notes of all persons touching [start, end].
	FindByPeriod(ctx context.Context, start, end time.Time) ([]model.SickNote, error)
	// FindByMinimumLengthAndStartedBefore returns active sick notes that were not
	// notified yet, last at least minDays days after their start and started on or before startedOnOrBefore.
	FindByMinimumLengthAndStartedBefore(ctx context.Context, minDays int, startedOnOrBefore time.Time) ([]model.SickNote, error)
}

// SickNoteCommentRepository defines data access for sick note comments.
type SickNoteCommentRepository interface {
	Create(ctx context.Context, c *model.SickNoteComment) (*model.SickNoteComment, error)
	FindBySickNote(ctx context.Context, sickNoteID string) ([]model.SickNoteComment, error)
}

// SickNoteAttachmentRepository defines data access for certificate metadata.
// No business logic here, strictly persistence operations.
type SickNoteAttachmentRepository interface {
	// Create inserts a new attachment record and returns the stored row.
	Create(ctx context.Context, a *model.SickNoteAttachment) (*model.SickNoteAttachment, error)

	// FindByID returns an attachment by its ID.
	FindByID(ctx context.Context, id string) (*model.SickNoteAttachment, error)

	// List returns a page of the attachments of a sick note and the total count.
	List(ctx context.Context, sickNoteID string, pq PageQuery) (*PageResult[model.SickNoteAttachment], error)

	// Delete removes an attachment by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
