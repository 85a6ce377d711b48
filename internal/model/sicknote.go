package model

import "time"

type SickNoteType string

const (
	SickNoteTypeSick      SickNoteType = "SICK_NOTE"
	SickNoteTypeSickChild SickNoteType = "SICK_NOTE_CHILD"
)

func (t SickNoteType) Valid() bool {
	return t == SickNoteTypeSick || t == SickNoteTypeSickChild
}

type SickNoteStatus string

const (
	SickNoteActive              SickNoteStatus = "ACTIVE"
	SickNoteCancelled           SickNoteStatus = "CANCELLED"
	SickNoteConvertedToVacation SickNoteStatus = "CONVERTED_TO_VACATION"
)

// SickNote records the sickness of a person. AubStartDate and AubEndDate
// delimit the period covered by a doctor's certificate (AU-Bescheinigung).
type SickNote struct {
	ID                           string         `json:"id"`
	PersonID                     string         `json:"person_id"`
	ApplierID                    string         `json:"applier_id"`
	Type                         SickNoteType   `json:"type"`
	StartDate                    time.Time      `json:"start_date"`
	EndDate                      time.Time      `json:"end_date"`
	DayLength                    DayLength      `json:"day_length"`
	AubStartDate                 *time.Time     `json:"aub_start_date,omitempty"`
	AubEndDate                   *time.Time     `json:"aub_end_date,omitempty"`
	Status                       SickNoteStatus `json:"status"`
	LastEdited                   time.Time      `json:"last_edited"`
	EndOfSickPayNotificationSend *time.Time     `json:"end_of_sick_pay_notification_send,omitempty"`
}

// IsActive reports whether the sick note has not been cancelled or converted.
func (s *SickNote) IsActive() bool {
	return s.Status == SickNoteActive
}

type SickNoteCommentAction string

const (
	SickNoteActionCreated             SickNoteCommentAction = "CREATED"
	SickNoteActionEdited              SickNoteCommentAction = "EDITED"
	SickNoteActionCancelled           SickNoteCommentAction = "CANCELLED"
	SickNoteActionConvertedToVacation SickNoteCommentAction = "CONVERTED_TO_VACATION"
	SickNoteActionCommented           SickNoteCommentAction = "COMMENTED"
)

type SickNoteComment struct {
	ID         string                `json:"id"`
	SickNoteID string                `json:"sick_note_id"`
	PersonID   string                `json:"person_id,omitempty"`
	Action     SickNoteCommentAction `json:"action"`
	Text       string                `json:"text,omitempty"`
	Date       time.Time             `json:"date"`
}

// SickNoteAttachment is a certificate file stored in object storage.
// Only its metadata is kept in the database.
type SickNoteAttachment struct {
	ID               string    `json:"id"`
	SickNoteID       string    `json:"sick_note_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	StoragePath      string    `json:"storage_path"`
	Size             int64     `json:"size"`
	ContentType      string    `json:"content_type"`
	CreatedAt        time.Time `json:"created_at"`
}
