// Package event publishes domain events in place of mails and calendar syncs.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type names a domain event. It is also the last part of the NATS subject.
type Type string

const (
	ApplicationApplied          Type = "application.applied"
	ApplicationAppliedOnBehalf  Type = "application.applied_on_behalf"
	ApplicationTemporaryAllowed Type = "application.temporary_allowed"
	ApplicationAllowed          Type = "application.allowed"
	ApplicationRejected         Type = "application.rejected"
	ApplicationCancelled        Type = "application.cancelled"
	ApplicationRevoked          Type = "application.revoked"
	ApplicationReferred         Type = "application.referred"
	ApplicationReminded         Type = "application.reminded"
	ApplicationWaitingReminder  Type = "application.waiting_reminder"
	ApplicationUpcomingReminder Type = "application.upcoming_reminder"

	SickNoteCreated      Type = "sicknote.created"
	SickNoteUpdated      Type = "sicknote.updated"
	SickNoteCancelled    Type = "sicknote.cancelled"
	SickNoteConverted    Type = "sicknote.converted"
	SickNoteEndOfSickPay Type = "sicknote.end_of_sick_pay"

	PersonCreated  Type = "person.created"
	AccountUpdated Type = "account.updated"
)

// Event is a single domain event.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	// Recipients are the IDs of the persons to notify.
	Recipients []string `json:"recipients,omitempty"`
	Payload    any      `json:"payload"`
}

// New creates an event with a fresh ID.
func New(t Type, payload any, recipients ...string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Recipients: recipients,
		Payload:    payload,
	}
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
