// Package service implements the leave management use cases on top of the
// repositories. Services return sentinel errors and *validation.Errors;
// mapping them to transport codes is left to the HTTP layer.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"urlaubsverwaltung/internal/event"
	"urlaubsverwaltung/internal/period"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("not found")
	ErrReaderNil         = errors.New("reader is nil")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidState      = errors.New("invalid state for this action")
	ErrRemindAlreadySent = errors.New("reminder already sent today")
	ErrImpatientRemind   = errors.New("application is too recent to remind")
	ErrBadCredentials    = errors.New("bad credentials")
	ErrDisabled          = errors.New("account is disabled")
)

var (
	now      = time.Now
	location = time.UTC
)

// SetLocation sets the time zone "today" is computed in.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// Location returns the time zone set by SetLocation.
func Location() *time.Location {
	return location
}

func today() time.Time {
	return period.DateOf(now().In(location))
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// publish delivers e and only logs failures. The state change is already stored.
func publish(ctx context.Context, pub event.Publisher, log *zap.Logger, e event.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Warn("publish event failed", zap.String("type", string(e.Type)), zap.String("event_id", e.ID), zap.Error(err))
	}
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
