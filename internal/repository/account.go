package repository

import (
	"context"
	"time"

	"urlaubsverwaltung/internal/model"
)

// AccountRepository defines data access for holidays accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) (*model.Account, error)
	Update(ctx context.Context, a *model.Account) (*model.Account, error)
	// FindByPersonAndYear returns the account of the person valid in year.
	FindByPersonAndYear(ctx context.Context, personID string, year int) (*model.Account, error)
	FindByYear(ctx context.Context, year int) ([]model.Account, error)
	FindByPerson(ctx context.Context, personID string) ([]model.Account, error)
}

// WorkingTimeRepository defines data access for working times.
type WorkingTimeRepository interface {
	Create(ctx context.Context, w *model.WorkingTime) (*model.WorkingTime, error)
	Update(ctx context.Context, w *model.WorkingTime) (*model.WorkingTime, error)
	// FindByPersonAndValidFrom returns the working time starting exactly at validFrom.
	FindByPersonAndValidFrom(ctx context.Context, personID string, validFrom time.Time) (*model.WorkingTime, error)
	// FindByPersonValidAt returns the working time with the latest valid from not after date.
	FindByPersonValidAt(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error)
	FindByPerson(ctx context.Context, personID string) ([]model.WorkingTime, error)
}

// SettingsRepository stores the single settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) (*model.Settings, error)
}

// CalendarRepository defines data access for calendar feeds.
type CalendarRepository interface {
	// Save creates or replaces the calendar of kind for the person.
	Save(ctx context.Context, c *model.Calendar) (*model.Calendar, error)
	FindByPersonAndKind(ctx context.Context, personID string, kind model.CalendarKind) (*model.Calendar, error)
	FindBySecret(ctx context.Context, secret string) (*model.Calendar, error)
	// Delete removes the calendar of kind for the person. It returns nil if none existed.
	Delete(ctx context.Context, personID string, kind model.CalendarKind) error
}
