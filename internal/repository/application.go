package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
)

// ApplicationRepository defines data access for applications for leave.
type ApplicationRepository interface {
	Create(ctx context.Context, a *model.Application) (*model.Application, error)
	Update(ctx context.Context, a *model.Application) (*model.Application, error)
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// FindByPersonAndPeriod returns the applications of a person touching [start, end]
	// in one of statuses, ordered by start date. No statuses means all.
	FindByPersonAndPeriod(ctx context.Context, personID string, start, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error)

	// FindByPeriod is FindByPersonAndPeriod for all persons.
	FindByPeriod(ctx context.Context, start, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error)

	// FindByStatuses returns all applications in one of statuses ordered by start date.
	FindByStatuses(ctx context.Context, statuses ...model.ApplicationStatus) ([]model.Application, error)

	// SumOvertimeReduction adds up the hours of waiting and allowed overtime applications of a person.
	SumOvertimeReduction(ctx context.Context, personID string) (decimal.Decimal, error)
}

// ApplicationCommentRepository defines data access for application comments.
type ApplicationCommentRepository interface {
	Create(ctx context.Context, c *model.ApplicationComment) (*model.ApplicationComment, error)
	FindByApplication(ctx context.Context, applicationID string) ([]model.ApplicationComment, error)
}
