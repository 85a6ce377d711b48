package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

type applyRequest struct {
	PersonID             string                 `json:"person_id"`
	StartDate            string                 `json:"start_date" validate:"required"`
	EndDate              string                 `json:"end_date" validate:"required"`
	VacationType         model.VacationCategory `json:"vacation_type" validate:"required"`
	DayLength            model.DayLength        `json:"day_length" validate:"required"`
	Reason               string                 `json:"reason"`
	Address              string                 `json:"address"`
	HolidayReplacementID string                 `json:"holiday_replacement_id"`
	Hours                *decimal.Decimal       `json:"hours"`
	TeamInformed         bool                   `json:"team_informed"`
	Comment              string                 `json:"comment"`
}

// commentRequest is the body of the state changing actions.
type commentRequest struct {
	Comment string `json:"comment"`
}

type referRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

// WaitingApplications lists the waiting applications the signed in person may decide on.
//
// @Summary  Waiting applications
// @Tags     applications
// @Success  200 {object} map[string][]model.Application
// @Security BearerAuth
// @Router   /api/applications [get]
func WaitingApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apps, err := svc.GetWaitingApplications(c.UserContext(), middleware.CurrentPerson(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": apps})
	}
}

// GetApplication returns an application of a person the signed in person may see.
func GetApplication(svc service.ApplicationService, persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if _, err := accessiblePerson(c, persons, departments, app.PersonID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// Apply files an application for leave. Without a person_id the signed in
// person applies for itself.
//
// @Summary  Apply for leave
// @Tags     applications
// @Accept   json
// @Param    body body applyRequest true "application"
// @Success  201 {object} model.Application
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /api/applications [post]
func Apply(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req applyRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		start, err := parseDate("start_date", req.StartDate)
		if err != nil {
			return writeServiceError(c, err)
		}
		end, err := parseDate("end_date", req.EndDate)
		if err != nil {
			return writeServiceError(c, err)
		}

		applier := middleware.CurrentPerson(c)
		app := &model.Application{
			PersonID:             req.PersonID,
			StartDate:            start,
			EndDate:              end,
			VacationType:         req.VacationType,
			DayLength:            req.DayLength,
			Reason:               req.Reason,
			Address:              req.Address,
			HolidayReplacementID: req.HolidayReplacementID,
			Hours:                req.Hours,
			TeamInformed:         req.TeamInformed,
		}
		if app.PersonID == "" {
			app.PersonID = applier.ID
		}

		created, err := svc.Apply(c.UserContext(), app, applier, req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

type applicationAction func(ctx context.Context, id string, p *model.Person, comment string) (*model.Application, error)

// decide runs one of the comment carrying state changes.
func decide(action applicationAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commentRequest
		if len(c.Body()) > 0 {
			if err := bind(c, &req); err != nil {
				return writeServiceError(c, err)
			}
		}
		app, err := action(c.UserContext(), c.Params("id"), middleware.CurrentPerson(c), req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// AllowApplication allows or temporarily allows an application.
//
// @Summary  Allow application
// @Tags     applications
// @Param    id   path string         true  "application id"
// @Param    body body commentRequest false "comment"
// @Success  200 {object} model.Application
// @Failure  403 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Security BearerAuth
// @Router   /api/applications/{id}/allow [post]
func AllowApplication(svc service.ApplicationService) fiber.Handler {
	return decide(svc.Allow)
}

func RejectApplication(svc service.ApplicationService) fiber.Handler {
	return decide(svc.Reject)
}

func CancelApplication(svc service.ApplicationService) fiber.Handler {
	return decide(svc.Cancel)
}

// ReferApplication asks another privileged person to decide.
func ReferApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req referRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		app, err := svc.Refer(c.UserContext(), c.Params("id"), req.RecipientID, middleware.CurrentPerson(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// RemindApplication reminds the deciders of a waiting application. Only the
// applicant may remind.
func RemindApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		app, err := svc.Get(ctx, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if _, err := ownPerson(c, app.PersonID); err != nil {
			return writeServiceError(c, err)
		}
		app, err = svc.Remind(ctx, app.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

func ApplicationComments(svc service.ApplicationService, persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		app, err := svc.Get(ctx, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if _, err := accessiblePerson(c, persons, departments, app.PersonID); err != nil {
			return writeServiceError(c, err)
		}
		comments, err := svc.GetComments(ctx, app.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": comments})
	}
}

// AddApplicationComment appends a free comment to an application.
func AddApplicationComment(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commentRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		comment, err := svc.AddComment(c.UserContext(), c.Params("id"), middleware.CurrentPerson(c), req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}
