package handler

import (
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

type sickNoteRequest struct {
	PersonID     string             `json:"person_id" validate:"required"`
	Type         model.SickNoteType `json:"type" validate:"required"`
	StartDate    string             `json:"start_date" validate:"required"`
	EndDate      string             `json:"end_date" validate:"required"`
	DayLength    model.DayLength    `json:"day_length" validate:"required"`
	AubStartDate *string            `json:"aub_start_date"`
	AubEndDate   *string            `json:"aub_end_date"`
	Comment      string             `json:"comment"`
}

func (r *sickNoteRequest) toSickNote() (*model.SickNote, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return nil, err
	}
	aubStart, err := parseOptionalDate("aub_start_date", r.AubStartDate)
	if err != nil {
		return nil, err
	}
	aubEnd, err := parseOptionalDate("aub_end_date", r.AubEndDate)
	if err != nil {
		return nil, err
	}
	return &model.SickNote{
		PersonID:     r.PersonID,
		Type:         r.Type,
		StartDate:    start,
		EndDate:      end,
		DayLength:    r.DayLength,
		AubStartDate: aubStart,
		AubEndDate:   aubEnd,
	}, nil
}

type convertRequest struct {
	VacationType model.VacationCategory `json:"vacation_type" validate:"required"`
	Reason       string                 `json:"reason"`
}

// ListSickNotes lists sick notes between from and to. With person_id only the
// sick notes of that person are returned, otherwise all of them, which is
// reserved for the office.
//
// @Summary  List sick notes
// @Tags     sicknotes
// @Param    from      query string false "first day (02.01.2006 or 2006-01-02), defaults to 1 January"
// @Param    to        query string false "last day (02.01.2006 or 2006-01-02), defaults to 31 December"
// @Param    person_id query string false "person id"
// @Success  200 {object} map[string][]model.SickNote
// @Security BearerAuth
// @Router   /api/sicknotes [get]
func ListSickNotes(svc service.SickNoteService, persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return writeServiceError(c, err)
		}

		ctx := c.UserContext()
		var notes []model.SickNote
		if id := c.Query("person_id"); id != "" {
			if _, err := accessiblePerson(c, persons, departments, id); err != nil {
				return writeServiceError(c, err)
			}
			notes, err = svc.GetForPersonAndPeriod(ctx, id, from, to)
		} else {
			if !middleware.CurrentPerson(c).HasRole(model.RoleOffice) {
				return writeServiceError(c, service.ErrAccessDenied)
			}
			notes, err = svc.GetInPeriod(ctx, from, to)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": notes})
	}
}

func GetSickNote(svc service.SickNoteService, persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if _, err := accessiblePerson(c, persons, departments, sn.PersonID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sn)
	}
}

// CreateSickNote records the sickness of a person.
//
// @Summary  Create sick note
// @Tags     sicknotes
// @Accept   json
// @Param    body body sickNoteRequest true "sick note"
// @Success  201 {object} model.SickNote
// @Failure  400 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Security BearerAuth
// @Router   /api/sicknotes [post]
func CreateSickNote(svc service.SickNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sickNoteRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		sn, err := req.toSickNote()
		if err != nil {
			return writeServiceError(c, err)
		}
		created, err := svc.Create(c.UserContext(), sn, middleware.CurrentPerson(c), req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

func UpdateSickNote(svc service.SickNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sickNoteRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		sn, err := req.toSickNote()
		if err != nil {
			return writeServiceError(c, err)
		}
		sn.ID = c.Params("id")
		updated, err := svc.Update(c.UserContext(), sn, middleware.CurrentPerson(c), req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

func CancelSickNote(svc service.SickNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commentRequest
		if len(c.Body()) > 0 {
			if err := bind(c, &req); err != nil {
				return writeServiceError(c, err)
			}
		}
		sn, err := svc.Cancel(c.UserContext(), c.Params("id"), middleware.CurrentPerson(c), req.Comment)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sn)
	}
}

// ConvertSickNote turns a sick note into an allowed application for leave.
//
// @Summary  Convert sick note to vacation
// @Tags     sicknotes
// @Accept   json
// @Param    id   path string         true "sick note id"
// @Param    body body convertRequest true "conversion"
// @Success  201 {object} model.Application
// @Security BearerAuth
// @Router   /api/sicknotes/{id}/convert [post]
func ConvertSickNote(svc service.SickNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req convertRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		app, err := svc.ConvertToVacation(c.UserContext(), c.Params("id"), req.VacationType, req.Reason, middleware.CurrentPerson(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	}
}

func SickNoteComments(svc service.SickNoteService, persons service.PersonService, departments service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		sn, err := svc.Get(ctx, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if _, err := accessiblePerson(c, persons, departments, sn.PersonID); err != nil {
			return writeServiceError(c, err)
		}
		comments, err := svc.GetComments(ctx, sn.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": comments})
	}
}
