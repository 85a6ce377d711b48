package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

type workingTimeRequest struct {
	WorkingDays          []time.Weekday      `json:"working_days" validate:"required,min=1,dive,min=0,max=6"`
	FederalStateOverride *model.FederalState `json:"federal_state_override"`
	ValidFrom            string              `json:"valid_from" validate:"required"`
}

// GetWorkingTimes lists the working times of a person, newest first.
func GetWorkingTimes(persons service.PersonService, departments service.DepartmentService,
	workingTimes service.WorkingTimeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := accessiblePerson(c, persons, departments, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		wts, err := workingTimes.GetByPerson(c.UserContext(), p.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": wts})
	}
}

// PutWorkingTime creates or replaces the working time valid from a date.
//
// @Summary  Set working time
// @Tags     persons
// @Accept   json
// @Param    id   path string             true "person id"
// @Param    body body workingTimeRequest true "working time"
// @Success  200 {object} model.WorkingTime
// @Security BearerAuth
// @Router   /api/persons/{id}/workingtime [put]
func PutWorkingTime(workingTimes service.WorkingTimeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req workingTimeRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		validFrom, err := parseDate("valid_from", req.ValidFrom)
		if err != nil {
			return writeServiceError(c, err)
		}
		if req.FederalStateOverride != nil && !req.FederalStateOverride.Valid() {
			return writeServiceError(c, invalidValue("federal_state_override"))
		}

		wt, err := workingTimes.Touch(c.UserContext(), req.WorkingDays, req.FederalStateOverride, validFrom, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(wt)
	}
}
