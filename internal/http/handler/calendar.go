package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/ical"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

type calendarRequest struct {
	Period model.CalendarPeriod `json:"period"`
}

// calendarKind maps the :kind route segment.
func calendarKind(c *fiber.Ctx) (model.CalendarKind, error) {
	switch strings.ToLower(c.Params("kind")) {
	case "company":
		return model.CalendarKindCompany, nil
	case "personal":
		return model.CalendarKindPersonal, nil
	}
	return "", fiber.ErrNotFound
}

// CreateCalendar creates the calendar of the signed in person or gives it a
// new secret. An unknown period falls back to one year.
//
// @Summary  Create calendar
// @Tags     calendars
// @Accept   json
// @Param    id   path string          true  "person id"
// @Param    kind path string          true  "company or personal"
// @Param    body body calendarRequest false "period"
// @Success  201 {object} model.Calendar
// @Security BearerAuth
// @Router   /api/persons/{id}/calendar/{kind} [post]
func CreateCalendar(svc service.CalendarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := calendarKind(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		p, err := ownPerson(c, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		var req calendarRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
			}
		}
		cal, err := svc.CreateCalendar(c.UserContext(), p.ID, kind, req.Period)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cal)
	}
}

func GetCalendar(svc service.CalendarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := calendarKind(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		p, err := ownPerson(c, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		cal, err := svc.GetCalendar(c.UserContext(), p.ID, kind)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cal)
	}
}

func DeleteCalendar(svc service.CalendarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := calendarKind(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		p, err := ownPerson(c, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.DeleteCalendar(c.UserContext(), p.ID, kind); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CalendarFeed serves an iCal feed. The secret query parameter replaces the
// authentication; a feed without absences is answered with 204.
//
// @Summary  Company calendar feed
// @Tags     calendars
// @Produce  text/calendar
// @Param    id     path  string true "person id"
// @Param    secret query string true "calendar secret"
// @Success  200 {string} string
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /web/company/persons/{id}/calendar [get]
func CalendarFeed(svc service.CalendarService, kind model.CalendarKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feed, err := svc.GetCalendarFeed(c.UserContext(), c.Params("id"), kind, c.Query("secret"))
		if err != nil {
			if errors.Is(err, ical.ErrNoAbsences) {
				return c.SendStatus(fiber.StatusNoContent)
			}
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="calendar.ics"`)
		return c.SendString(feed)
	}
}
