package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/logger"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

func GetSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.GetSettings(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// SaveSettings validates and stores the settings. Restricting the company
// calendar removes the company calendars of persons without BOSS or OFFICE.
//
// @Summary  Save settings
// @Tags     settings
// @Accept   json
// @Param    body body model.Settings true "settings"
// @Success  200 {object} model.Settings
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /api/settings [put]
func SaveSettings(svc service.SettingsService, calendars service.CalendarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s model.Settings
		if err := c.BodyParser(&s); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		saved, err := svc.Save(c.UserContext(), &s)
		if err != nil {
			return writeServiceError(c, err)
		}
		n, err := calendars.RestrictCompanyCalendars(c.UserContext(), saved)
		if err != nil {
			return writeServiceError(c, err)
		}
		if n > 0 {
			logger.FromContext(c.UserContext()).Info("company calendars removed", zap.Int("persons", n))
		}
		return c.JSON(saved)
	}
}
