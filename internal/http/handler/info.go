package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/service"
)

// InfoServices are the read models behind the informational endpoints.
type InfoServices struct {
	Persons      service.PersonService
	Departments  service.DepartmentService
	Applications service.ApplicationService
	Absences     service.AbsenceService
	Availability service.AvailabilityService
	Holidays     service.PublicHolidaysService
	WorkDays     service.WorkDaysService
	WorkingTimes service.WorkingTimeService
	Settings     service.SettingsService
}

// requestedPerson reads the mandatory person_id query parameter.
func (s InfoServices) requestedPerson(c *fiber.Ctx) (*model.Person, error) {
	id := c.Query("person_id")
	if id == "" {
		return nil, invalidValue("person_id")
	}
	return accessiblePerson(c, s.Persons, s.Departments, id)
}

// Vacations lists the active applications of a person between from and to.
//
// @Summary  Vacations of a person
// @Tags     info
// @Param    person_id query string true "person id"
// @Param    from      query string false "first day (02.01.2006 or 2006-01-02), defaults to 1 January"
// @Param    to        query string false "last day (02.01.2006 or 2006-01-02), defaults to 31 December"
// @Success  200 {object} map[string][]model.Application
// @Security BearerAuth
// @Router   /api/vacations [get]
func Vacations(s InfoServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		p, err := s.requestedPerson(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		apps, err := s.Applications.GetForPersonAndPeriod(c.UserContext(), p.ID, from, to)
		if err != nil {
			return writeServiceError(c, err)
		}
		active := make([]model.Application, 0, len(apps))
		for _, a := range apps {
			if a.IsActive() {
				active = append(active, a)
			}
		}
		return c.JSON(fiber.Map{"data": active})
	}
}

// Absences lists the absent days of a person. type is VACATION, SICK_NOTE or empty for both.
//
// @Summary  Absent days of a person
// @Tags     info
// @Param    person_id query string true  "person id"
// @Param    from      query string false "first day (02.01.2006 or 2006-01-02), defaults to 1 January"
// @Param    to        query string false "last day (02.01.2006 or 2006-01-02), defaults to 31 December"
// @Param    type      query string false "VACATION or SICK_NOTE"
// @Success  200 {object} map[string][]service.DayAbsence
// @Security BearerAuth
// @Router   /api/absences [get]
func Absences(s InfoServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		typ := service.DayAbsenceType(c.Query("type"))
		if typ != "" && typ != service.DayAbsenceVacation && typ != service.DayAbsenceSickNote {
			return writeServiceError(c, invalidValue("type"))
		}
		p, err := s.requestedPerson(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		days, err := s.Absences.GetDayAbsences(c.UserContext(), p.ID, from, to, typ)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": days})
	}
}

// Holidays lists the public holidays of a year, optionally of one month. The
// federal state is taken from person_id, then from state, then from the settings.
//
// @Summary  Public holidays
// @Tags     info
// @Param    year      query int    true  "year"
// @Param    month     query int    false "month (1-12)"
// @Param    person_id query string false "person id"
// @Param    state     query string false "federal state"
// @Success  200 {object} map[string][]model.PublicHoliday
// @Security BearerAuth
// @Router   /api/holidays [get]
func Holidays(s InfoServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil || year < 1900 || year > 9999 {
			return writeServiceError(c, invalidValue("year"))
		}
		month := c.QueryInt("month", 0)
		if month < 0 || month > 12 {
			return writeServiceError(c, invalidValue("month"))
		}

		ctx := c.UserContext()
		var state model.FederalState
		switch {
		case c.Query("person_id") != "":
			p, err := s.requestedPerson(c)
			if err != nil {
				return writeServiceError(c, err)
			}
			state, err = s.WorkingTimes.GetFederalStateForPerson(ctx, p.ID, period.FirstDayOfYear(year))
			if err != nil {
				return writeServiceError(c, err)
			}
		case c.Query("state") != "":
			state = model.FederalState(c.Query("state"))
			if !state.Valid() {
				return writeServiceError(c, invalidValue("state"))
			}
		default:
			settings, err := s.Settings.GetSettings(ctx)
			if err != nil {
				return writeServiceError(c, err)
			}
			state = settings.WorkingTimeSettings.FederalState
		}

		holidays, err := s.Holidays.HolidaysOfYear(ctx, year, time.Month(month), state)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": holidays, "federal_state": state})
	}
}

// WorkDays counts the working days of a person between from and to.
//
// @Summary  Working days of a person
// @Tags     info
// @Param    person_id query string true  "person id"
// @Param    from      query string false "first day (02.01.2006 or 2006-01-02), defaults to 1 January"
// @Param    to        query string false "last day (02.01.2006 or 2006-01-02), defaults to 31 December"
// @Param    length    query string false "FULL, MORNING or NOON" default(FULL)
// @Success  200 {object} map[string]string
// @Security BearerAuth
// @Router   /api/workdays [get]
func WorkDays(s InfoServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		length := model.DayLength(c.Query("length", string(model.DayLengthFull)))
		if !length.Valid() || length == model.DayLengthZero {
			return writeServiceError(c, invalidValue("length"))
		}
		p, err := s.requestedPerson(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		days, err := s.WorkDays.GetWorkDays(c.UserContext(), length, from, to, p.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"work_days": days})
	}
}

// Availabilities tells how many hours a person is available per day.
//
// @Summary  Availabilities of a person
// @Tags     info
// @Param    person_id query string true "person id"
// @Param    from      query string false "first day (02.01.2006 or 2006-01-02), defaults to 1 January"
// @Param    to        query string true  "last day (02.01.2006 or 2006-01-02), at most 31 days after from"
// @Success  200 {object} map[string][]service.PersonAvailabilities
// @Security BearerAuth
// @Router   /api/availabilities [get]
func Availabilities(s InfoServices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		p, err := s.requestedPerson(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := s.Availability.GetPersonsAvailabilities(c.UserContext(), from, to, []model.Person{*p})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": res})
	}
}
