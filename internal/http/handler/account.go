package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/service"
)

type accountResponse struct {
	Account          *model.Account          `json:"account"`
	VacationDaysLeft *model.VacationDaysLeft `json:"vacation_days_left"`
	TotalDaysLeft    decimal.Decimal         `json:"total_days_left"`
}

type accountRequest struct {
	ValidFrom                        string           `json:"valid_from"`
	ValidTo                          string           `json:"valid_to"`
	AnnualVacationDays               decimal.Decimal  `json:"annual_vacation_days"`
	VacationDays                     *decimal.Decimal `json:"vacation_days"`
	RemainingVacationDays            decimal.Decimal  `json:"remaining_vacation_days"`
	RemainingVacationDaysNotExpiring decimal.Decimal  `json:"remaining_vacation_days_not_expiring"`
	Comment                          string           `json:"comment" validate:"max=200"`
}

// GetAccount returns the holidays account of a person for a year together
// with the days left in it.
//
// @Summary  Get holidays account
// @Tags     accounts
// @Param    id   path string true "person id"
// @Param    year path int    true "year"
// @Success  200 {object} accountResponse
// @Security BearerAuth
// @Router   /api/persons/{id}/accounts/{year} [get]
func GetAccount(persons service.PersonService, departments service.DepartmentService,
	accounts service.AccountService, vacationDays service.VacationDaysService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := yearParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		p, err := accessiblePerson(c, persons, departments, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}

		ctx := c.UserContext()
		account, err := accounts.GetHolidaysAccount(ctx, year, p.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		nextYear, err := accounts.GetHolidaysAccount(ctx, year+1, p.ID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			return writeServiceError(c, err)
		}

		left, err := vacationDays.GetVacationDaysLeft(ctx, account, nextYear)
		if err != nil {
			return writeServiceError(c, err)
		}
		total, err := vacationDays.CalculateTotalLeftVacationDays(ctx, account)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(accountResponse{Account: account, VacationDaysLeft: left, TotalDaysLeft: total})
	}
}

// PutAccount creates or updates the holidays account of a person for a year.
// The validity defaults to the whole year.
//
// @Summary  Create or update holidays account
// @Tags     accounts
// @Accept   json
// @Param    id   path string         true "person id"
// @Param    year path int            true "year"
// @Param    body body accountRequest true "account"
// @Success  200 {object} model.Account
// @Security BearerAuth
// @Router   /api/persons/{id}/accounts/{year} [put]
func PutAccount(accounts service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := yearParam(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req accountRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}

		form := &model.AccountForm{
			PersonID:                         c.Params("id"),
			ValidFrom:                        period.FirstDayOfYear(year),
			ValidTo:                          period.LastDayOfYear(year),
			AnnualVacationDays:               req.AnnualVacationDays,
			VacationDays:                     req.VacationDays,
			RemainingVacationDays:            req.RemainingVacationDays,
			RemainingVacationDaysNotExpiring: req.RemainingVacationDaysNotExpiring,
			Comment:                          req.Comment,
		}
		if from, err := parseDate("valid_from", req.ValidFrom); err != nil {
			return writeServiceError(c, err)
		} else if !from.IsZero() {
			form.ValidFrom = from
		}
		if to, err := parseDate("valid_to", req.ValidTo); err != nil {
			return writeServiceError(c, err)
		} else if !to.IsZero() {
			form.ValidTo = to
		}

		account, err := accounts.UpdateOrCreateHolidaysAccount(c.UserContext(), form)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(account)
	}
}
