package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
)

// CalculationService checks applications against the holidays accounts.
type CalculationService interface {
	// CheckApplication reports whether the accounts of the person cover app.
	// A period spanning two years is checked in each year separately.
	CheckApplication(ctx context.Context, app *model.Application) (bool, error)
}

type calculationService struct {
	accounts     repository.AccountRepository
	accountSvc   AccountService
	vacationDays VacationDaysService
	workDays     WorkDaysService
}

func NewCalculationService(accounts repository.AccountRepository, accountSvc AccountService,
	vacationDays VacationDaysService, workDays WorkDaysService) CalculationService {
	return &calculationService{accounts: accounts, accountSvc: accountSvc, vacationDays: vacationDays, workDays: workDays}
}

func (s *calculationService) CheckApplication(ctx context.Context, app *model.Application) (bool, error) {
	start, end := app.StartDate, app.EndDate
	if start.Year() == end.Year() {
		return s.checkYear(ctx, app, start, end)
	}

	ok, err := s.checkYear(ctx, app, start, period.LastDayOfYear(start.Year()))
	if err != nil || !ok {
		return false, err
	}
	return s.checkYear(ctx, app, period.FirstDayOfYear(end.Year()), end)
}

func (s *calculationService) checkYear(ctx context.Context, app *model.Application, start, end time.Time) (bool, error) {
	days, err := s.workDays.GetWorkDays(ctx, app.DayLength, start, end, app.PersonID)
	if err != nil {
		return false, err
	}

	account, err := s.account(ctx, app.PersonID, start.Year())
	if err != nil || account == nil {
		return false, err
	}
	next, err := s.accounts.FindByPersonAndYear(ctx, app.PersonID, start.Year()+1)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	left, err := s.vacationDays.GetVacationDaysLeft(ctx, account, next)
	if err != nil {
		return false, err
	}

	available := left.VacationDays.Add(left.RemainingVacationDaysNotExpiring)
	if period.IsBeforeApril(start) {
		available = left.VacationDays.Add(left.RemainingVacationDays)
	}
	available = available.Sub(left.VacationDaysUsedNextYear)
	return available.GreaterThanOrEqual(days), nil
}

// account returns the account of year, creating it from the previous year's
// account if possible. It returns nil if neither exists.
func (s *calculationService) account(ctx context.Context, personID string, year int) (*model.Account, error) {
	a, err := s.accounts.FindByPersonAndYear(ctx, personID, year)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	previous, err := s.accounts.FindByPersonAndYear(ctx, personID, year-1)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.accountSvc.AutoCreateOrUpdateNextYearsHolidaysAccount(ctx, previous)
}
