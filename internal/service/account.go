package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/validation"
)

// AccountService manages the holidays accounts of persons.
type AccountService interface {
	// GetHolidaysAccount returns ErrNotFound if the person has no account in year.
	GetHolidaysAccount(ctx context.Context, year int, personID string) (*model.Account, error)
	GetHolidaysAccounts(ctx context.Context, year int) ([]model.Account, error)
	GetHolidaysAccountsOfPerson(ctx context.Context, personID string) ([]model.Account, error)

	// CreateHolidaysAccount stores a new account. A nil form.VacationDays is
	// pro-rated from the annual vacation days by the covered months.
	CreateHolidaysAccount(ctx context.Context, form *model.AccountForm) (*model.Account, error)

	// EditHolidaysAccount applies form to an existing account.
	EditHolidaysAccount(ctx context.Context, account *model.Account, form *model.AccountForm) (*model.Account, error)

	// UpdateOrCreateHolidaysAccount validates form and edits the account of its
	// year or creates one. The following years are recomputed afterwards.
	UpdateOrCreateHolidaysAccount(ctx context.Context, form *model.AccountForm) (*model.Account, error)

	// AutoCreateOrUpdateNextYearsHolidaysAccount carries the days left of
	// reference over into the next year's account, creating it if missing.
	AutoCreateOrUpdateNextYearsHolidaysAccount(ctx context.Context, reference *model.Account) (*model.Account, error)

	// UpdateRemainingVacationDays recomputes the remaining days of all accounts following year.
	UpdateRemainingVacationDays(ctx context.Context, year int, personID string) error

	// CreateAccountsForNextYear creates or updates the accounts following
	// referenceYear for every active person and returns how many were touched.
	CreateAccountsForNextYear(ctx context.Context, referenceYear int) (int, error)
}

type accountService struct {
	repo         repository.AccountRepository
	persons      repository.PersonRepository
	vacationDays VacationDaysService
	settings     SettingsService
	log          *zap.Logger
}

func NewAccountService(repo repository.AccountRepository, persons repository.PersonRepository,
	vacationDays VacationDaysService, settings SettingsService, log *zap.Logger) AccountService {
	return &accountService{repo: repo, persons: persons, vacationDays: vacationDays, settings: settings, log: orNop(log)}
}

func (s *accountService) GetHolidaysAccount(ctx context.Context, year int, personID string) (*model.Account, error) {
	if personID == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByPersonAndYear(ctx, personID, year)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (s *accountService) GetHolidaysAccounts(ctx context.Context, year int) ([]model.Account, error) {
	return s.repo.FindByYear(ctx, year)
}

func (s *accountService) GetHolidaysAccountsOfPerson(ctx context.Context, personID string) ([]model.Account, error) {
	return s.repo.FindByPerson(ctx, personID)
}

func (s *accountService) CreateHolidaysAccount(ctx context.Context, form *model.AccountForm) (*model.Account, error) {
	a := &model.Account{ID: uuid.New().String(), PersonID: form.PersonID}
	applyAccountForm(a, form)
	return s.repo.Create(ctx, a)
}

func (s *accountService) EditHolidaysAccount(ctx context.Context, account *model.Account, form *model.AccountForm) (*model.Account, error) {
	applyAccountForm(account, form)
	return s.repo.Update(ctx, account)
}

func applyAccountForm(a *model.Account, form *model.AccountForm) {
	a.ValidFrom = period.DateOf(form.ValidFrom)
	a.ValidTo = period.DateOf(form.ValidTo)
	a.AnnualVacationDays = form.AnnualVacationDays
	if form.VacationDays != nil {
		a.VacationDays = *form.VacationDays
	} else {
		a.VacationDays = ProRatedVacationDays(form.AnnualVacationDays, a.ValidFrom, a.ValidTo)
	}
	a.RemainingVacationDays = form.RemainingVacationDays
	a.RemainingVacationDaysNotExpiring = form.RemainingVacationDaysNotExpiring
	a.Comment = form.Comment
}

func (s *accountService) UpdateOrCreateHolidaysAccount(ctx context.Context, form *model.AccountForm) (*model.Account, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateAccount(form, maxAnnualVacationDays(settings)).Err(); err != nil {
		return nil, err
	}

	var stored *model.Account
	existing, err := s.repo.FindByPersonAndYear(ctx, form.PersonID, form.ValidFrom.Year())
	switch {
	case err == nil:
		stored, err = s.EditHolidaysAccount(ctx, existing, form)
	case errors.Is(err, sql.ErrNoRows):
		stored, err = s.CreateHolidaysAccount(ctx, form)
	}
	if err != nil {
		return nil, err
	}

	if err := s.UpdateRemainingVacationDays(ctx, stored.Year(), stored.PersonID); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *accountService) AutoCreateOrUpdateNextYearsHolidaysAccount(ctx context.Context, reference *model.Account) (*model.Account, error) {
	left, err := s.vacationDays.CalculateTotalLeftVacationDays(ctx, reference)
	if err != nil {
		return nil, err
	}
	remaining := decimal.Max(left, decimal.Zero)

	nextYear := reference.Year() + 1
	next, err := s.repo.FindByPersonAndYear(ctx, reference.PersonID, nextYear)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if next == nil {
		created, err := s.CreateHolidaysAccount(ctx, &model.AccountForm{
			PersonID:                         reference.PersonID,
			ValidFrom:                        period.FirstDayOfYear(nextYear),
			ValidTo:                          period.LastDayOfYear(nextYear),
			AnnualVacationDays:               reference.AnnualVacationDays,
			RemainingVacationDays:            remaining,
			RemainingVacationDaysNotExpiring: decimal.Zero,
		})
		if err != nil {
			return nil, fmt.Errorf("create account %d: %w", nextYear, err)
		}
		s.log.Info("created holidays account",
			zap.String("person_id", created.PersonID), zap.Int("year", nextYear),
			zap.String("remaining_vacation_days", remaining.String()))
		return created, nil
	}

	next.RemainingVacationDays = remaining
	if next.RemainingVacationDaysNotExpiring.GreaterThan(remaining) {
		next.RemainingVacationDaysNotExpiring = remaining
	}
	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("update account %d: %w", nextYear, err)
	}
	return updated, nil
}

func (s *accountService) UpdateRemainingVacationDays(ctx context.Context, year int, personID string) error {
	for y := year; ; y++ {
		current, err := s.repo.FindByPersonAndYear(ctx, personID, y)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		next, err := s.repo.FindByPersonAndYear(ctx, personID, y+1)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		left, err := s.vacationDays.CalculateTotalLeftVacationDays(ctx, current)
		if err != nil {
			return err
		}
		next.RemainingVacationDays = decimal.Max(left, decimal.Zero)
		if next.RemainingVacationDaysNotExpiring.GreaterThan(next.RemainingVacationDays) {
			next.RemainingVacationDaysNotExpiring = next.RemainingVacationDays
		}
		if _, err := s.repo.Update(ctx, next); err != nil {
			return err
		}
	}
}

func (s *accountService) CreateAccountsForNextYear(ctx context.Context, referenceYear int) (int, error) {
	persons, err := s.persons.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	touched := 0
	for _, p := range persons {
		if !p.IsActive() {
			continue
		}
		reference, err := s.repo.FindByPersonAndYear(ctx, p.ID, referenceYear)
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("no holidays account to carry over", zap.String("person_id", p.ID), zap.Int("year", referenceYear))
			continue
		}
		if err != nil {
			return touched, err
		}
		if _, err := s.AutoCreateOrUpdateNextYearsHolidaysAccount(ctx, reference); err != nil {
			return touched, err
		}
		touched++
	}
	return touched, nil
}

// ProRatedVacationDays is annual * months / 12 rounded half up to a half day,
// where months counts every calendar month touched by [from, to].
func ProRatedVacationDays(annual decimal.Decimal, from, to time.Time) decimal.Decimal {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	if months >= 12 {
		return annual
	}
	if months <= 0 {
		return decimal.Zero
	}
	two := decimal.NewFromInt(2)
	days := annual.Mul(decimal.NewFromInt(int64(months))).Div(decimal.NewFromInt(12))
	return days.Mul(two).Round(0).Div(two)
}

func maxAnnualVacationDays(s *model.Settings) int {
	if s.AccountSettings.MaximumAnnualVacationDays == nil {
		return 365
	}
	return *s.AccountSettings.MaximumAnnualVacationDays
}
