package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
)

// VacationDaysService computes what is left of holidays accounts.
type VacationDaysService interface {
	// GetVacationDaysLeft subtracts the used days of the account year. nextYear
	// may be nil; otherwise its already used remaining days are reported.
	GetVacationDaysLeft(ctx context.Context, account, nextYear *model.Account) (*model.VacationDaysLeft, error)

	// GetRemainingVacationDaysAlreadyUsed is the consumed part of the remaining
	// days of account. It is zero for a nil account.
	GetRemainingVacationDaysAlreadyUsed(ctx context.Context, account *model.Account) (decimal.Decimal, error)

	// CalculateTotalLeftVacationDays is what is carried over into the next year.
	CalculateTotalLeftVacationDays(ctx context.Context, account *model.Account) (decimal.Decimal, error)

	// GetUsedDaysBeforeAndAfterApril counts the days of active holiday
	// applications inside the validity of account.
	GetUsedDaysBeforeAndAfterApril(ctx context.Context, account *model.Account) (before, after decimal.Decimal, err error)
}

type vacationDaysService struct {
	applications repository.ApplicationRepository
	workDays     WorkDaysService
}

func NewVacationDaysService(applications repository.ApplicationRepository, workDays WorkDaysService) VacationDaysService {
	return &vacationDaysService{applications: applications, workDays: workDays}
}

func (s *vacationDaysService) GetVacationDaysLeft(ctx context.Context, account, nextYear *model.Account) (*model.VacationDaysLeft, error) {
	before, after, err := s.GetUsedDaysBeforeAndAfterApril(ctx, account)
	if err != nil {
		return nil, err
	}
	usedNextYear, err := s.GetRemainingVacationDaysAlreadyUsed(ctx, nextYear)
	if err != nil {
		return nil, err
	}

	left := model.NewVacationDaysLeft(account.VacationDays, account.RemainingVacationDays,
		account.RemainingVacationDaysNotExpiring, before, after)
	left.VacationDaysUsedNextYear = usedNextYear
	return &left, nil
}

func (s *vacationDaysService) GetRemainingVacationDaysAlreadyUsed(ctx context.Context, account *model.Account) (decimal.Decimal, error) {
	if account == nil || account.RemainingVacationDays.IsZero() {
		return decimal.Zero, nil
	}
	left, err := s.GetVacationDaysLeft(ctx, account, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return account.RemainingVacationDays.Sub(left.RemainingVacationDays), nil
}

func (s *vacationDaysService) CalculateTotalLeftVacationDays(ctx context.Context, account *model.Account) (decimal.Decimal, error) {
	left, err := s.GetVacationDaysLeft(ctx, account, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return left.VacationDays.Add(left.RemainingVacationDaysNotExpiring), nil
}

func (s *vacationDaysService) GetUsedDaysBeforeAndAfterApril(ctx context.Context, account *model.Account) (decimal.Decimal, decimal.Decimal, error) {
	from, to := account.ValidFrom, account.ValidTo
	apps, err := s.applications.FindByPersonAndPeriod(ctx, account.PersonID, from, to, model.ActiveApplicationStatuses...)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	before, after := decimal.Zero, decimal.Zero
	for _, app := range apps {
		if app.VacationType != model.VacationHoliday {
			continue
		}
		start := period.Max(app.StartDate, from)
		end := period.Min(app.EndDate, to)
		b, a, err := s.workDays.GetWorkDaysSplitByApril(ctx, app.DayLength, start, end, app.PersonID)
		if errors.Is(err, model.ErrNoValidWorkingTime) {
			continue
		}
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		before = before.Add(b)
		after = after.Add(a)
	}
	return before, after, nil
}
