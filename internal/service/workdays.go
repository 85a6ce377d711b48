package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
)

// WorkDaysService counts the vacation days a period costs a person.
type WorkDaysService interface {
	// GetWorkDays needs a working time valid at start, otherwise it returns
	// model.ErrNoValidWorkingTime.
	GetWorkDays(ctx context.Context, dayLength model.DayLength, start, end time.Time, personID string) (decimal.Decimal, error)

	// GetWorkDaysSplitByApril returns the work days before April and from April on separately.
	GetWorkDaysSplitByApril(ctx context.Context, dayLength model.DayLength, start, end time.Time, personID string) (before, after decimal.Decimal, err error)
}

type workDaysService struct {
	holidays     PublicHolidaysService
	workingTimes WorkingTimeService
}

func NewWorkDaysService(holidays PublicHolidaysService, workingTimes WorkingTimeService) WorkDaysService {
	return &workDaysService{holidays: holidays, workingTimes: workingTimes}
}

func (s *workDaysService) GetWorkDays(ctx context.Context, dayLength model.DayLength, start, end time.Time, personID string) (decimal.Decimal, error) {
	wt, err := s.workingTimes.GetByPersonAndValidityDateEqualsOrMinorDate(ctx, personID, start)
	if err != nil {
		return decimal.Zero, err
	}
	state, err := s.workingTimes.GetFederalStateForPerson(ctx, personID, start)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, day := range period.Days(start, end) {
		weekday := wt.DayLengthFor(day.Weekday()).Duration()
		if weekday.IsZero() {
			continue
		}
		duration, err := s.holidays.WorkingDurationOfDate(ctx, day, state)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(duration.Mul(weekday))
	}

	if sum.LessThan(decimal.NewFromInt(1)) {
		return sum, nil
	}
	return sum.Mul(dayLength.Duration()).Round(1), nil
}

func (s *workDaysService) GetWorkDaysSplitByApril(ctx context.Context, dayLength model.DayLength, start, end time.Time, personID string) (decimal.Decimal, decimal.Decimal, error) {
	lastOfMarch := period.LastDayBeforeApril(start.Year())
	if !start.After(lastOfMarch) && end.After(lastOfMarch) {
		before, err := s.GetWorkDays(ctx, dayLength, start, lastOfMarch, personID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		after, err := s.GetWorkDays(ctx, dayLength, lastOfMarch.AddDate(0, 0, 1), end, personID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return before, after, nil
	}

	days, err := s.GetWorkDays(ctx, dayLength, start, end, personID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if period.IsBeforeApril(start) && start.Year() == end.Year() {
		return days, decimal.Zero, nil
	}
	return decimal.Zero, days, nil
}
