package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
)

// maxAvailabilityDays limits the period of an availability request.
const maxAvailabilityDays = 31

var (
	regularWorkHours = decimal.NewFromInt(8)

	ErrPeriodTooLong = errors.New("period must not be longer than 31 days")
)

// AbsenceSpanType classifies why a person is not at work on a day.
type AbsenceSpanType string

const (
	SpanFreetime AbsenceSpanType = "FREETIME"
	SpanHoliday  AbsenceSpanType = "HOLIDAY"
	SpanVacation AbsenceSpanType = "VACATION"
	SpanSickNote AbsenceSpanType = "SICK_NOTE"
)

// AbsenceSpan is one reason of absence on a day. Hours is zero for free time
// and public holidays.
type AbsenceSpan struct {
	Type  AbsenceSpanType `json:"type"`
	Hours decimal.Decimal `json:"hours"`
}

type DayAvailability struct {
	Date           string          `json:"date"`
	HoursAvailable decimal.Decimal `json:"hours_available"`
	Absences       []AbsenceSpan   `json:"absences"`
}

type PersonAvailabilities struct {
	PersonID       string            `json:"person_id"`
	Availabilities []DayAvailability `json:"availabilities"`
}

// AvailabilityService tells how many hours persons are available per day.
type AvailabilityService interface {
	// GetPersonsAvailabilities returns one entry per person and day in [start, end].
	// Periods longer than 31 days are rejected with ErrPeriodTooLong.
	GetPersonsAvailabilities(ctx context.Context, start, end time.Time, persons []model.Person) ([]PersonAvailabilities, error)
}

type availabilityService struct {
	applications repository.ApplicationRepository
	sickNotes    repository.SickNoteRepository
	holidays     PublicHolidaysService
	workingTimes WorkingTimeService
}

func NewAvailabilityService(applications repository.ApplicationRepository, sickNotes repository.SickNoteRepository,
	holidays PublicHolidaysService, workingTimes WorkingTimeService) AvailabilityService {
	return &availabilityService{
		applications: applications,
		sickNotes:    sickNotes,
		holidays:     holidays,
		workingTimes: workingTimes,
	}
}

func (s *availabilityService) GetPersonsAvailabilities(ctx context.Context, start, end time.Time, persons []model.Person) ([]PersonAvailabilities, error) {
	start, end = period.DateOf(start), period.DateOf(end)
	if end.Before(start) {
		return nil, period.ErrInvalidPeriod
	}
	if period.DaysBetween(start, end) >= maxAvailabilityDays {
		return nil, ErrPeriodTooLong
	}

	out := make([]PersonAvailabilities, 0, len(persons))
	for i := range persons {
		days, err := s.availabilitiesOf(ctx, &persons[i], start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, PersonAvailabilities{PersonID: persons[i].ID, Availabilities: days})
	}
	return out, nil
}

func (s *availabilityService) availabilitiesOf(ctx context.Context, p *model.Person, start, end time.Time) ([]DayAvailability, error) {
	vacations, err := s.vacationDays(ctx, p.ID, start, end)
	if err != nil {
		return nil, err
	}
	sickDays, err := s.sickNoteDays(ctx, p.ID, start, end)
	if err != nil {
		return nil, err
	}

	days := period.Days(start, end)
	out := make([]DayAvailability, 0, len(days))
	for _, day := range days {
		expected, err := s.expectedHours(ctx, p.ID, day)
		if err != nil {
			return nil, err
		}

		var spans []AbsenceSpan
		absent := decimal.Zero
		if dl, ok := vacations[day]; ok {
			hours := dl.Duration().Mul(regularWorkHours)
			spans = append(spans, AbsenceSpan{Type: SpanVacation, Hours: hours})
			absent = absent.Add(hours)
		}
		if dl, ok := sickDays[day]; ok {
			hours := dl.Duration().Mul(regularWorkHours)
			spans = append(spans, AbsenceSpan{Type: SpanSickNote, Hours: hours})
			absent = absent.Add(hours)
		}

		if len(spans) == 0 {
			free := SpanFreetime
			if expected.holiday {
				free = SpanHoliday
			}
			spans = append(spans, AbsenceSpan{Type: free, Hours: decimal.Zero})
		}

		out = append(out, DayAvailability{
			Date:           day.Format(period.ISOLayout),
			HoursAvailable: decimal.Max(expected.hours.Sub(absent), decimal.Zero),
			Absences:       spans,
		})
	}
	return out, nil
}

type expectedWork struct {
	hours   decimal.Decimal
	holiday bool
}

// expectedHours is the working duration of the date times the weekday's
// duration of the working time times eight hours.
func (s *availabilityService) expectedHours(ctx context.Context, personID string, day time.Time) (expectedWork, error) {
	wt, err := s.workingTimes.GetByPersonAndValidityDateEqualsOrMinorDate(ctx, personID, day)
	if errors.Is(err, model.ErrNoValidWorkingTime) {
		return expectedWork{hours: decimal.Zero}, nil
	}
	if err != nil {
		return expectedWork{}, err
	}

	state, err := s.workingTimes.GetFederalStateForPerson(ctx, personID, day)
	if err != nil {
		return expectedWork{}, err
	}
	duration, err := s.holidays.WorkingDurationOfDate(ctx, day, state)
	if err != nil {
		return expectedWork{}, err
	}

	hours := duration.Mul(wt.DayLengthFor(day.Weekday()).Duration()).Mul(regularWorkHours)
	return expectedWork{hours: hours, holiday: duration.IsZero()}, nil
}

func (s *availabilityService) vacationDays(ctx context.Context, personID string, start, end time.Time) (map[time.Time]model.DayLength, error) {
	apps, err := s.applications.FindByPersonAndPeriod(ctx, personID, start, end, model.ActiveApplicationStatuses...)
	if err != nil {
		return nil, err
	}
	days := make(map[time.Time]model.DayLength)
	for _, a := range apps {
		for _, d := range period.Days(period.Max(a.StartDate, start), period.Min(a.EndDate, end)) {
			days[d] = a.DayLength
		}
	}
	return days, nil
}

func (s *availabilityService) sickNoteDays(ctx context.Context, personID string, start, end time.Time) (map[time.Time]model.DayLength, error) {
	notes, err := s.sickNotes.FindByPersonAndPeriod(ctx, personID, start, end)
	if err != nil {
		return nil, err
	}
	days := make(map[time.Time]model.DayLength)
	for _, n := range notes {
		if !n.IsActive() {
			continue
		}
		for _, d := range period.Days(period.Max(n.StartDate, start), period.Min(n.EndDate, end)) {
			days[d] = n.DayLength
		}
	}
	return days, nil
}
