package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
)

var stateHolidays = map[model.FederalState][]*cal.Holiday{
	model.BadenWuerttemberg:     de.HolidaysBW,
	model.Bayern:                de.HolidaysBY,
	model.Berlin:                de.HolidaysBE,
	model.Brandenburg:           de.HolidaysBB,
	model.Bremen:                de.HolidaysHB,
	model.Hamburg:               de.HolidaysHH,
	model.Hessen:                de.HolidaysHE,
	model.MecklenburgVorpommern: de.HolidaysMV,
	model.Niedersachsen:         de.HolidaysNI,
	model.NordrheinWestfalen:    de.HolidaysNW,
	model.RheinlandPfalz:        de.HolidaysRP,
	model.Saarland:              de.HolidaysSL,
	model.Sachsen:               de.HolidaysSN,
	model.SachsenAnhalt:         de.HolidaysST,
	model.SchleswigHolstein:     de.HolidaysSH,
	model.Thueringen:            de.HolidaysTH,
}

// PublicHolidaysService answers questions about public holidays of a federal state.
type PublicHolidaysService interface {
	IsPublicHoliday(date time.Time, state model.FederalState) bool

	// WorkingDurationOfDate is 0 on public holidays, the configured duration
	// on Christmas Eve and New Year's Eve and 1 otherwise.
	WorkingDurationOfDate(ctx context.Context, date time.Time, state model.FederalState) (decimal.Decimal, error)

	// AbsenceTypeOfDate is the part of the date that is off work.
	AbsenceTypeOfDate(ctx context.Context, date time.Time, state model.FederalState) (model.DayLength, error)

	// HolidaysOfYear lists the holidays of year, limited to month if it is not zero.
	HolidaysOfYear(ctx context.Context, year int, month time.Month, state model.FederalState) ([]model.PublicHoliday, error)
}

type publicHolidaysService struct {
	settings SettingsService
	cache    *ccache.Cache[map[time.Time]string]
}

func NewPublicHolidaysService(settings SettingsService) PublicHolidaysService {
	return &publicHolidaysService{
		settings: settings,
		cache:    ccache.New(ccache.Configure[map[time.Time]string]().MaxSize(256)),
	}
}

// holidays returns the legal holidays of state in year keyed by date.
func (s *publicHolidaysService) holidays(year int, state model.FederalState) map[time.Time]string {
	key := fmt.Sprintf("%s:%d", state, year)
	if item := s.cache.Get(key); item != nil && !item.Expired() {
		return item.Value()
	}

	days := make(map[time.Time]string)
	for _, h := range stateHolidays[state] {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		days[period.DateOf(actual)] = h.Name
	}
	s.cache.Set(key, days, 24*time.Hour)
	return days
}

func (s *publicHolidaysService) IsPublicHoliday(date time.Time, state model.FederalState) bool {
	_, ok := s.holidays(date.Year(), state)[period.DateOf(date)]
	return ok
}

func (s *publicHolidaysService) WorkingDurationOfDate(ctx context.Context, date time.Time, state model.FederalState) (decimal.Decimal, error) {
	length, err := s.workingDayLength(ctx, date, state)
	if err != nil {
		return decimal.Zero, err
	}
	return length.Duration(), nil
}

func (s *publicHolidaysService) AbsenceTypeOfDate(ctx context.Context, date time.Time, state model.FederalState) (model.DayLength, error) {
	length, err := s.workingDayLength(ctx, date, state)
	if err != nil {
		return "", err
	}
	return length.Inverse(), nil
}

func (s *publicHolidaysService) workingDayLength(ctx context.Context, date time.Time, state model.FederalState) (model.DayLength, error) {
	if s.IsPublicHoliday(date, state) {
		return model.DayLengthZero, nil
	}
	if !period.IsChristmasEve(date) && !period.IsNewYearsEve(date) {
		return model.DayLengthFull, nil
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	if period.IsChristmasEve(date) {
		return settings.WorkingTimeSettings.WorkingDurationForChristmasEve, nil
	}
	return settings.WorkingTimeSettings.WorkingDurationForNewYearsEve, nil
}

func (s *publicHolidaysService) HolidaysOfYear(ctx context.Context, year int, month time.Month, state model.FederalState) ([]model.PublicHoliday, error) {
	out := make([]model.PublicHoliday, 0, 16)
	for date, name := range s.holidays(year, state) {
		if month != 0 && date.Month() != month {
			continue
		}
		out = append(out, model.PublicHoliday{Date: date, Description: name, DayLength: model.DayLengthFull})
	}

	eves := []struct {
		date time.Time
		name string
	}{
		{period.Date(year, time.December, 24), "Heiligabend"},
		{period.Date(year, time.December, 31), "Silvester"},
	}
	for _, eve := range eves {
		if month != 0 && month != time.December {
			break
		}
		absence, err := s.AbsenceTypeOfDate(ctx, eve.date, state)
		if err != nil {
			return nil, err
		}
		if absence == model.DayLengthZero || s.IsPublicHoliday(eve.date, state) {
			continue
		}
		out = append(out, model.PublicHoliday{Date: eve.date, Description: eve.name, DayLength: absence})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
