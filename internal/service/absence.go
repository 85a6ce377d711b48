package service

import (
	"context"
	"time"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
)

// DayAbsenceType filters day absences.
type DayAbsenceType string

const (
	DayAbsenceVacation DayAbsenceType = "VACATION"
	DayAbsenceSickNote DayAbsenceType = "SICK_NOTE"
)

// DayAbsence is one day of an application or a sick note.
type DayAbsence struct {
	Date      string         `json:"date"`
	DayLength string         `json:"day_length"`
	Type      DayAbsenceType `json:"type"`
	Status    string         `json:"status"`
	Href      string         `json:"href"`
}

// AbsenceService turns applications and sick notes into absences.
type AbsenceService interface {
	// GetOpenAbsences returns the absences of active applications and active
	// sick notes of persons ending on or after since.
	GetOpenAbsences(ctx context.Context, persons []model.Person, since time.Time) ([]model.Absence, error)

	// GetDayAbsences lists the absence days of a person in [start, end]. An
	// empty typ returns vacations and sick notes.
	GetDayAbsences(ctx context.Context, personID string, start, end time.Time, typ DayAbsenceType) ([]DayAbsence, error)
}

type absenceService struct {
	applications repository.ApplicationRepository
	sickNotes    repository.SickNoteRepository
	settings     SettingsService
}

func NewAbsenceService(applications repository.ApplicationRepository, sickNotes repository.SickNoteRepository,
	settings SettingsService) AbsenceService {
	return &absenceService{applications: applications, sickNotes: sickNotes, settings: settings}
}

// farFuture bounds open ended period queries.
var farFuture = period.Date(9999, time.December, 31)

func (s *absenceService) GetOpenAbsences(ctx context.Context, persons []model.Person, since time.Time) ([]model.Absence, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	cfg := newAbsenceTimes(settings.TimeSettings)
	since = period.DateOf(since)

	var out []model.Absence
	for i := range persons {
		p := &persons[i]

		apps, err := s.applications.FindByPersonAndPeriod(ctx, p.ID, since, farFuture, model.ActiveApplicationStatuses...)
		if err != nil {
			return nil, err
		}
		for _, a := range apps {
			out = append(out, cfg.absence(p, model.AbsenceVacation, a.StartDate, a.EndDate, a.DayLength))
		}

		notes, err := s.sickNotes.FindByPersonAndPeriod(ctx, p.ID, since, farFuture)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			if !n.IsActive() {
				continue
			}
			out = append(out, cfg.absence(p, model.AbsenceSickNote, n.StartDate, n.EndDate, n.DayLength))
		}
	}
	return out, nil
}

func (s *absenceService) GetDayAbsences(ctx context.Context, personID string, start, end time.Time, typ DayAbsenceType) ([]DayAbsence, error) {
	start, end = period.DateOf(start), period.DateOf(end)
	if end.Before(start) {
		return nil, period.ErrInvalidPeriod
	}

	var out []DayAbsence
	if typ == "" || typ == DayAbsenceVacation {
		apps, err := s.applications.FindByPersonAndPeriod(ctx, personID, start, end, model.ActiveApplicationStatuses...)
		if err != nil {
			return nil, err
		}
		for _, a := range apps {
			for _, d := range period.Days(period.Max(a.StartDate, start), period.Min(a.EndDate, end)) {
				out = append(out, DayAbsence{
					Date:      d.Format(period.ISOLayout),
					DayLength: a.DayLength.Duration().String(),
					Type:      DayAbsenceVacation,
					Status:    string(a.Status),
					Href:      a.ID,
				})
			}
		}
	}
	if typ == "" || typ == DayAbsenceSickNote {
		notes, err := s.sickNotes.FindByPersonAndPeriod(ctx, personID, start, end)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			if !n.IsActive() {
				continue
			}
			for _, d := range period.Days(period.Max(n.StartDate, start), period.Min(n.EndDate, end)) {
				out = append(out, DayAbsence{
					Date:      d.Format(period.ISOLayout),
					DayLength: n.DayLength.Duration().String(),
					Type:      DayAbsenceSickNote,
					Status:    string(n.Status),
					Href:      n.ID,
				})
			}
		}
	}
	return out, nil
}

// absenceTimes places half days inside the configured working day.
type absenceTimes struct {
	loc   *time.Location
	begin int
	end   int
}

func newAbsenceTimes(ts model.TimeSettings) absenceTimes {
	cfg := absenceTimes{loc: time.UTC, begin: 8, end: 16}
	if loc, err := time.LoadLocation(ts.TimeZoneID); err == nil && ts.TimeZoneID != "" {
		cfg.loc = loc
	}
	if ts.WorkDayBeginHour != nil {
		cfg.begin = *ts.WorkDayBeginHour
	}
	if ts.WorkDayEndHour != nil {
		cfg.end = *ts.WorkDayEndHour
	}
	return cfg
}

func (c absenceTimes) at(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc).Add(time.Duration(minutes) * time.Minute)
}

// absence maps a period to instants. Full days run from midnight of the start
// to midnight after the end; mornings end and noons begin in the middle of the
// working day.
func (c absenceTimes) absence(p *model.Person, kind model.AbsenceKind, start, end time.Time, dl model.DayLength) model.Absence {
	a := model.Absence{
		PersonID:   p.ID,
		PersonName: p.NiceName(),
		Kind:       kind,
		DayLength:  dl,
	}
	middle := (c.begin*60 + c.end*60) / 2
	switch dl {
	case model.DayLengthMorning:
		a.Start = c.at(start, c.begin*60)
		a.End = c.at(start, middle)
	case model.DayLengthNoon:
		a.Start = c.at(start, middle)
		a.End = c.at(start, c.end*60)
	default:
		a.AllDay = true
		a.Start = period.DateOf(start)
		a.End = period.DateOf(end).AddDate(0, 0, 1)
	}
	return a
}
