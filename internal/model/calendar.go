package model

import "time"

// CalendarPeriod limits how far back a calendar feed reaches.
type CalendarPeriod string

const (
	CalendarPeriodWeek     CalendarPeriod = "P7D"
	CalendarPeriodMonth    CalendarPeriod = "P31D"
	CalendarPeriodHalfYear CalendarPeriod = "P6M"
	CalendarPeriodYear     CalendarPeriod = "P1Y"
	CalendarPeriodForever  CalendarPeriod = "P100Y"
)

// Since returns the first day covered by the period when looking back from now.
func (p CalendarPeriod) Since(now time.Time) time.Time {
	switch p {
	case CalendarPeriodWeek:
		return now.AddDate(0, 0, -7)
	case CalendarPeriodMonth:
		return now.AddDate(0, 0, -31)
	case CalendarPeriodHalfYear:
		return now.AddDate(0, -6, 0)
	case CalendarPeriodForever:
		return now.AddDate(-100, 0, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

func (p CalendarPeriod) Valid() bool {
	switch p {
	case CalendarPeriodWeek, CalendarPeriodMonth, CalendarPeriodHalfYear, CalendarPeriodYear, CalendarPeriodForever:
		return true
	}
	return false
}

// CalendarKind tells a company calendar (everyone the owner may see) from a
// personal calendar (only the owner's absences).
type CalendarKind string

const (
	CalendarKindCompany  CalendarKind = "COMPANY"
	CalendarKindPersonal CalendarKind = "PERSONAL"
)

// Calendar is a secret-protected iCal feed of a person.
type Calendar struct {
	ID       string         `json:"id"`
	PersonID string         `json:"person_id"`
	Kind     CalendarKind   `json:"kind"`
	Secret   string         `json:"secret"`
	Period   CalendarPeriod `json:"period"`
}

// AbsenceKind tells vacation from sickness.
type AbsenceKind string

const (
	AbsenceVacation AbsenceKind = "VACATION"
	AbsenceSickNote AbsenceKind = "SICK_NOTE"
)

// Absence is a period a person is not at work, with concrete start and end instants.
// All-day absences end at midnight after the last day.
type Absence struct {
	PersonID   string      `json:"person_id"`
	PersonName string      `json:"person_name"`
	Kind       AbsenceKind `json:"kind"`
	Start      time.Time   `json:"start"`
	End        time.Time   `json:"end"`
	AllDay     bool        `json:"all_day"`
	DayLength  DayLength   `json:"day_length"`
}
