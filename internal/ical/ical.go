// Package ical renders absences as an iCalendar feed.
package ical

import (
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"urlaubsverwaltung/internal/model"
)

const productID = "-//Urlaubsverwaltung//golang-ical//DE"

var ErrNoAbsences = errors.New("no absences found for calendar")

// GenerateCalendar returns the serialized calendar named title. Full day
// absences become all day events with an exclusive end date, half days
// become timed events in UTC.
func GenerateCalendar(title string, absences []model.Absence) (string, error) {
	if len(absences) == 0 {
		return "", ErrNoAbsences
	}

	cal := ics.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(title)
	cal.CalendarProperties = append(cal.CalendarProperties, ics.CalendarProperty{
		BaseProperty: ics.BaseProperty{IANAToken: "X-MICROSOFT-CALSCALE", Value: "GREGORIAN"},
	})

	stamp := time.Now().UTC()
	for _, a := range absences {
		e := cal.AddEvent(uid(a))
		e.SetDtStampTime(stamp)
		e.SetSummary(a.PersonName + " abwesend")

		if a.AllDay {
			e.SetAllDayStartAt(a.Start)
			e.SetAllDayEndAt(a.End)
			e.SetProperty(ics.ComponentProperty("X-MICROSOFT-CDO-ALLDAYEVENT"), "TRUE")
			continue
		}
		e.SetStartAt(a.Start.UTC())
		e.SetEndAt(a.End.UTC())
	}

	return cal.Serialize(), nil
}

func uid(a model.Absence) string {
	return fmt.Sprintf("%s-%s-%s-%s@urlaubsverwaltung", a.Kind, a.PersonID,
		a.Start.UTC().Format("20060102T150405"), a.End.UTC().Format("20060102T150405"))
}
