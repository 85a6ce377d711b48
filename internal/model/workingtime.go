package model

import "time"

// FederalState is a German federal state; public holidays differ between them.
type FederalState string

const (
	BadenWuerttemberg     FederalState = "BADEN_WUERTTEMBERG"
	Bayern                FederalState = "BAYERN"
	Berlin                FederalState = "BERLIN"
	Brandenburg           FederalState = "BRANDENBURG"
	Bremen                FederalState = "BREMEN"
	Hamburg               FederalState = "HAMBURG"
	Hessen                FederalState = "HESSEN"
	MecklenburgVorpommern FederalState = "MECKLENBURG_VORPOMMERN"
	Niedersachsen         FederalState = "NIEDERSACHSEN"
	NordrheinWestfalen    FederalState = "NORDRHEIN_WESTFALEN"
	RheinlandPfalz        FederalState = "RHEINLAND_PFALZ"
	Saarland              FederalState = "SAARLAND"
	Sachsen               FederalState = "SACHSEN"
	SachsenAnhalt         FederalState = "SACHSEN_ANHALT"
	SchleswigHolstein     FederalState = "SCHLESWIG_HOLSTEIN"
	Thueringen            FederalState = "THUERINGEN"
)

// FederalStates lists all known federal states.
var FederalStates = []FederalState{
	BadenWuerttemberg, Bayern, Berlin, Brandenburg, Bremen, Hamburg, Hessen,
	MecklenburgVorpommern, Niedersachsen, NordrheinWestfalen, RheinlandPfalz,
	Saarland, Sachsen, SachsenAnhalt, SchleswigHolstein, Thueringen,
}

func (f FederalState) Valid() bool {
	for _, s := range FederalStates {
		if s == f {
			return true
		}
	}
	return false
}

// WorkingTime describes on which weekdays a person works, starting at ValidFrom.
type WorkingTime struct {
	ID                   string        `json:"id"`
	PersonID             string        `json:"person_id"`
	ValidFrom            time.Time     `json:"valid_from"`
	Monday               DayLength     `json:"monday"`
	Tuesday              DayLength     `json:"tuesday"`
	Wednesday            DayLength     `json:"wednesday"`
	Thursday             DayLength     `json:"thursday"`
	Friday               DayLength     `json:"friday"`
	Saturday             DayLength     `json:"saturday"`
	Sunday               DayLength     `json:"sunday"`
	FederalStateOverride *FederalState `json:"federal_state_override,omitempty"`
}

// DayLengthFor returns the working day length of a weekday.
func (w *WorkingTime) DayLengthFor(day time.Weekday) DayLength {
	var d DayLength
	switch day {
	case time.Monday:
		d = w.Monday
	case time.Tuesday:
		d = w.Tuesday
	case time.Wednesday:
		d = w.Wednesday
	case time.Thursday:
		d = w.Thursday
	case time.Friday:
		d = w.Friday
	case time.Saturday:
		d = w.Saturday
	case time.Sunday:
		d = w.Sunday
	}
	if d == "" {
		return DayLengthZero
	}
	return d
}

// SetDayLengthFor sets the working day length of a weekday.
func (w *WorkingTime) SetDayLengthFor(day time.Weekday, d DayLength) {
	switch day {
	case time.Monday:
		w.Monday = d
	case time.Tuesday:
		w.Tuesday = d
	case time.Wednesday:
		w.Wednesday = d
	case time.Thursday:
		w.Thursday = d
	case time.Friday:
		w.Friday = d
	case time.Saturday:
		w.Saturday = d
	case time.Sunday:
		w.Sunday = d
	}
}

// SetWorkingDays marks the given weekdays with d and all others as ZERO.
func (w *WorkingTime) SetWorkingDays(days []time.Weekday, d DayLength) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		w.SetDayLengthFor(wd, DayLengthZero)
	}
	for _, wd := range days {
		w.SetDayLengthFor(wd, d)
	}
}

// WorkingDays returns the weekdays that are not ZERO, Monday first.
func (w *WorkingTime) WorkingDays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		if w.DayLengthFor(wd) != DayLengthZero {
			days = append(days, wd)
		}
	}
	return days
}
