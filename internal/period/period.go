// Package period provides helpers for calendar dates. A date is a time.Time
// at midnight UTC; use Date or DateOf to obtain one.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the date format accepted by list filters.
const DateLayout = "02.01.2006"

// ISOLayout is the date format used in JSON payloads and query parameters.
const ISOLayout = "2006-01-02"

var ErrInvalidPeriod = errors.New("start date must not be after end date")

// Date returns the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the clock from t, keeping the calendar day of t's location.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}

func FirstDayOfYear(year int) time.Time { return Date(year, time.January, 1) }

func LastDayOfYear(year int) time.Time { return Date(year, time.December, 31) }

func FirstDayOfMonth(year int, month time.Month) time.Time { return Date(year, month, 1) }

func LastDayOfMonth(year int, month time.Month) time.Time {
	return Date(year, month+1, 1).AddDate(0, 0, -1)
}

// LastDayBeforeApril is the 31st of March; remaining vacation days expire after it.
func LastDayBeforeApril(year int) time.Time { return Date(year, time.March, 31) }

// IsBeforeApril reports whether date lies in the first quarter of its year.
func IsBeforeApril(date time.Time) bool {
	return date.Month() < time.April
}

func IsChristmasEve(date time.Time) bool {
	return date.Month() == time.December && date.Day() == 24
}

func IsNewYearsEve(date time.Time) bool {
	return date.Month() == time.December && date.Day() == 31
}

// Days returns every day from start to end, both inclusive.
func Days(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysBetween returns the number of days from start to end; 0 for the same day.
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / 24)
}

// Min returns the earlier of a and b.
func Min(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of a and b.
func Max(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Overlaps reports whether the periods [aStart,aEnd] and [bStart,bEnd] share a day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// ParseISO parses a "2006-01-02" date.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISOLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FilterPeriod is an inclusive date range used to filter lists.
type FilterPeriod struct {
	Start time.Time
	End   time.Time
}

// DateError reports a filter bound that is neither in DateLayout nor in ISOLayout.
type DateError struct {
	Bound string // "start" or "end"
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("parse %s date %q: %v", e.Bound, e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// NewFilterPeriod parses start and end in DateLayout, falling back to
// ISOLayout. An empty start means the first day of the current year, an
// empty end the last day of it.
func NewFilterPeriod(start, end string, loc *time.Location) (FilterPeriod, error) {
	year := Today(loc).Year()
	p := FilterPeriod{Start: FirstDayOfYear(year), End: LastDayOfYear(year)}

	if s := strings.TrimSpace(start); s != "" {
		t, err := parseFilterDate(s)
		if err != nil {
			return FilterPeriod{}, &DateError{Bound: "start", Value: s, Err: err}
		}
		p.Start = t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := parseFilterDate(s)
		if err != nil {
			return FilterPeriod{}, &DateError{Bound: "end", Value: s, Err: err}
		}
		p.End = t
	}
	if p.End.Before(p.Start) {
		return FilterPeriod{}, ErrInvalidPeriod
	}
	return p, nil
}

func parseFilterDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	if t, isoErr := time.Parse(ISOLayout, s); isoErr == nil {
		return t, nil
	}
	return time.Time{}, err
}

// StartAsString formats the start date in DateLayout.
func (p FilterPeriod) StartAsString() string { return p.Start.Format(DateLayout) }

// EndAsString formats the end date in DateLayout.
func (p FilterPeriod) EndAsString() string { return p.End.Format(DateLayout) }
