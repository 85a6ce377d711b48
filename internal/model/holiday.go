package model

import "time"

// PublicHoliday is a day off in a federal state. DayLength is the part of the
// day that is free, e.g. NOON for a Christmas Eve with a working morning.
type PublicHoliday struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	DayLength   DayLength `json:"day_length"`
}
