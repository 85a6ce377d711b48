// Package model contains the domain types of the leave management.
// Types carry JSON tags only; persistence mapping lives in the repositories.
package model

import "github.com/shopspring/decimal"

// DayLength describes which part of a day is meant: a whole day, one half or nothing.
type DayLength string

const (
	DayLengthFull    DayLength = "FULL"
	DayLengthMorning DayLength = "MORNING"
	DayLengthNoon    DayLength = "NOON"
	DayLengthZero    DayLength = "ZERO"
)

var (
	half = decimal.RequireFromString("0.5")
)

// Duration returns the fraction of a day: 1 for FULL, 0.5 for a half day, 0 for ZERO.
func (d DayLength) Duration() decimal.Decimal {
	switch d {
	case DayLengthFull:
		return decimal.NewFromInt(1)
	case DayLengthMorning, DayLengthNoon:
		return half
	default:
		return decimal.Zero
	}
}

// Inverse returns the complementary part of the day.
func (d DayLength) Inverse() DayLength {
	switch d {
	case DayLengthFull:
		return DayLengthZero
	case DayLengthMorning:
		return DayLengthNoon
	case DayLengthNoon:
		return DayLengthMorning
	default:
		return DayLengthFull
	}
}

// IsHalfDay reports whether d is MORNING or NOON.
func (d DayLength) IsHalfDay() bool {
	return d == DayLengthMorning || d == DayLengthNoon
}

// Valid reports whether d is a known day length.
func (d DayLength) Valid() bool {
	switch d {
	case DayLengthFull, DayLengthMorning, DayLengthNoon, DayLengthZero:
		return true
	}
	return false
}
