package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the holidays account of a person for one year.
//
// AnnualVacationDays is the entitlement for a full year, VacationDays the
// entitlement for the account's validity period. Remaining days are carried
// over from the previous year; the not expiring part stays available after
// the end of March.
type Account struct {
	ID                               string          `json:"id"`
	PersonID                         string          `json:"person_id"`
	ValidFrom                        time.Time       `json:"valid_from"`
	ValidTo                          time.Time       `json:"valid_to"`
	AnnualVacationDays               decimal.Decimal `json:"annual_vacation_days"`
	VacationDays                     decimal.Decimal `json:"vacation_days"`
	RemainingVacationDays            decimal.Decimal `json:"remaining_vacation_days"`
	RemainingVacationDaysNotExpiring decimal.Decimal `json:"remaining_vacation_days_not_expiring"`
	Comment                          string          `json:"comment,omitempty"`
}

// Year is the calendar year the account is valid in.
func (a *Account) Year() int {
	return a.ValidFrom.Year()
}

// VacationDaysLeft is what is left of an account after subtracting the used days.
type VacationDaysLeft struct {
	VacationDays                     decimal.Decimal `json:"vacation_days"`
	RemainingVacationDays            decimal.Decimal `json:"remaining_vacation_days"`
	RemainingVacationDaysNotExpiring decimal.Decimal `json:"remaining_vacation_days_not_expiring"`
	VacationDaysUsedNextYear         decimal.Decimal `json:"vacation_days_used_next_year"`
}

// NewVacationDaysLeft distributes used days over an account. Days used before
// April consume the expiring remaining days first, then the not expiring
// remaining days, then the vacation days. Days used from April on skip the
// expiring remaining days. Vacation days may become negative.
func NewVacationDaysLeft(vacationDays, remaining, remainingNotExpiring, usedBeforeApril, usedAfterApril decimal.Decimal) VacationDaysLeft {
	expiring := decimal.Max(remaining.Sub(remainingNotExpiring), decimal.Zero)
	notExpiring := remainingNotExpiring

	rest := consume(&expiring, usedBeforeApril)
	rest = consume(&notExpiring, rest)
	vacationDays = vacationDays.Sub(rest)

	rest = consume(&notExpiring, usedAfterApril)
	vacationDays = vacationDays.Sub(rest)

	return VacationDaysLeft{
		VacationDays:                     vacationDays,
		RemainingVacationDays:            expiring.Add(notExpiring),
		RemainingVacationDaysNotExpiring: notExpiring,
		VacationDaysUsedNextYear:         decimal.Zero,
	}
}

// consume takes up to need from pool and returns what is still needed.
func consume(pool *decimal.Decimal, need decimal.Decimal) decimal.Decimal {
	if need.LessThanOrEqual(*pool) {
		*pool = pool.Sub(need)
		return decimal.Zero
	}
	need = need.Sub(*pool)
	*pool = decimal.Zero
	return need
}
