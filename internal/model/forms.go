package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountForm carries the editable fields of a holidays account.
// A nil VacationDays is pro-rated from the annual days.
type AccountForm struct {
	PersonID                         string           `json:"person_id"`
	ValidFrom                        time.Time        `json:"valid_from"`
	ValidTo                          time.Time        `json:"valid_to"`
	AnnualVacationDays               decimal.Decimal  `json:"annual_vacation_days"`
	VacationDays                     *decimal.Decimal `json:"vacation_days,omitempty"`
	RemainingVacationDays            decimal.Decimal  `json:"remaining_vacation_days"`
	RemainingVacationDaysNotExpiring decimal.Decimal  `json:"remaining_vacation_days_not_expiring"`
	Comment                          string           `json:"comment,omitempty"`
}

// PersonForm carries a person together with the working time and the
// holidays account that are maintained alongside it.
type PersonForm struct {
	Username             string             `json:"username"`
	Password             string             `json:"password,omitempty"`
	FirstName            string             `json:"first_name"`
	LastName             string             `json:"last_name"`
	Email                string             `json:"email"`
	Permissions          []Role             `json:"permissions"`
	Notifications        []MailNotification `json:"notifications"`
	WorkingDays          []time.Weekday     `json:"working_days"`
	FederalStateOverride *FederalState      `json:"federal_state_override,omitempty"`
	ValidFrom            time.Time          `json:"valid_from"`
	Account              *AccountForm       `json:"account,omitempty"`
}
