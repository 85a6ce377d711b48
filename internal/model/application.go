package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VacationCategory classifies an application for leave.
type VacationCategory string

const (
	VacationHoliday      VacationCategory = "HOLIDAY"
	VacationSpecialLeave VacationCategory = "SPECIALLEAVE"
	VacationUnpaidLeave  VacationCategory = "UNPAIDLEAVE"
	VacationOvertime     VacationCategory = "OVERTIME"
)

// Valid reports whether c is a known vacation category.
func (c VacationCategory) Valid() bool {
	switch c {
	case VacationHoliday, VacationSpecialLeave, VacationUnpaidLeave, VacationOvertime:
		return true
	}
	return false
}

// MessageKey is the translation key of the category.
func (c VacationCategory) MessageKey() string {
	return "application.data.vacationType." + string(c)
}

// ApplicationStatus is the state of an application for leave.
type ApplicationStatus string

const (
	StatusWaiting          ApplicationStatus = "WAITING"
	StatusTemporaryAllowed ApplicationStatus = "TEMPORARY_ALLOWED"
	StatusAllowed          ApplicationStatus = "ALLOWED"
	StatusRejected         ApplicationStatus = "REJECTED"
	StatusCancelled        ApplicationStatus = "CANCELLED"
	StatusRevoked          ApplicationStatus = "REVOKED"
)

// ActiveApplicationStatuses are the states in which an application occupies days.
var ActiveApplicationStatuses = []ApplicationStatus{StatusWaiting, StatusTemporaryAllowed, StatusAllowed}

// Application is an application for leave.
type Application struct {
	ID                   string            `json:"id"`
	PersonID             string            `json:"person_id"`
	ApplierID            string            `json:"applier_id"`
	BossID               string            `json:"boss_id,omitempty"`
	CancellerID          string            `json:"canceller_id,omitempty"`
	HolidayReplacementID string            `json:"holiday_replacement_id,omitempty"`
	StartDate            time.Time         `json:"start_date"`
	EndDate              time.Time         `json:"end_date"`
	VacationType         VacationCategory  `json:"vacation_type"`
	DayLength            DayLength         `json:"day_length"`
	Reason               string            `json:"reason,omitempty"`
	Address              string            `json:"address,omitempty"`
	Hours                *decimal.Decimal  `json:"hours,omitempty"`
	Status               ApplicationStatus `json:"status"`
	TeamInformed         bool              `json:"team_informed"`
	TwoStageApproval     bool              `json:"two_stage_approval"`
	ApplicationDate      *time.Time        `json:"application_date,omitempty"`
	EditedDate           *time.Time        `json:"edited_date,omitempty"`
	CancelDate           *time.Time        `json:"cancel_date,omitempty"`
	RemindDate           *time.Time        `json:"remind_date,omitempty"`
}

// HasStatus reports whether the application is in one of statuses.
func (a *Application) HasStatus(statuses ...ApplicationStatus) bool {
	for _, s := range statuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the application is waiting, temporary allowed or allowed.
func (a *Application) IsActive() bool {
	return a.HasStatus(ActiveApplicationStatuses...)
}

// CommentAction is the action an application comment documents.
type CommentAction string

const (
	ActionApplied          CommentAction = "APPLIED"
	ActionTemporaryAllowed CommentAction = "TEMPORARY_ALLOWED"
	ActionAllowed          CommentAction = "ALLOWED"
	ActionRejected         CommentAction = "REJECTED"
	ActionCancelled        CommentAction = "CANCELLED"
	ActionRevoked          CommentAction = "REVOKED"
	ActionReferred         CommentAction = "REFERRED"
	ActionConverted        CommentAction = "CONVERTED"
	ActionEdited           CommentAction = "EDITED"
)

// ApplicationComment documents a state change of an application.
type ApplicationComment struct {
	ID            string        `json:"id"`
	ApplicationID string        `json:"application_id"`
	PersonID      string        `json:"person_id,omitempty"`
	Action        CommentAction `json:"action"`
	Text          string        `json:"text,omitempty"`
	Date          time.Time     `json:"date"`
}
