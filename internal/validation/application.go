package validation

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
)

const (
	ErrorTooFarInThePast              = "application.error.tooFarInThePast"
	ErrorTooFarInTheFuture            = "application.error.tooFarInTheFuture"
	ErrorHalfDayPeriod                = "application.error.halfDayPeriod"
	ErrorHalfDayNotAllowed            = "application.error.halfDayNotAllowed"
	ErrorMissingReasonForSpecialLeave = "application.error.missingReasonForSpecialLeave"
	ErrorMissingHoursForOvertime      = "application.error.missingHoursForOvertime"
	ErrorInvalidHoursForOvertime      = "application.error.invalidHoursForOvertime"
	ErrorNoValidWorkingTime           = "application.error.noValidWorkingTime"
	ErrorZeroDays                     = "application.error.zeroDays"
	ErrorOverlap                      = "application.error.overlap"
	ErrorNotEnoughVacationDays        = "application.error.notEnoughVacationDays"
)

// SettingsProvider returns the current system settings.
type SettingsProvider interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
}

// WorkingTimeFinder looks up the working time valid at a date.
// It returns model.ErrNoValidWorkingTime when there is none.
type WorkingTimeFinder interface {
	GetByPersonAndValidityDateEqualsOrMinorDate(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error)
}

// WorkDaysCounter counts the vacation days needed for a period.
type WorkDaysCounter interface {
	GetWorkDays(ctx context.Context, dayLength model.DayLength, start, end time.Time, personID string) (decimal.Decimal, error)
}

// OverlapChecker compares an application with the existing absences of its person.
type OverlapChecker interface {
	CheckOverlap(ctx context.Context, app *model.Application) (model.OverlapCase, error)
}

// VacationDaysChecker tells whether the accounts of a person cover an application.
type VacationDaysChecker interface {
	CheckApplication(ctx context.Context, app *model.Application) (bool, error)
}

// ApplicationValidator validates new applications for leave.
type ApplicationValidator struct {
	settings     SettingsProvider
	workingTimes WorkingTimeFinder
	workDays     WorkDaysCounter
	overlap      OverlapChecker
	calculation  VacationDaysChecker
	now          func() time.Time
}

func NewApplicationValidator(settings SettingsProvider, workingTimes WorkingTimeFinder, workDays WorkDaysCounter,
	overlap OverlapChecker, calculation VacationDaysChecker) *ApplicationValidator {
	return &ApplicationValidator{
		settings:     settings,
		workingTimes: workingTimes,
		workDays:     workDays,
		overlap:      overlap,
		calculation:  calculation,
		now:          time.Now,
	}
}

// Validate checks app and the optional comment. The returned error is only
// set when a lookup failed; rule violations are reported in *Errors.
func (v *ApplicationValidator) Validate(ctx context.Context, app *model.Application, comment string) (*Errors, error) {
	settings, err := v.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	errs := &Errors{}

	v.validateDateFields(app, settings, errs)

	if !app.VacationType.Valid() {
		errs.RejectValue("vacation_type", ErrorMandatory)
	}
	if app.VacationType == model.VacationSpecialLeave && app.Reason == "" {
		errs.RejectValue("reason", ErrorMissingReasonForSpecialLeave)
	}
	if tooLong(app.Reason, maxChars) {
		errs.RejectValue("reason", ErrorTooManyChars)
	}
	if tooLong(app.Address, maxChars) {
		errs.RejectValue("address", ErrorTooManyChars)
	}
	validateHours(app, settings.OvertimeSettings, errs)
	errs.Merge("comment", ValidateComment(comment, false))

	if errs.HasErrors() {
		return errs, nil
	}
	if err := v.validateAgainstPersistedData(ctx, app, errs); err != nil {
		return nil, err
	}
	return errs, nil
}

func (v *ApplicationValidator) validateDateFields(app *model.Application, settings *model.Settings, errs *Errors) {
	if !app.DayLength.Valid() || app.DayLength == model.DayLengthZero {
		errs.RejectValue("day_length", ErrorMandatory)
	}
	if app.DayLength.IsHalfDay() && !settings.ApplicationSettings.AllowHalfDays {
		errs.RejectValue("day_length", ErrorHalfDayNotAllowed)
	}
	if app.StartDate.IsZero() {
		errs.RejectValue("start_date", ErrorMandatory)
	}
	if app.EndDate.IsZero() {
		errs.RejectValue("end_date", ErrorMandatory)
	}
	if app.StartDate.IsZero() || app.EndDate.IsZero() {
		return
	}

	if app.EndDate.Before(app.StartDate) {
		errs.Reject(ErrorInvalidPeriod)
		return
	}
	if app.DayLength.IsHalfDay() && !app.StartDate.Equal(app.EndDate) {
		errs.Reject(ErrorHalfDayPeriod)
		return
	}

	today := period.DateOf(v.now())
	if app.StartDate.Before(today.AddDate(-1, 0, 0)) {
		errs.Reject(ErrorTooFarInThePast)
	}
	if months := settings.ApplicationSettings.MaximumMonthsToApplyForLeaveInAdvance; months != nil {
		if app.EndDate.After(today.AddDate(0, *months, 0)) {
			errs.Reject(ErrorTooFarInTheFuture, *months)
		}
	}
}

func validateHours(app *model.Application, overtime model.OvertimeSettings, errs *Errors) {
	if app.Hours == nil {
		if overtime.OvertimeActive && app.VacationType == model.VacationOvertime {
			errs.RejectValue("hours", ErrorMissingHoursForOvertime)
		}
		return
	}
	if !app.Hours.IsPositive() {
		errs.RejectValue("hours", ErrorInvalidHoursForOvertime)
	}
}

func (v *ApplicationValidator) validateAgainstPersistedData(ctx context.Context, app *model.Application, errs *Errors) error {
	if _, err := v.workingTimes.GetByPersonAndValidityDateEqualsOrMinorDate(ctx, app.PersonID, app.StartDate); err != nil {
		if errors.Is(err, model.ErrNoValidWorkingTime) {
			errs.Reject(ErrorNoValidWorkingTime)
			return nil
		}
		return err
	}

	days, err := v.workDays.GetWorkDays(ctx, app.DayLength, app.StartDate, app.EndDate, app.PersonID)
	if err != nil {
		return err
	}
	if days.IsZero() {
		errs.Reject(ErrorZeroDays)
		return nil
	}

	overlap, err := v.overlap.CheckOverlap(ctx, app)
	if err != nil {
		return err
	}
	if overlap == model.FullyOverlapping || overlap == model.PartlyOverlapping {
		errs.Reject(ErrorOverlap)
		return nil
	}

	if app.VacationType == model.VacationHoliday {
		enough, err := v.calculation.CheckApplication(ctx, app)
		if err != nil {
			return err
		}
		if !enough {
			errs.Reject(ErrorNotEnoughVacationDays)
		}
	}
	return nil
}
