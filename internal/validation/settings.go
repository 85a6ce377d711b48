package validation

import "urlaubsverwaltung/internal/model"

const (
	daysPerYear             = 365
	hoursPerDay             = 24
	legalMinimumSickPayDays = 42

	ErrorDefaultGreaterThanMax     = "settings.account.error.defaultMustBeSmallerOrEqualThanMax"
	ErrorIllegalMaximumSickPayDays = "sicknote.error.illegalMaximumSickPayDays"
	ErrorDaysBeforeEndOfSickPay    = "settings.sickDays.daysBeforeEndOfSickPayNotification.error"
)

// ValidateSettings checks all sections of the system settings.
func ValidateSettings(s *model.Settings) *Errors {
	errs := &Errors{}
	validateAccountSettings(s.AccountSettings, errs)
	validateApplicationSettings(s.ApplicationSettings, errs)
	validateSickNoteSettings(s.SickNoteSettings, errs)
	validateWorkingTimeSettings(s.WorkingTimeSettings, errs)
	validateOvertimeSettings(s.OvertimeSettings, errs)
	validateTimeSettings(s.TimeSettings, errs)
	validateCalendarSettings(s.CalendarSettings, errs)
	return errs
}

func validateAccountSettings(a model.AccountSettings, errs *Errors) {
	const prefix = "account_settings."

	maxDays := a.MaximumAnnualVacationDays
	if maxDays == nil {
		errs.RejectValue(prefix+"maximum_annual_vacation_days", ErrorMandatory)
	} else if *maxDays < 0 || *maxDays > daysPerYear {
		errs.RejectValue(prefix+"maximum_annual_vacation_days", ErrorInvalid)
	}

	def := a.DefaultVacationDays
	switch {
	case def == nil:
		errs.RejectValue(prefix+"default_vacation_days", ErrorMandatory)
	case *def < 0 || *def > daysPerYear:
		errs.RejectValue(prefix+"default_vacation_days", ErrorInvalid)
	case maxDays != nil && *def > *maxDays:
		errs.RejectValue(prefix+"default_vacation_days", ErrorDefaultGreaterThanMax)
	}
}

func validateApplicationSettings(a model.ApplicationSettings, errs *Errors) {
	const prefix = "application_settings."

	if v := a.MaximumMonthsToApplyForLeaveInAdvance; v == nil {
		errs.RejectValue(prefix+"maximum_months_to_apply_for_leave_in_advance", ErrorMandatory)
	} else if *v <= 0 {
		errs.RejectValue(prefix+"maximum_months_to_apply_for_leave_in_advance", ErrorInvalid)
	}
	validateNonNegative(a.DaysBeforeRemindForWaitingApplications, prefix+"days_before_remind_for_waiting_applications", errs)
	validateNonNegative(a.DaysBeforeRemindForUpcomingApplications, prefix+"days_before_remind_for_upcoming_applications", errs)
}

func validateSickNoteSettings(s model.SickNoteSettings, errs *Errors) {
	const prefix = "sick_note_settings."

	maxDays := s.MaximumSickPayDays
	if maxDays == nil {
		errs.RejectValue(prefix+"maximum_sick_pay_days", ErrorMandatory)
	} else if *maxDays < 0 {
		errs.RejectValue(prefix+"maximum_sick_pay_days", ErrorInvalid)
	} else if *maxDays < legalMinimumSickPayDays {
		errs.RejectValue(prefix+"maximum_sick_pay_days", ErrorIllegalMaximumSickPayDays)
	}

	before := s.DaysBeforeEndOfSickPayNotification
	validateNonNegative(before, prefix+"days_before_end_of_sick_pay_notification", errs)
	if maxDays != nil && before != nil && *before > *maxDays {
		errs.RejectValue(prefix+"days_before_end_of_sick_pay_notification", ErrorDaysBeforeEndOfSickPay)
	}
}

func validateWorkingTimeSettings(w model.WorkingTimeSettings, errs *Errors) {
	const prefix = "working_time_settings."

	if !w.FederalState.Valid() {
		errs.RejectValue(prefix+"federal_state", ErrorMandatory)
	}
	if !w.WorkingDurationForChristmasEve.Valid() {
		errs.RejectValue(prefix+"working_duration_for_christmas_eve", ErrorMandatory)
	}
	if !w.WorkingDurationForNewYearsEve.Valid() {
		errs.RejectValue(prefix+"working_duration_for_new_years_eve", ErrorMandatory)
	}
	wt := w.WorkingTime()
	if len(wt.WorkingDays()) == 0 {
		errs.RejectValue(prefix+"working_days", ErrorMandatory)
	}
}

func validateOvertimeSettings(o model.OvertimeSettings, errs *Errors) {
	if !o.OvertimeActive {
		return
	}
	const prefix = "overtime_settings."

	if o.MaximumOvertime == nil {
		errs.RejectValue(prefix+"maximum_overtime", ErrorMandatory)
	} else {
		validateNonNegative(o.MaximumOvertime, prefix+"maximum_overtime", errs)
	}
	if o.MinimumOvertime == nil {
		errs.RejectValue(prefix+"minimum_overtime", ErrorMandatory)
	} else {
		validateNonNegative(o.MinimumOvertime, prefix+"minimum_overtime", errs)
	}
}

func validateTimeSettings(t model.TimeSettings, errs *Errors) {
	const (
		beginField = "time_settings.work_day_begin_hour"
		endField   = "time_settings.work_day_end_hour"
	)

	begin, end := t.WorkDayBeginHour, t.WorkDayEndHour
	beginValid := validateHour(begin, beginField, errs)
	endValid := validateHour(end, endField, errs)

	if beginValid && endValid && *begin >= *end {
		errs.RejectValue(beginField, ErrorInvalid)
		errs.RejectValue(endField, ErrorInvalid)
	}
}

func validateHour(hour *int, field string, errs *Errors) bool {
	if hour == nil {
		errs.RejectValue(field, ErrorMandatory)
		return false
	}
	if *hour <= 0 || *hour > hoursPerDay {
		errs.RejectValue(field, ErrorInvalid)
		return false
	}
	return true
}

func validateCalendarSettings(c model.CalendarSettings, errs *Errors) {
	switch c.Provider {
	case model.CalendarProviderExchange:
		const prefix = "calendar_settings.exchange_settings."
		ex := c.ExchangeSettings
		if ex.Email == "" {
			errs.RejectValue(prefix+"email", ErrorMandatory)
		} else if !IsValidEmail(ex.Email) {
			errs.RejectValue(prefix+"email", ErrorMail)
		}
		if ex.Password == "" {
			errs.RejectValue(prefix+"password", ErrorMandatory)
		}
		if ex.Calendar == "" {
			errs.RejectValue(prefix+"calendar", ErrorMandatory)
		}
	case model.CalendarProviderGoogle:
		const prefix = "calendar_settings.google_settings."
		g := c.GoogleSettings
		if g.ClientID == "" {
			errs.RejectValue(prefix+"client_id", ErrorMandatory)
		}
		if g.ClientSecret == "" {
			errs.RejectValue(prefix+"client_secret", ErrorMandatory)
		}
		if g.CalendarID == "" {
			errs.RejectValue(prefix+"calendar_id", ErrorMandatory)
		}
	}
}

func validateNonNegative(v *int, field string, errs *Errors) {
	if v == nil {
		errs.RejectValue(field, ErrorMandatory)
		return
	}
	if *v < 0 {
		errs.RejectValue(field, ErrorInvalid)
	}
}
