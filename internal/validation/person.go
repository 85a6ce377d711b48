package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
)

const (
	ErrorPermissionsMandatory     = "person.form.permissions.error.mandatory"
	ErrorPermissionsInactiveRole  = "person.form.permissions.error.inactive"
	ErrorPermissionsUserRole      = "person.form.permissions.error.user"
	ErrorPermissionsCombination   = "person.form.permissions.error.combination"
	ErrorNotificationsCombination = "person.form.notifications.error.combination"
	ErrorWorkingTimeMandatory     = "person.form.workingTime.error.mandatory"
)

var notificationRoles = map[model.MailNotification]model.Role{
	model.NotificationUser:                 model.RoleUser,
	model.NotificationDepartmentHead:       model.RoleDepartmentHead,
	model.NotificationSecondStageAuthority: model.RoleSecondStageAuthority,
	model.NotificationBoss:                 model.RoleBoss,
	model.NotificationOffice:               model.RoleOffice,
}

// ValidatePerson checks a person form. creating requires a username.
// maxAnnualVacationDays bounds the holidays account of the form, if any.
func ValidatePerson(in *model.PersonForm, creating bool, maxAnnualVacationDays int) *Errors {
	errs := &Errors{}

	if creating {
		validateName(in.Username, "username", errs)
	}
	validateName(in.FirstName, "first_name", errs)
	validateName(in.LastName, "last_name", errs)

	switch {
	case in.Email == "":
		errs.RejectValue("email", ErrorMandatory)
	case tooLong(in.Email, maxNameChars):
		errs.RejectValue("email", ErrorTooManyChars)
	case !IsValidEmail(in.Email):
		errs.RejectValue("email", ErrorMail)
	}

	validatePermissions(in.Permissions, errs)
	validateNotifications(in.Permissions, in.Notifications, errs)

	if len(in.WorkingDays) == 0 {
		errs.RejectValue("working_days", ErrorWorkingTimeMandatory)
	}
	if in.FederalStateOverride != nil && !in.FederalStateOverride.Valid() {
		errs.RejectValue("federal_state_override", ErrorInvalid)
	}

	if in.Account != nil {
		errs.Merge("account", ValidateAccount(in.Account, maxAnnualVacationDays))
	}
	return errs
}

func validateName(name, field string, errs *Errors) {
	if name == "" {
		errs.RejectValue(field, ErrorMandatory)
		return
	}
	if tooLong(name, maxNameChars) {
		errs.RejectValue(field, ErrorTooManyChars)
	}
}

func validatePermissions(roles []model.Role, errs *Errors) {
	if len(roles) == 0 {
		errs.RejectValue("permissions", ErrorPermissionsMandatory)
		return
	}

	has := func(r model.Role) bool {
		for _, role := range roles {
			if role == r {
				return true
			}
		}
		return false
	}

	if has(model.RoleInactive) {
		if len(roles) > 1 {
			errs.RejectValue("permissions", ErrorPermissionsInactiveRole)
		}
		return
	}
	if !has(model.RoleUser) {
		errs.RejectValue("permissions", ErrorPermissionsUserRole)
		return
	}
	if (has(model.RoleDepartmentHead) || has(model.RoleSecondStageAuthority)) &&
		(has(model.RoleBoss) || has(model.RoleOffice)) {
		errs.RejectValue("permissions", ErrorPermissionsCombination)
	}
}

func validateNotifications(roles []model.Role, notifications []model.MailNotification, errs *Errors) {
	p := model.Person{Permissions: roles}
	for _, n := range notifications {
		role, ok := notificationRoles[n]
		if !ok || !p.HasRole(role) {
			errs.RejectValue("notifications", ErrorNotificationsCombination)
			return
		}
	}
}

// ValidateAccount checks a holidays account form against the maximum annual vacation days.
func ValidateAccount(in *model.AccountForm, maxAnnualVacationDays int) *Errors {
	errs := &Errors{}
	validateAccountPeriod(in.ValidFrom, in.ValidTo, errs)

	max := decimal.NewFromInt(int64(maxAnnualVacationDays))
	if in.AnnualVacationDays.IsNegative() || in.AnnualVacationDays.GreaterThan(max) {
		errs.RejectValue("annual_vacation_days", ErrorInvalid, maxAnnualVacationDays)
	}
	if in.VacationDays != nil && (in.VacationDays.IsNegative() || in.VacationDays.GreaterThan(in.AnnualVacationDays)) {
		errs.RejectValue("vacation_days", ErrorInvalid)
	}
	if in.RemainingVacationDays.IsNegative() || in.RemainingVacationDays.GreaterThan(max) {
		errs.RejectValue("remaining_vacation_days", ErrorInvalid, maxAnnualVacationDays)
	}
	if in.RemainingVacationDaysNotExpiring.IsNegative() ||
		in.RemainingVacationDaysNotExpiring.GreaterThan(in.RemainingVacationDays) {
		errs.RejectValue("remaining_vacation_days_not_expiring", ErrorInvalid)
	}
	if tooLong(in.Comment, maxChars) {
		errs.RejectValue("comment", ErrorTooManyChars)
	}
	return errs
}

func validateAccountPeriod(from, to time.Time, errs *Errors) {
	if from.IsZero() {
		errs.RejectValue("valid_from", ErrorMandatory)
	}
	if to.IsZero() {
		errs.RejectValue("valid_to", ErrorMandatory)
	}
	if from.IsZero() || to.IsZero() {
		return
	}
	if from.Year() != to.Year() || !from.Before(to) {
		errs.Reject(ErrorInvalidPeriod)
	}
}
