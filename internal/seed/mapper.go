package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
)

var ErrInvalidSeed = errors.New("invalid seed file")

// Data is a mapped seed file.
type Data struct {
	Persons     []model.PersonForm
	Departments []DepartmentSeed
}

// DepartmentSeed is a department whose members are still usernames.
type DepartmentSeed struct {
	Name                   string
	Description            string
	Members                []string
	Heads                  []string
	SecondStageAuthorities []string
	TwoStageApproval       bool
}

var weekdays = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

var roles = map[model.Role]bool{
	model.RoleUser:                 true,
	model.RoleDepartmentHead:       true,
	model.RoleSecondStageAuthority: true,
	model.RoleBoss:                 true,
	model.RoleOffice:               true,
	model.RoleInactive:             true,
}

func Map(path string, dto YAMLFile, now time.Time) (*Data, error) {
	data := &Data{}
	known := make(map[string]bool, len(dto.Persons))

	for i, yp := range dto.Persons {
		field := fmt.Sprintf("persons[%d]", i)
		form, err := mapPerson(path, field, yp, now)
		if err != nil {
			return nil, err
		}
		if known[form.Username] {
			return nil, invalidField(path, field+".username", "duplicate "+form.Username)
		}
		known[form.Username] = true
		data.Persons = append(data.Persons, *form)
	}

	for i, yd := range dto.Departments {
		field := fmt.Sprintf("departments[%d]", i)
		if strings.TrimSpace(yd.Name) == "" {
			return nil, invalidField(path, field+".name", "is required")
		}
		d := DepartmentSeed{
			Name:             strings.TrimSpace(yd.Name),
			Description:      yd.Description,
			TwoStageApproval: yd.TwoStageApproval,
		}
		var err error
		if d.Members, err = usernames(path, field+".members", yd.Members); err != nil {
			return nil, err
		}
		if d.Heads, err = usernames(path, field+".heads", yd.Heads); err != nil {
			return nil, err
		}
		if d.SecondStageAuthorities, err = usernames(path, field+".second_stage_authorities", yd.SecondStageAuthorities); err != nil {
			return nil, err
		}
		data.Departments = append(data.Departments, d)
	}

	return data, nil
}

func mapPerson(path, field string, yp YAMLPerson, now time.Time) (*model.PersonForm, error) {
	username := strings.TrimSpace(yp.Username)
	if username == "" {
		return nil, invalidField(path, field+".username", "is required")
	}

	form := &model.PersonForm{
		Username:  username,
		Password:  yp.Password,
		FirstName: yp.FirstName,
		LastName:  yp.LastName,
		Email:     yp.Email,
		ValidFrom: period.FirstDayOfYear(now.Year()),
	}

	for _, r := range yp.Permissions {
		role := model.Role(strings.ToUpper(strings.TrimSpace(r)))
		if !roles[role] {
			return nil, invalidField(path, field+".permissions", "unknown role "+r)
		}
		form.Permissions = append(form.Permissions, role)
	}
	if len(form.Permissions) == 0 {
		form.Permissions = []model.Role{model.RoleUser}
	}
	for _, n := range yp.Notifications {
		form.Notifications = append(form.Notifications, model.MailNotification(strings.ToUpper(strings.TrimSpace(n))))
	}

	days := yp.WorkingDays
	if len(days) == 0 {
		days = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	}
	for _, d := range days {
		wd, ok := weekdays[strings.ToUpper(strings.TrimSpace(d))]
		if !ok {
			return nil, invalidField(path, field+".working_days", "unknown weekday "+d)
		}
		form.WorkingDays = append(form.WorkingDays, wd)
	}

	if yp.FederalState != "" {
		state := model.FederalState(strings.ToUpper(yp.FederalState))
		if !state.Valid() {
			return nil, invalidField(path, field+".federal_state", "unknown federal state "+yp.FederalState)
		}
		form.FederalStateOverride = &state
	}

	if yp.ValidFrom != "" {
		validFrom, err := period.ParseISO(yp.ValidFrom)
		if err != nil {
			return nil, invalidField(path, field+".valid_from", err.Error())
		}
		form.ValidFrom = validFrom
	}

	if yp.Account != nil {
		form.Account = &model.AccountForm{
			ValidFrom:                        form.ValidFrom,
			ValidTo:                          period.LastDayOfYear(form.ValidFrom.Year()),
			AnnualVacationDays:               decimal.NewFromFloat(yp.Account.AnnualVacationDays),
			RemainingVacationDays:            decimal.NewFromFloat(yp.Account.RemainingVacationDays),
			RemainingVacationDaysNotExpiring: decimal.NewFromFloat(yp.Account.RemainingNotExpiring),
			Comment:                          yp.Account.Comment,
		}
	}

	return form, nil
}

func usernames(path, field string, in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(in))
	for _, u := range in {
		u = strings.TrimSpace(u)
		if u == "" {
			return nil, invalidField(path, field, "empty username")
		}
		out = append(out, u)
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return fmt.Errorf("%s: field %s: %s: %w", path, field, msg, ErrInvalidSeed)
}
