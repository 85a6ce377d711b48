package validation

import (
	"context"

	"urlaubsverwaltung/internal/model"
)

const (
	ErrorSecondStageNotSet         = "department.members.error.secondStageNotSet"
	ErrorSecondStageWithoutRole    = "department.members.error.secondStageWithoutRole"
	ErrorDepartmentHeadWithoutRole = "department.members.error.departmentHeadWithoutRole"
)

// PersonFinder loads persons by ID.
type PersonFinder interface {
	GetPersonByID(ctx context.Context, id string) (*model.Person, error)
}

// ValidateDepartment checks name, description and the roles of the
// department heads and second stage authorities.
func ValidateDepartment(ctx context.Context, d *model.Department, persons PersonFinder) (*Errors, error) {
	errs := &Errors{}
	validateName(d.Name, "name", errs)
	if tooLong(d.Description, maxChars) {
		errs.RejectValue("description", ErrorTooManyChars)
	}

	for _, id := range d.DepartmentHeadIDs {
		p, err := persons.GetPersonByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !p.HasRole(model.RoleDepartmentHead) {
			errs.RejectValue("department_head_ids", ErrorDepartmentHeadWithoutRole, p.NiceName())
		}
	}

	if d.TwoStageApproval && len(d.SecondStageAuthorityIDs) == 0 {
		errs.RejectValue("second_stage_authority_ids", ErrorSecondStageNotSet)
	}
	for _, id := range d.SecondStageAuthorityIDs {
		p, err := persons.GetPersonByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !p.HasRole(model.RoleSecondStageAuthority) {
			errs.RejectValue("second_stage_authority_ids", ErrorSecondStageWithoutRole, p.NiceName())
		}
	}
	return errs, nil
}
