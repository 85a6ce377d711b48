package service

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/validation"
)

// DepartmentService manages departments and answers who manages whom.
type DepartmentService interface {
	GetDepartment(ctx context.Context, id string) (*model.Department, error)
	GetAllDepartments(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, d *model.Department) (*model.Department, error)
	Update(ctx context.Context, d *model.Department) (*model.Department, error)
	Delete(ctx context.Context, id string) error

	GetManagedDepartmentsOfDepartmentHead(ctx context.Context, personID string) ([]model.Department, error)
	GetManagedDepartmentsOfSecondStageAuthority(ctx context.Context, personID string) ([]model.Department, error)
	GetAssignedDepartmentsOfMember(ctx context.Context, personID string) ([]model.Department, error)

	// GetAllowedDepartmentsOfPerson returns all departments for BOSS and OFFICE,
	// otherwise the departments the person is member of or manages.
	GetAllowedDepartmentsOfPerson(ctx context.Context, p *model.Person) ([]model.Department, error)

	IsDepartmentHeadOfPerson(ctx context.Context, head, p *model.Person) (bool, error)
	IsSecondStageAuthorityOfPerson(ctx context.Context, authority, p *model.Person) (bool, error)

	// IsSignedInUserAllowedToAccessPersonData is true for the person itself,
	// BOSS, OFFICE and the department heads and second stage authorities of p.
	IsSignedInUserAllowedToAccessPersonData(ctx context.Context, signedIn, p *model.Person) (bool, error)

	// GetMembersOfManagedDepartments returns the IDs of all members of the
	// departments person heads or is second stage authority of.
	GetMembersOfManagedDepartments(ctx context.Context, p *model.Person) ([]string, error)

	// RequiresTwoStageApproval is true if a department of the person has two stage approval.
	RequiresTwoStageApproval(ctx context.Context, personID string) (bool, error)

	// RemoveDepartmentHead removes the person as head from all departments.
	RemoveDepartmentHead(ctx context.Context, personID string) error

	// RemoveSecondStageAuthority removes the person as second stage authority from all departments.
	RemoveSecondStageAuthority(ctx context.Context, personID string) error
}

type departmentService struct {
	repo    repository.DepartmentRepository
	persons repository.PersonRepository
}

func NewDepartmentService(repo repository.DepartmentRepository, persons repository.PersonRepository) DepartmentService {
	return &departmentService{repo: repo, persons: persons}
}

// personFinder adapts the person repository for department validation.
type personFinder struct{ repo repository.PersonRepository }

func (f personFinder) GetPersonByID(ctx context.Context, id string) (*model.Person, error) {
	p, err := f.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, id string) (*model.Department, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (s *departmentService) GetAllDepartments(ctx context.Context) ([]model.Department, error) {
	return s.repo.FindAll(ctx)
}

func (s *departmentService) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	if err := s.validate(ctx, d); err != nil {
		return nil, err
	}
	d.ID = uuid.New().String()
	d.LastModification = now().UTC()
	return s.repo.Create(ctx, d)
}

func (s *departmentService) Update(ctx context.Context, d *model.Department) (*model.Department, error) {
	if d.ID == "" {
		return nil, ErrIDRequired
	}
	if err := s.validate(ctx, d); err != nil {
		return nil, err
	}
	d.LastModification = now().UTC()
	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *departmentService) validate(ctx context.Context, d *model.Department) error {
	errs, err := validation.ValidateDepartment(ctx, d, personFinder{s.persons})
	if err != nil {
		return err
	}
	return errs.Err()
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *departmentService) filter(ctx context.Context, keep func(d *model.Department) bool) ([]model.Department, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Department, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *departmentService) GetManagedDepartmentsOfDepartmentHead(ctx context.Context, personID string) ([]model.Department, error) {
	return s.filter(ctx, func(d *model.Department) bool { return d.HasDepartmentHead(personID) })
}

func (s *departmentService) GetManagedDepartmentsOfSecondStageAuthority(ctx context.Context, personID string) ([]model.Department, error) {
	return s.filter(ctx, func(d *model.Department) bool { return d.HasSecondStageAuthority(personID) })
}

func (s *departmentService) GetAssignedDepartmentsOfMember(ctx context.Context, personID string) ([]model.Department, error) {
	return s.filter(ctx, func(d *model.Department) bool { return d.HasMember(personID) })
}

func (s *departmentService) GetAllowedDepartmentsOfPerson(ctx context.Context, p *model.Person) ([]model.Department, error) {
	if p.HasAnyRole(model.RoleBoss, model.RoleOffice) {
		return s.repo.FindAll(ctx)
	}
	return s.filter(ctx, func(d *model.Department) bool {
		return d.HasMember(p.ID) || d.HasDepartmentHead(p.ID) || d.HasSecondStageAuthority(p.ID)
	})
}

func (s *departmentService) IsDepartmentHeadOfPerson(ctx context.Context, head, p *model.Person) (bool, error) {
	if !head.HasRole(model.RoleDepartmentHead) {
		return false, nil
	}
	managed, err := s.filter(ctx, func(d *model.Department) bool {
		return d.HasDepartmentHead(head.ID) && d.HasMember(p.ID)
	})
	return len(managed) > 0, err
}

func (s *departmentService) IsSecondStageAuthorityOfPerson(ctx context.Context, authority, p *model.Person) (bool, error) {
	if !authority.HasRole(model.RoleSecondStageAuthority) {
		return false, nil
	}
	managed, err := s.filter(ctx, func(d *model.Department) bool {
		return d.HasSecondStageAuthority(authority.ID) && d.HasMember(p.ID)
	})
	return len(managed) > 0, err
}

func (s *departmentService) IsSignedInUserAllowedToAccessPersonData(ctx context.Context, signedIn, p *model.Person) (bool, error) {
	if signedIn.ID == p.ID || signedIn.HasAnyRole(model.RoleBoss, model.RoleOffice) {
		return true, nil
	}
	head, err := s.IsDepartmentHeadOfPerson(ctx, signedIn, p)
	if err != nil || head {
		return head, err
	}
	return s.IsSecondStageAuthorityOfPerson(ctx, signedIn, p)
}

func (s *departmentService) GetMembersOfManagedDepartments(ctx context.Context, p *model.Person) ([]string, error) {
	managed, err := s.filter(ctx, func(d *model.Department) bool {
		return (p.HasRole(model.RoleDepartmentHead) && d.HasDepartmentHead(p.ID)) ||
			(p.HasRole(model.RoleSecondStageAuthority) && d.HasSecondStageAuthority(p.ID))
	})
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, d := range managed {
		for _, id := range d.MemberIDs {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (s *departmentService) RequiresTwoStageApproval(ctx context.Context, personID string) (bool, error) {
	assigned, err := s.GetAssignedDepartmentsOfMember(ctx, personID)
	if err != nil {
		return false, err
	}
	for _, d := range assigned {
		if d.TwoStageApproval {
			return true, nil
		}
	}
	return false, nil
}

func (s *departmentService) RemoveDepartmentHead(ctx context.Context, personID string) error {
	return s.removeFrom(ctx, personID, func(d *model.Department) *[]string { return &d.DepartmentHeadIDs })
}

func (s *departmentService) RemoveSecondStageAuthority(ctx context.Context, personID string) error {
	return s.removeFrom(ctx, personID, func(d *model.Department) *[]string { return &d.SecondStageAuthorityIDs })
}

func (s *departmentService) removeFrom(ctx context.Context, personID string, ids func(d *model.Department) *[]string) error {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		d := &all[i]
		list := ids(d)
		if !slices.Contains(*list, personID) {
			continue
		}
		*list = slices.DeleteFunc(*list, func(id string) bool { return id == personID })
		d.LastModification = now().UTC()
		if _, err := s.repo.Update(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
