package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
)

// Result counts what a seed run changed.
type Result struct {
	PersonsCreated     int
	PersonsSkipped     int
	DepartmentsCreated int
	DepartmentsSkipped int
}

// Seeder applies seed data through the services so that working times,
// holidays accounts and events are created like for any other person.
// Running it twice is harmless: existing usernames and department names are
// skipped.
type Seeder struct {
	persons     service.PersonService
	departments service.DepartmentService
	log         *zap.Logger
}

func NewSeeder(persons service.PersonService, departments service.DepartmentService, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{persons: persons, departments: departments, log: log}
}

func (s *Seeder) Apply(ctx context.Context, data *Data) (Result, error) {
	var res Result
	ids := make(map[string]string, len(data.Persons))

	for i := range data.Persons {
		form := &data.Persons[i]
		existing, err := s.persons.GetPersonByUsername(ctx, form.Username)
		switch {
		case err == nil:
			ids[form.Username] = existing.ID
			res.PersonsSkipped++
			s.log.Debug("person exists, skipping", zap.String("username", form.Username))
			continue
		case !errors.Is(err, service.ErrNotFound):
			return res, fmt.Errorf("lookup person %s: %w", form.Username, err)
		}

		created, err := s.persons.Create(ctx, form)
		if err != nil {
			return res, fmt.Errorf("create person %s: %w", form.Username, err)
		}
		ids[form.Username] = created.ID
		res.PersonsCreated++
	}

	if len(data.Departments) == 0 {
		s.logResult(res)
		return res, nil
	}

	all, err := s.departments.GetAllDepartments(ctx)
	if err != nil {
		return res, fmt.Errorf("list departments: %w", err)
	}
	names := make(map[string]bool, len(all))
	for _, d := range all {
		names[d.Name] = true
	}

	for _, ds := range data.Departments {
		if names[ds.Name] {
			res.DepartmentsSkipped++
			s.log.Debug("department exists, skipping", zap.String("name", ds.Name))
			continue
		}

		d := &model.Department{
			Name:             ds.Name,
			Description:      ds.Description,
			TwoStageApproval: ds.TwoStageApproval,
		}
		if d.MemberIDs, err = s.resolve(ctx, ids, ds.Members); err != nil {
			return res, fmt.Errorf("department %s: %w", ds.Name, err)
		}
		if d.DepartmentHeadIDs, err = s.resolve(ctx, ids, ds.Heads); err != nil {
			return res, fmt.Errorf("department %s: %w", ds.Name, err)
		}
		if d.SecondStageAuthorityIDs, err = s.resolve(ctx, ids, ds.SecondStageAuthorities); err != nil {
			return res, fmt.Errorf("department %s: %w", ds.Name, err)
		}

		if _, err := s.departments.Create(ctx, d); err != nil {
			return res, fmt.Errorf("create department %s: %w", ds.Name, err)
		}
		names[ds.Name] = true
		res.DepartmentsCreated++
	}

	s.logResult(res)
	return res, nil
}

func (s *Seeder) logResult(res Result) {
	s.log.Info("seed applied",
		zap.Int("persons_created", res.PersonsCreated),
		zap.Int("persons_skipped", res.PersonsSkipped),
		zap.Int("departments_created", res.DepartmentsCreated),
		zap.Int("departments_skipped", res.DepartmentsSkipped),
	)
}

// resolve maps usernames to person IDs, looking up persons that were not
// part of this seed file.
func (s *Seeder) resolve(ctx context.Context, ids map[string]string, usernames []string) ([]string, error) {
	out := make([]string, 0, len(usernames))
	for _, u := range usernames {
		id, ok := ids[u]
		if !ok {
			p, err := s.persons.GetPersonByUsername(ctx, u)
			if err != nil {
				return nil, fmt.Errorf("unknown person %s: %w", u, err)
			}
			id = p.ID
			ids[u] = id
		}
		out = append(out, id)
	}
	return out, nil
}
