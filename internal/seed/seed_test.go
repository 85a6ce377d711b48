package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/service/mocks"
)

const seedYAML = `
persons:
  - username: office
    password: secret
    first_name: Olga
    last_name: Office
    email: office@example.org
    permissions: [user, office]
  - username: jdoe
    first_name: John
    last_name: Doe
    email: jdoe@example.org
    working_days: [monday, tuesday, wednesday]
    federal_state: bayern
    valid_from: "2025-03-01"
    account:
      annual_vacation_days: 28
      remaining_vacation_days: 2.5
departments:
  - name: Engineering
    members: [jdoe, office]
    heads: [office]
    two_stage_approval: true
`

var seedNow = time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	data, err := Load(writeSeed(t, seedYAML), seedNow)
	require.NoError(t, err)
	require.Len(t, data.Persons, 2)
	require.Len(t, data.Departments, 1)

	office := data.Persons[0]
	assert.Equal(t, []model.Role{model.RoleUser, model.RoleOffice}, office.Permissions)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, office.WorkingDays)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), office.ValidFrom)
	assert.Nil(t, office.Account)
	assert.Nil(t, office.FederalStateOverride)

	jdoe := data.Persons[1]
	assert.Equal(t, []model.Role{model.RoleUser}, jdoe.Permissions)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, jdoe.WorkingDays)
	require.NotNil(t, jdoe.FederalStateOverride)
	assert.Equal(t, model.Bayern, *jdoe.FederalStateOverride)
	require.NotNil(t, jdoe.Account)
	assert.True(t, decimal.NewFromInt(28).Equal(jdoe.Account.AnnualVacationDays))
	assert.True(t, decimal.RequireFromString("2.5").Equal(jdoe.Account.RemainingVacationDays))
	assert.Equal(t, 2025, jdoe.Account.ValidTo.Year())
	assert.Equal(t, time.December, jdoe.Account.ValidTo.Month())

	assert.Equal(t, DepartmentSeed{
		Name:             "Engineering",
		Members:          []string{"jdoe", "office"},
		Heads:            []string{"office"},
		TwoStageApproval: true,
	}, data.Departments[0])
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), seedNow)
		assert.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := Load(writeSeed(t, "persons: [\n"), seedNow)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidSeed)
	})

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"missing username", "persons:\n  - first_name: A\n", "persons[0].username"},
		{"duplicate username", "persons:\n  - username: a\n  - username: a\n", "persons[1].username"},
		{"unknown role", "persons:\n  - username: a\n    permissions: [admin]\n", "persons[0].permissions"},
		{"unknown weekday", "persons:\n  - username: a\n    working_days: [funday]\n", "persons[0].working_days"},
		{"unknown state", "persons:\n  - username: a\n    federal_state: atlantis\n", "persons[0].federal_state"},
		{"bad valid_from", "persons:\n  - username: a\n    valid_from: 01.01.2025\n", "persons[0].valid_from"},
		{"department without name", "departments:\n  - members: [a]\n", "departments[0].name"},
		{"empty member", "departments:\n  - name: X\n    members: [\"\"]\n", "departments[0].members"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSeed(t, tt.content), seedNow)
			require.ErrorIs(t, err, ErrInvalidSeed)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSeederApply(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		data       *Data
		setupMocks func(*mocks.MockPersonService, *mocks.MockDepartmentService)
		want       Result
		wantErr    bool
	}{
		{
			name: "creates persons and departments",
			data: &Data{
				Persons: []model.PersonForm{{Username: "office"}, {Username: "jdoe"}},
				Departments: []DepartmentSeed{{
					Name:    "Engineering",
					Members: []string{"jdoe", "office"},
					Heads:   []string{"office"},
				}},
			},
			setupMocks: func(p *mocks.MockPersonService, d *mocks.MockDepartmentService) {
				p.On("GetPersonByUsername", ctx, "office").Return(nil, service.ErrNotFound)
				p.On("GetPersonByUsername", ctx, "jdoe").Return(nil, service.ErrNotFound)
				p.On("Create", ctx, mock.MatchedBy(func(f *model.PersonForm) bool { return f.Username == "office" })).
					Return(&model.Person{ID: "p-office", Username: "office"}, nil)
				p.On("Create", ctx, mock.MatchedBy(func(f *model.PersonForm) bool { return f.Username == "jdoe" })).
					Return(&model.Person{ID: "p-jdoe", Username: "jdoe"}, nil)
				d.On("GetAllDepartments", ctx).Return([]model.Department{}, nil)
				d.On("Create", ctx, mock.MatchedBy(func(dep *model.Department) bool {
					return dep.Name == "Engineering" &&
						assert.ObjectsAreEqual([]string{"p-jdoe", "p-office"}, dep.MemberIDs) &&
						assert.ObjectsAreEqual([]string{"p-office"}, dep.DepartmentHeadIDs)
				})).Return(&model.Department{ID: "d1"}, nil)
			},
			want: Result{PersonsCreated: 2, DepartmentsCreated: 1},
		},
		{
			name: "skips existing entries",
			data: &Data{
				Persons:     []model.PersonForm{{Username: "office"}},
				Departments: []DepartmentSeed{{Name: "Engineering", Members: []string{"office"}}},
			},
			setupMocks: func(p *mocks.MockPersonService, d *mocks.MockDepartmentService) {
				p.On("GetPersonByUsername", ctx, "office").Return(&model.Person{ID: "p-office"}, nil)
				d.On("GetAllDepartments", ctx).Return([]model.Department{{ID: "d1", Name: "Engineering"}}, nil)
			},
			want: Result{PersonsSkipped: 1, DepartmentsSkipped: 1},
		},
		{
			name: "resolves members outside the file",
			data: &Data{
				Departments: []DepartmentSeed{{Name: "Sales", Members: []string{"known"}}},
			},
			setupMocks: func(p *mocks.MockPersonService, d *mocks.MockDepartmentService) {
				d.On("GetAllDepartments", ctx).Return([]model.Department{}, nil)
				p.On("GetPersonByUsername", ctx, "known").Return(&model.Person{ID: "p-known"}, nil)
				d.On("Create", ctx, mock.MatchedBy(func(dep *model.Department) bool {
					return assert.ObjectsAreEqual([]string{"p-known"}, dep.MemberIDs)
				})).Return(&model.Department{ID: "d2"}, nil)
			},
			want: Result{DepartmentsCreated: 1},
		},
		{
			name: "unknown member",
			data: &Data{
				Departments: []DepartmentSeed{{Name: "Sales", Members: []string{"ghost"}}},
			},
			setupMocks: func(p *mocks.MockPersonService, d *mocks.MockDepartmentService) {
				d.On("GetAllDepartments", ctx).Return([]model.Department{}, nil)
				p.On("GetPersonByUsername", ctx, "ghost").Return(nil, service.ErrNotFound)
			},
			wantErr: true,
		},
		{
			name: "lookup failure",
			data: &Data{Persons: []model.PersonForm{{Username: "office"}}},
			setupMocks: func(p *mocks.MockPersonService, d *mocks.MockDepartmentService) {
				p.On("GetPersonByUsername", ctx, "office").Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "create failure",
			data: &Data{Persons: []model.PersonForm{{Username: "office"}}},
			setupMocks: func(p *mocks.MockPersonService, d *mocks.MockDepartmentService) {
				p.On("GetPersonByUsername", ctx, "office").Return(nil, service.ErrNotFound)
				p.On("Create", ctx, mock.Anything).Return(nil, errors.New("validation"))
			},
			want:    Result{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persons := new(mocks.MockPersonService)
			departments := new(mocks.MockDepartmentService)
			tt.setupMocks(persons, departments)

			got, err := NewSeeder(persons, departments, nil).Apply(ctx, tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			persons.AssertExpectations(t)
			departments.AssertExpectations(t)
		})
	}
}
