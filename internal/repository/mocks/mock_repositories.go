package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Create(ctx context.Context, p *model.Person) (*model.Person, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonRepository) Update(ctx context.Context, p *model.Person) (*model.Person, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id string) (*model.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByUsername(ctx context.Context, username string) (*model.Person, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonRepository) FindAll(ctx context.Context) ([]model.Person, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Person), args.Error(1)
}

func (m *MockPersonRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Person], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Person]), args.Error(1)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, d *model.Department) (*model.Department, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id string) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindAll(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, a *model.Application) (*model.Application, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByPersonAndPeriod(ctx context.Context, personID string, start time.Time, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	args := m.Called(ctx, personID, start, end, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByPeriod(ctx context.Context, start time.Time, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	args := m.Called(ctx, start, end, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByStatuses(ctx context.Context, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) SumOvertimeReduction(ctx context.Context, personID string) (decimal.Decimal, error) {
	args := m.Called(ctx, personID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockApplicationCommentRepository struct {
	mock.Mock
}

func (m *MockApplicationCommentRepository) Create(ctx context.Context, c *model.ApplicationComment) (*model.ApplicationComment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationComment), args.Error(1)
}

func (m *MockApplicationCommentRepository) FindByApplication(ctx context.Context, applicationID string) ([]model.ApplicationComment, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationComment), args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *model.Account) (*model.Account, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *model.Account) (*model.Account, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPersonAndYear(ctx context.Context, personID string, year int) (*model.Account, error) {
	args := m.Called(ctx, personID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByYear(ctx context.Context, year int) ([]model.Account, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPerson(ctx context.Context, personID string) ([]model.Account, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

type MockWorkingTimeRepository struct {
	mock.Mock
}

func (m *MockWorkingTimeRepository) Create(ctx context.Context, w *model.WorkingTime) (*model.WorkingTime, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeRepository) Update(ctx context.Context, w *model.WorkingTime) (*model.WorkingTime, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeRepository) FindByPersonAndValidFrom(ctx context.Context, personID string, validFrom time.Time) (*model.WorkingTime, error) {
	args := m.Called(ctx, personID, validFrom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeRepository) FindByPersonValidAt(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error) {
	args := m.Called(ctx, personID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeRepository) FindByPerson(ctx context.Context, personID string) ([]model.WorkingTime, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkingTime), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) Save(ctx context.Context, c *model.Calendar) (*model.Calendar, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *MockCalendarRepository) FindByPersonAndKind(ctx context.Context, personID string, kind model.CalendarKind) (*model.Calendar, error) {
	args := m.Called(ctx, personID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *MockCalendarRepository) FindBySecret(ctx context.Context, secret string) (*model.Calendar, error) {
	args := m.Called(ctx, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *MockCalendarRepository) Delete(ctx context.Context, personID string, kind model.CalendarKind) error {
	args := m.Called(ctx, personID, kind)
	return args.Error(0)
}

type MockSickNoteRepository struct {
	mock.Mock
}

func (m *MockSickNoteRepository) Create(ctx context.Context, s *model.SickNote) (*model.SickNote, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteRepository) Update(ctx context.Context, s *model.SickNote) (*model.SickNote, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteRepository) FindByID(ctx context.Context, id string) (*model.SickNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteRepository) FindByPersonAndPeriod(ctx context.Context, personID string, start time.Time, end time.Time) ([]model.SickNote, error) {
	args := m.Called(ctx, personID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNote), args.Error(1)
}

func (m *MockSickNoteRepository) FindByPeriod(ctx context.Context, start time.Time, end time.Time) ([]model.SickNote, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNote), args.Error(1)
}

func (m *MockSickNoteRepository) FindByMinimumLengthAndStartedBefore(ctx context.Context, minDays int, startedOnOrBefore time.Time) ([]model.SickNote, error) {
	args := m.Called(ctx, minDays, startedOnOrBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNote), args.Error(1)
}

type MockSickNoteCommentRepository struct {
	mock.Mock
}

func (m *MockSickNoteCommentRepository) Create(ctx context.Context, c *model.SickNoteComment) (*model.SickNoteComment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNoteComment), args.Error(1)
}

func (m *MockSickNoteCommentRepository) FindBySickNote(ctx context.Context, sickNoteID string) ([]model.SickNoteComment, error) {
	args := m.Called(ctx, sickNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNoteComment), args.Error(1)
}

type MockSickNoteAttachmentRepository struct {
	mock.Mock
}

func (m *MockSickNoteAttachmentRepository) Create(ctx context.Context, a *model.SickNoteAttachment) (*model.SickNoteAttachment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNoteAttachment), args.Error(1)
}

func (m *MockSickNoteAttachmentRepository) FindByID(ctx context.Context, id string) (*model.SickNoteAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNoteAttachment), args.Error(1)
}

func (m *MockSickNoteAttachmentRepository) List(ctx context.Context, sickNoteID string, pq repository.PageQuery) (*repository.PageResult[model.SickNoteAttachment], error) {
	args := m.Called(ctx, sickNoteID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.SickNoteAttachment]), args.Error(1)
}

func (m *MockSickNoteAttachmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
