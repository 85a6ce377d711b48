// Package mocks provides testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/validation"
)

type MockAbsenceService struct {
	mock.Mock
}

func (m *MockAbsenceService) GetOpenAbsences(ctx context.Context, persons []model.Person, since time.Time) ([]model.Absence, error) {
	args := m.Called(ctx, persons, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Absence), args.Error(1)
}

func (m *MockAbsenceService) GetDayAbsences(ctx context.Context, personID string, start time.Time, end time.Time, typ service.DayAbsenceType) ([]service.DayAbsence, error) {
	args := m.Called(ctx, personID, start, end, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DayAbsence), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetHolidaysAccount(ctx context.Context, year int, personID string) (*model.Account, error) {
	args := m.Called(ctx, year, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) GetHolidaysAccounts(ctx context.Context, year int) ([]model.Account, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountService) GetHolidaysAccountsOfPerson(ctx context.Context, personID string) ([]model.Account, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountService) CreateHolidaysAccount(ctx context.Context, form *model.AccountForm) (*model.Account, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) EditHolidaysAccount(ctx context.Context, account *model.Account, form *model.AccountForm) (*model.Account, error) {
	args := m.Called(ctx, account, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) UpdateOrCreateHolidaysAccount(ctx context.Context, form *model.AccountForm) (*model.Account, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) AutoCreateOrUpdateNextYearsHolidaysAccount(ctx context.Context, reference *model.Account) (*model.Account, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) UpdateRemainingVacationDays(ctx context.Context, year int, personID string) error {
	args := m.Called(ctx, year, personID)
	return args.Error(0)
}

func (m *MockAccountService) CreateAccountsForNextYear(ctx context.Context, referenceYear int) (int, error) {
	args := m.Called(ctx, referenceYear)
	return args.Int(0), args.Error(1)
}

type MockApplicationValidator struct {
	mock.Mock
}

func (m *MockApplicationValidator) Validate(ctx context.Context, app *model.Application, comment string) (*validation.Errors, error) {
	args := m.Called(ctx, app, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validation.Errors), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) GetForPersonAndPeriod(ctx context.Context, personID string, start time.Time, end time.Time) ([]model.Application, error) {
	args := m.Called(ctx, personID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) GetInPeriod(ctx context.Context, start time.Time, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	args := m.Called(ctx, start, end, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) GetWaitingApplications(ctx context.Context, privileged *model.Person) ([]model.Application, error) {
	args := m.Called(ctx, privileged)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationService) GetTotalOvertimeReduction(ctx context.Context, personID string) (decimal.Decimal, error) {
	args := m.Called(ctx, personID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockApplicationService) GetComments(ctx context.Context, id string) ([]model.ApplicationComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationComment), args.Error(1)
}

func (m *MockApplicationService) AddComment(ctx context.Context, id string, author *model.Person, text string) (*model.ApplicationComment, error) {
	args := m.Called(ctx, id, author, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationComment), args.Error(1)
}

func (m *MockApplicationService) Apply(ctx context.Context, app *model.Application, applier *model.Person, comment string) (*model.Application, error) {
	args := m.Called(ctx, app, applier, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Allow(ctx context.Context, id string, privileged *model.Person, comment string) (*model.Application, error) {
	args := m.Called(ctx, id, privileged, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Reject(ctx context.Context, id string, privileged *model.Person, comment string) (*model.Application, error) {
	args := m.Called(ctx, id, privileged, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Cancel(ctx context.Context, id string, canceller *model.Person, comment string) (*model.Application, error) {
	args := m.Called(ctx, id, canceller, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Refer(ctx context.Context, id string, recipientID string, sender *model.Person) (*model.Application, error) {
	args := m.Called(ctx, id, recipientID, sender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Remind(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) RemindWaitingApplications(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockApplicationService) RemindUpcomingApplications(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSickNoteAttachmentService struct {
	mock.Mock
}

func (m *MockSickNoteAttachmentService) Upload(ctx context.Context, sickNoteID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.SickNoteAttachment, error) {
	args := m.Called(ctx, sickNoteID, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNoteAttachment), args.Error(1)
}

func (m *MockSickNoteAttachmentService) List(ctx context.Context, sickNoteID string, limit int, offset int) (*service.AttachmentListResult, error) {
	args := m.Called(ctx, sickNoteID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttachmentListResult), args.Error(1)
}

func (m *MockSickNoteAttachmentService) Get(ctx context.Context, id string) (*model.SickNoteAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNoteAttachment), args.Error(1)
}

func (m *MockSickNoteAttachmentService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSickNoteAttachmentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(p *model.Person) (*auth.Token, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}

func (m *MockTokenIssuer) RemainingTTL(c *auth.Claims) time.Duration {
	args := m.Called(c)
	return args.Get(0).(time.Duration)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username string, password string) (*auth.Token, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetPersonsAvailabilities(ctx context.Context, start time.Time, end time.Time, persons []model.Person) ([]service.PersonAvailabilities, error) {
	args := m.Called(ctx, start, end, persons)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PersonAvailabilities), args.Error(1)
}

type MockCalculationService struct {
	mock.Mock
}

func (m *MockCalculationService) CheckApplication(ctx context.Context, app *model.Application) (bool, error) {
	args := m.Called(ctx, app)
	return args.Bool(0), args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) CreateCalendar(ctx context.Context, personID string, kind model.CalendarKind, p model.CalendarPeriod) (*model.Calendar, error) {
	args := m.Called(ctx, personID, kind, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *MockCalendarService) GetCalendar(ctx context.Context, personID string, kind model.CalendarKind) (*model.Calendar, error) {
	args := m.Called(ctx, personID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calendar), args.Error(1)
}

func (m *MockCalendarService) DeleteCalendar(ctx context.Context, personID string, kind model.CalendarKind) error {
	args := m.Called(ctx, personID, kind)
	return args.Error(0)
}

func (m *MockCalendarService) GetCalendarFeed(ctx context.Context, personID string, kind model.CalendarKind, secret string) (string, error) {
	args := m.Called(ctx, personID, kind, secret)
	return args.String(0), args.Error(1)
}

func (m *MockCalendarService) RestrictCompanyCalendars(ctx context.Context, settings *model.Settings) (int, error) {
	args := m.Called(ctx, settings)
	return args.Int(0), args.Error(1)
}

func (m *MockCalendarService) DeleteCompanyCalendarsForPersonsWithoutOneOfRole(ctx context.Context, roles ...model.Role) (int, error) {
	args := m.Called(ctx, roles)
	return args.Int(0), args.Error(1)
}

type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) GetDepartment(ctx context.Context, id string) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) GetAllDepartments(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Update(ctx context.Context, d *model.Department) (*model.Department, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepartmentService) GetManagedDepartmentsOfDepartmentHead(ctx context.Context, personID string) ([]model.Department, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) GetManagedDepartmentsOfSecondStageAuthority(ctx context.Context, personID string) ([]model.Department, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) GetAssignedDepartmentsOfMember(ctx context.Context, personID string) ([]model.Department, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) GetAllowedDepartmentsOfPerson(ctx context.Context, p *model.Person) ([]model.Department, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) IsDepartmentHeadOfPerson(ctx context.Context, head *model.Person, p *model.Person) (bool, error) {
	args := m.Called(ctx, head, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentService) IsSecondStageAuthorityOfPerson(ctx context.Context, authority *model.Person, p *model.Person) (bool, error) {
	args := m.Called(ctx, authority, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentService) IsSignedInUserAllowedToAccessPersonData(ctx context.Context, signedIn *model.Person, p *model.Person) (bool, error) {
	args := m.Called(ctx, signedIn, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentService) GetMembersOfManagedDepartments(ctx context.Context, p *model.Person) ([]string, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDepartmentService) RequiresTwoStageApproval(ctx context.Context, personID string) (bool, error) {
	args := m.Called(ctx, personID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentService) RemoveDepartmentHead(ctx context.Context, personID string) error {
	args := m.Called(ctx, personID)
	return args.Error(0)
}

func (m *MockDepartmentService) RemoveSecondStageAuthority(ctx context.Context, personID string) error {
	args := m.Called(ctx, personID)
	return args.Error(0)
}

type MockOverlapService struct {
	mock.Mock
}

func (m *MockOverlapService) CheckOverlap(ctx context.Context, app *model.Application) (model.OverlapCase, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(model.OverlapCase), args.Error(1)
}

func (m *MockOverlapService) CheckOverlapForSickNote(ctx context.Context, sickNote *model.SickNote) (model.OverlapCase, error) {
	args := m.Called(ctx, sickNote)
	return args.Get(0).(model.OverlapCase), args.Error(1)
}

type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) GetPersonByID(ctx context.Context, id string) (*model.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonService) GetPersonByUsername(ctx context.Context, username string) (*model.Person, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonService) List(ctx context.Context, limit int, offset int) (*service.PersonListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PersonListResult), args.Error(1)
}

func (m *MockPersonService) GetActivePersons(ctx context.Context) ([]model.Person, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Person), args.Error(1)
}

func (m *MockPersonService) GetInactivePersons(ctx context.Context) ([]model.Person, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Person), args.Error(1)
}

func (m *MockPersonService) GetActivePersonsByRole(ctx context.Context, role model.Role) ([]model.Person, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Person), args.Error(1)
}

func (m *MockPersonService) GetActivePersonsWithNotificationType(ctx context.Context, n model.MailNotification) ([]model.Person, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Person), args.Error(1)
}

func (m *MockPersonService) Create(ctx context.Context, form *model.PersonForm) (*model.Person, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonService) Update(ctx context.Context, id string, form *model.PersonForm) (*model.Person, error) {
	args := m.Called(ctx, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

type MockPublicHolidaysService struct {
	mock.Mock
}

func (m *MockPublicHolidaysService) IsPublicHoliday(date time.Time, state model.FederalState) bool {
	args := m.Called(date, state)
	return args.Bool(0)
}

func (m *MockPublicHolidaysService) WorkingDurationOfDate(ctx context.Context, date time.Time, state model.FederalState) (decimal.Decimal, error) {
	args := m.Called(ctx, date, state)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPublicHolidaysService) AbsenceTypeOfDate(ctx context.Context, date time.Time, state model.FederalState) (model.DayLength, error) {
	args := m.Called(ctx, date, state)
	return args.Get(0).(model.DayLength), args.Error(1)
}

func (m *MockPublicHolidaysService) HolidaysOfYear(ctx context.Context, year int, month time.Month, state model.FederalState) ([]model.PublicHoliday, error) {
	args := m.Called(ctx, year, month, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublicHoliday), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *MockSettingsService) Save(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

type MockSickNoteValidator struct {
	mock.Mock
}

func (m *MockSickNoteValidator) Validate(ctx context.Context, s *model.SickNote, comment string) (*validation.Errors, error) {
	args := m.Called(ctx, s, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validation.Errors), args.Error(1)
}

type MockSickNoteService struct {
	mock.Mock
}

func (m *MockSickNoteService) Get(ctx context.Context, id string) (*model.SickNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) GetForPersonAndPeriod(ctx context.Context, personID string, start time.Time, end time.Time) ([]model.SickNote, error) {
	args := m.Called(ctx, personID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) GetInPeriod(ctx context.Context, start time.Time, end time.Time) ([]model.SickNote, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) GetComments(ctx context.Context, id string) ([]model.SickNoteComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNoteComment), args.Error(1)
}

func (m *MockSickNoteService) Create(ctx context.Context, s *model.SickNote, applier *model.Person, comment string) (*model.SickNote, error) {
	args := m.Called(ctx, s, applier, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) Update(ctx context.Context, s *model.SickNote, editor *model.Person, comment string) (*model.SickNote, error) {
	args := m.Called(ctx, s, editor, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) Cancel(ctx context.Context, id string, canceller *model.Person, comment string) (*model.SickNote, error) {
	args := m.Called(ctx, id, canceller, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) ConvertToVacation(ctx context.Context, id string, vacationType model.VacationCategory, reason string, converter *model.Person) (*model.Application, error) {
	args := m.Called(ctx, id, vacationType, reason, converter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockSickNoteService) GetSickNotesReachingEndOfSickPay(ctx context.Context) ([]model.SickNote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SickNote), args.Error(1)
}

func (m *MockSickNoteService) SendEndOfSickPayNotification(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockVacationDaysService struct {
	mock.Mock
}

func (m *MockVacationDaysService) GetVacationDaysLeft(ctx context.Context, account *model.Account, nextYear *model.Account) (*model.VacationDaysLeft, error) {
	args := m.Called(ctx, account, nextYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VacationDaysLeft), args.Error(1)
}

func (m *MockVacationDaysService) GetRemainingVacationDaysAlreadyUsed(ctx context.Context, account *model.Account) (decimal.Decimal, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockVacationDaysService) CalculateTotalLeftVacationDays(ctx context.Context, account *model.Account) (decimal.Decimal, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockVacationDaysService) GetUsedDaysBeforeAndAfterApril(ctx context.Context, account *model.Account) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockWorkDaysService struct {
	mock.Mock
}

func (m *MockWorkDaysService) GetWorkDays(ctx context.Context, dayLength model.DayLength, start time.Time, end time.Time, personID string) (decimal.Decimal, error) {
	args := m.Called(ctx, dayLength, start, end, personID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWorkDaysService) GetWorkDaysSplitByApril(ctx context.Context, dayLength model.DayLength, start time.Time, end time.Time, personID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, dayLength, start, end, personID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockWorkingTimeService struct {
	mock.Mock
}

func (m *MockWorkingTimeService) Touch(ctx context.Context, workingDays []time.Weekday, federalStateOverride *model.FederalState, validFrom time.Time, personID string) (*model.WorkingTime, error) {
	args := m.Called(ctx, workingDays, federalStateOverride, validFrom, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeService) GetByPerson(ctx context.Context, personID string) ([]model.WorkingTime, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeService) GetByPersonAndValidityDateEqualsOrMinorDate(ctx context.Context, personID string, date time.Time) (*model.WorkingTime, error) {
	args := m.Called(ctx, personID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}

func (m *MockWorkingTimeService) GetFederalStateForPerson(ctx context.Context, personID string, date time.Time) (model.FederalState, error) {
	args := m.Called(ctx, personID, date)
	return args.Get(0).(model.FederalState), args.Error(1)
}

func (m *MockWorkingTimeService) CreateDefaultWorkingTime(ctx context.Context, personID string) (*model.WorkingTime, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkingTime), args.Error(1)
}
