package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"urlaubsverwaltung/internal/ical"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

var ErrSecretRequired = errors.New("secret must not be empty")

const (
	companyCalendarTitle  = "Abwesenheitskalender der Firma"
	personalCalendarTitle = "Abwesenheitskalender von "
)

// CalendarService manages the secret protected calendar feeds of persons.
type CalendarService interface {
	// CreateCalendar stores a calendar of kind for the person. Every call
	// generates a new secret, invalidating links handed out before.
	CreateCalendar(ctx context.Context, personID string, kind model.CalendarKind, p model.CalendarPeriod) (*model.Calendar, error)
	GetCalendar(ctx context.Context, personID string, kind model.CalendarKind) (*model.Calendar, error)
	DeleteCalendar(ctx context.Context, personID string, kind model.CalendarKind) error

	// GetCalendarFeed renders the iCal feed if secret belongs to the person's
	// calendar of kind. A company feed contains everyone for BOSS and OFFICE,
	// otherwise the members of the person's allowed departments.
	GetCalendarFeed(ctx context.Context, personID string, kind model.CalendarKind, secret string) (string, error)

	// RestrictCompanyCalendars removes the company calendars of persons
	// without one of model.CompanyCalendarRoles if settings restrict them.
	RestrictCompanyCalendars(ctx context.Context, settings *model.Settings) (int, error)

	// DeleteCompanyCalendarsForPersonsWithoutOneOfRole removes the company
	// calendars of active persons lacking all of roles. It returns how many
	// persons were affected.
	DeleteCompanyCalendarsForPersonsWithoutOneOfRole(ctx context.Context, roles ...model.Role) (int, error)
}

type calendarService struct {
	repo        repository.CalendarRepository
	persons     PersonService
	departments DepartmentService
	absences    AbsenceService
	settings    SettingsService
}

func NewCalendarService(repo repository.CalendarRepository, persons PersonService, departments DepartmentService,
	absences AbsenceService, settings SettingsService) CalendarService {
	return &calendarService{repo: repo, persons: persons, departments: departments, absences: absences, settings: settings}
}

func newSecret() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *calendarService) CreateCalendar(ctx context.Context, personID string, kind model.CalendarKind, p model.CalendarPeriod) (*model.Calendar, error) {
	person, err := s.persons.GetPersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	if kind == model.CalendarKindCompany && !person.HasAnyRole(model.CompanyCalendarRoles...) {
		settings, err := s.settings.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		if settings.CalendarSettings.RestrictCompanyCalendar {
			return nil, ErrAccessDenied
		}
	}
	if !p.Valid() {
		p = model.CalendarPeriodYear
	}

	c, err := s.repo.FindByPersonAndKind(ctx, personID, kind)
	if err != nil {
		if err = notFound(err); !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		c = &model.Calendar{ID: uuid.New().String(), PersonID: personID, Kind: kind}
	}
	c.Period = p
	c.Secret = newSecret()

	return s.repo.Save(ctx, c)
}

func (s *calendarService) GetCalendar(ctx context.Context, personID string, kind model.CalendarKind) (*model.Calendar, error) {
	c, err := s.repo.FindByPersonAndKind(ctx, personID, kind)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *calendarService) DeleteCalendar(ctx context.Context, personID string, kind model.CalendarKind) error {
	if personID == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, personID, kind)
}

func (s *calendarService) GetCalendarFeed(ctx context.Context, personID string, kind model.CalendarKind, secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrSecretRequired
	}
	c, err := s.repo.FindBySecret(ctx, secret)
	if err != nil {
		return "", notFound(err)
	}
	if c.PersonID != personID || c.Kind != kind {
		return "", ErrNotFound
	}

	p, err := s.persons.GetPersonByID(ctx, personID)
	if err != nil {
		return "", err
	}

	var (
		title   string
		persons []model.Person
	)
	switch kind {
	case model.CalendarKindCompany:
		title = companyCalendarTitle
		persons, err = s.visiblePersons(ctx, p)
		if err != nil {
			return "", err
		}
	default:
		title = personalCalendarTitle + p.NiceName()
		persons = []model.Person{*p}
	}

	absences, err := s.absences.GetOpenAbsences(ctx, persons, c.Period.Since(today()))
	if err != nil {
		return "", err
	}
	return ical.GenerateCalendar(title, absences)
}

func (s *calendarService) visiblePersons(ctx context.Context, p *model.Person) ([]model.Person, error) {
	active, err := s.persons.GetActivePersons(ctx)
	if err != nil {
		return nil, err
	}
	if p.HasAnyRole(model.RoleBoss, model.RoleOffice) {
		return active, nil
	}

	departments, err := s.departments.GetAllowedDepartmentsOfPerson(ctx, p)
	if err != nil {
		return nil, err
	}
	visible := make(map[string]bool)
	for _, d := range departments {
		for _, id := range d.MemberIDs {
			visible[id] = true
		}
	}

	out := make([]model.Person, 0, len(visible))
	for _, a := range active {
		if visible[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *calendarService) RestrictCompanyCalendars(ctx context.Context, settings *model.Settings) (int, error) {
	if !settings.CalendarSettings.RestrictCompanyCalendar {
		return 0, nil
	}
	return s.DeleteCompanyCalendarsForPersonsWithoutOneOfRole(ctx, model.CompanyCalendarRoles...)
}

func (s *calendarService) DeleteCompanyCalendarsForPersonsWithoutOneOfRole(ctx context.Context, roles ...model.Role) (int, error) {
	active, err := s.persons.GetActivePersons(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range active {
		if active[i].HasAnyRole(roles...) {
			continue
		}
		if err := s.repo.Delete(ctx, active[i].ID, model.CalendarKindCompany); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
