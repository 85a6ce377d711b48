package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/event"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/validation"
)

// PersonListResult is a page of persons.
type PersonListResult struct {
	Items []model.Person `json:"data"`
	Total int            `json:"total"`
}

// PersonService reads persons and maintains them together with their working
// time and holidays account.
type PersonService interface {
	GetPersonByID(ctx context.Context, id string) (*model.Person, error)
	GetPersonByUsername(ctx context.Context, username string) (*model.Person, error)
	List(ctx context.Context, limit, offset int) (*PersonListResult, error)
	GetActivePersons(ctx context.Context) ([]model.Person, error)
	GetInactivePersons(ctx context.Context) ([]model.Person, error)
	GetActivePersonsByRole(ctx context.Context, role model.Role) ([]model.Person, error)
	GetActivePersonsWithNotificationType(ctx context.Context, n model.MailNotification) ([]model.Person, error)

	// Create stores a new person, its working time and its holidays account.
	// Without an account in the form a pro-rated default account is created.
	Create(ctx context.Context, form *model.PersonForm) (*model.Person, error)

	// Update changes the person with id. Losing DEPARTMENT_HEAD or
	// SECOND_STAGE_AUTHORITY removes the person from the departments it managed.
	Update(ctx context.Context, id string, form *model.PersonForm) (*model.Person, error)
}

type personService struct {
	repo         repository.PersonRepository
	departments  DepartmentService
	workingTimes WorkingTimeService
	accounts     AccountService
	settings     SettingsService
	events       event.Publisher
	log          *zap.Logger
}

func NewPersonService(repo repository.PersonRepository, departments DepartmentService, workingTimes WorkingTimeService,
	accounts AccountService, settings SettingsService, events event.Publisher, log *zap.Logger) PersonService {
	return &personService{
		repo:         repo,
		departments:  departments,
		workingTimes: workingTimes,
		accounts:     accounts,
		settings:     settings,
		events:       events,
		log:          orNop(log),
	}
}

func (s *personService) GetPersonByID(ctx context.Context, id string) (*model.Person, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *personService) GetPersonByUsername(ctx context.Context, username string) (*model.Person, error) {
	p, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *personService) List(ctx context.Context, limit, offset int) (*PersonListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PersonListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *personService) filter(ctx context.Context, keep func(p *model.Person) bool) ([]model.Person, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Person, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *personService) GetActivePersons(ctx context.Context) ([]model.Person, error) {
	return s.filter(ctx, func(p *model.Person) bool { return p.IsActive() })
}

func (s *personService) GetInactivePersons(ctx context.Context) ([]model.Person, error) {
	return s.filter(ctx, func(p *model.Person) bool { return !p.IsActive() })
}

func (s *personService) GetActivePersonsByRole(ctx context.Context, role model.Role) ([]model.Person, error) {
	return s.filter(ctx, func(p *model.Person) bool { return p.IsActive() && p.HasRole(role) })
}

func (s *personService) GetActivePersonsWithNotificationType(ctx context.Context, n model.MailNotification) ([]model.Person, error) {
	return s.filter(ctx, func(p *model.Person) bool { return p.IsActive() && p.HasNotification(n) })
}

func (s *personService) Create(ctx context.Context, form *model.PersonForm) (*model.Person, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePerson(form, true, maxAnnualVacationDays(settings)).Err(); err != nil {
		return nil, err
	}

	p := &model.Person{
		ID:            uuid.New().String(),
		Username:      strings.TrimSpace(form.Username),
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		Permissions:   form.Permissions,
		Notifications: form.Notifications,
		CreatedAt:     now().UTC(),
	}
	if form.Password != "" {
		if p.PasswordHash, err = auth.HashPassword(form.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	validFrom := form.ValidFrom
	if validFrom.IsZero() {
		validFrom = today()
	}
	if _, err := s.workingTimes.Touch(ctx, form.WorkingDays, form.FederalStateOverride, validFrom, created.ID); err != nil {
		return nil, fmt.Errorf("touch working time: %w", err)
	}

	account := form.Account
	if account == nil {
		account = defaultAccountForm(settings, validFrom)
	}
	account.PersonID = created.ID
	if _, err := s.accounts.CreateHolidaysAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("create holidays account: %w", err)
	}

	s.log.Info("person created", zap.String("person_id", created.ID), zap.String("username", created.Username))
	publish(ctx, s.events, s.log, event.New(event.PersonCreated, created, s.officeIDs(ctx)...))
	return created, nil
}

func defaultAccountForm(settings *model.Settings, validFrom time.Time) *model.AccountForm {
	annual := decimal.NewFromInt(20)
	if d := settings.AccountSettings.DefaultVacationDays; d != nil {
		annual = decimal.NewFromInt(int64(*d))
	}
	return &model.AccountForm{
		ValidFrom:          validFrom,
		ValidTo:            period.LastDayOfYear(validFrom.Year()),
		AnnualVacationDays: annual,
	}
}

func (s *personService) Update(ctx context.Context, id string, form *model.PersonForm) (*model.Person, error) {
	p, err := s.GetPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidatePerson(form, false, maxAnnualVacationDays(settings)).Err(); err != nil {
		return nil, err
	}

	lostHead := p.HasRole(model.RoleDepartmentHead) && !hasRole(form.Permissions, model.RoleDepartmentHead)
	lostAuthority := p.HasRole(model.RoleSecondStageAuthority) && !hasRole(form.Permissions, model.RoleSecondStageAuthority)

	p.FirstName = form.FirstName
	p.LastName = form.LastName
	p.Email = form.Email
	p.Permissions = form.Permissions
	p.Notifications = form.Notifications
	if form.Password != "" {
		if p.PasswordHash, err = auth.HashPassword(form.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, notFound(err)
	}

	if lostHead {
		if err := s.departments.RemoveDepartmentHead(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("remove department head: %w", err)
		}
	}
	if lostAuthority {
		if err := s.departments.RemoveSecondStageAuthority(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("remove second stage authority: %w", err)
		}
	}

	validFrom := form.ValidFrom
	if validFrom.IsZero() {
		validFrom = today()
	}
	if _, err := s.workingTimes.Touch(ctx, form.WorkingDays, form.FederalStateOverride, validFrom, p.ID); err != nil {
		return nil, fmt.Errorf("touch working time: %w", err)
	}

	if form.Account != nil {
		form.Account.PersonID = p.ID
		if _, err := s.accounts.UpdateOrCreateHolidaysAccount(ctx, form.Account); err != nil {
			return nil, fmt.Errorf("update holidays account: %w", err)
		}
	}

	s.log.Info("person updated", zap.String("person_id", p.ID))
	return updated, nil
}

func (s *personService) officeIDs(ctx context.Context) []string {
	office, err := s.GetActivePersonsWithNotificationType(ctx, model.NotificationOffice)
	if err != nil {
		s.log.Warn("load office recipients", zap.Error(err))
		return nil
	}
	return personIDs(office)
}

func hasRole(roles []model.Role, role model.Role) bool {
	p := model.Person{Permissions: roles}
	return p.HasRole(role)
}

func personIDs(persons []model.Person) []string {
	ids := make([]string, 0, len(persons))
	for _, p := range persons {
		ids = append(ids, p.ID)
	}
	return ids
}
