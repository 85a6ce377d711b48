package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/event"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/validation"
)

// minDaysBeforeRemind is how long an application has to wait before its applicant may remind.
const minDaysBeforeRemind = 2

// ApplicationValidator validates a new application for leave.
type ApplicationValidator interface {
	Validate(ctx context.Context, app *model.Application, comment string) (*validation.Errors, error)
}

// ApplicationService runs the workflow of applications for leave.
type ApplicationService interface {
	Get(ctx context.Context, id string) (*model.Application, error)
	GetForPersonAndPeriod(ctx context.Context, personID string, start, end time.Time) ([]model.Application, error)
	GetInPeriod(ctx context.Context, start, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error)

	// GetWaitingApplications returns waiting and temporary allowed applications
	// privileged may decide on: all for BOSS and OFFICE, otherwise those of the
	// members of the departments it manages.
	GetWaitingApplications(ctx context.Context, privileged *model.Person) ([]model.Application, error)

	// GetTotalOvertimeReduction sums the hours of waiting and allowed overtime applications.
	GetTotalOvertimeReduction(ctx context.Context, personID string) (decimal.Decimal, error)

	GetComments(ctx context.Context, id string) ([]model.ApplicationComment, error)
	AddComment(ctx context.Context, id string, author *model.Person, text string) (*model.ApplicationComment, error)

	// Apply validates app and stores it as WAITING on behalf of applier.
	Apply(ctx context.Context, app *model.Application, applier *model.Person, comment string) (*model.Application, error)
	Allow(ctx context.Context, id string, privileged *model.Person, comment string) (*model.Application, error)
	Reject(ctx context.Context, id string, privileged *model.Person, comment string) (*model.Application, error)
	Cancel(ctx context.Context, id string, canceller *model.Person, comment string) (*model.Application, error)
	Refer(ctx context.Context, id, recipientID string, sender *model.Person) (*model.Application, error)
	Remind(ctx context.Context, id string) (*model.Application, error)

	// RemindWaitingApplications notifies the deciders of applications waiting
	// longer than configured. It returns how many were reminded.
	RemindWaitingApplications(ctx context.Context) (int, error)

	// RemindUpcomingApplications notifies persons whose allowed vacation starts
	// in the configured number of days.
	RemindUpcomingApplications(ctx context.Context) (int, error)
}

type applicationService struct {
	repo        repository.ApplicationRepository
	comments    repository.ApplicationCommentRepository
	persons     PersonService
	departments DepartmentService
	accounts    AccountService
	validator   ApplicationValidator
	settings    SettingsService
	events      event.Publisher
	log         *zap.Logger
}

// ApplicationDeps groups the collaborators of the application service.
type ApplicationDeps struct {
	Repo        repository.ApplicationRepository
	Comments    repository.ApplicationCommentRepository
	Persons     PersonService
	Departments DepartmentService
	Accounts    AccountService
	Validator   ApplicationValidator
	Settings    SettingsService
	Events      event.Publisher
	Log         *zap.Logger
}

func NewApplicationService(d ApplicationDeps) ApplicationService {
	return &applicationService{
		repo:        d.Repo,
		comments:    d.Comments,
		persons:     d.Persons,
		departments: d.Departments,
		accounts:    d.Accounts,
		validator:   d.Validator,
		settings:    d.Settings,
		events:      d.Events,
		log:         orNop(d.Log),
	}
}

func (s *applicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return app, nil
}

func (s *applicationService) GetForPersonAndPeriod(ctx context.Context, personID string, start, end time.Time) ([]model.Application, error) {
	return s.repo.FindByPersonAndPeriod(ctx, personID, start, end)
}

func (s *applicationService) GetInPeriod(ctx context.Context, start, end time.Time, statuses ...model.ApplicationStatus) ([]model.Application, error) {
	return s.repo.FindByPeriod(ctx, start, end, statuses...)
}

func (s *applicationService) GetWaitingApplications(ctx context.Context, privileged *model.Person) ([]model.Application, error) {
	waiting, err := s.repo.FindByStatuses(ctx, model.StatusWaiting, model.StatusTemporaryAllowed)
	if err != nil {
		return nil, err
	}
	if privileged.HasAnyRole(model.RoleBoss, model.RoleOffice) {
		return waiting, nil
	}

	members, err := s.departments.GetMembersOfManagedDepartments(ctx, privileged)
	if err != nil {
		return nil, err
	}
	out := make([]model.Application, 0, len(waiting))
	for _, app := range waiting {
		if app.PersonID != privileged.ID && slices.Contains(members, app.PersonID) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *applicationService) GetTotalOvertimeReduction(ctx context.Context, personID string) (decimal.Decimal, error) {
	return s.repo.SumOvertimeReduction(ctx, personID)
}

func (s *applicationService) GetComments(ctx context.Context, id string) ([]model.ApplicationComment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.comments.FindByApplication(ctx, id)
}

func (s *applicationService) AddComment(ctx context.Context, id string, author *model.Person, text string) (*model.ApplicationComment, error) {
	if err := validation.ValidateComment(text, true).Err(); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.comment(ctx, id, author.ID, model.ActionEdited, text)
}

func (s *applicationService) comment(ctx context.Context, appID, personID string, action model.CommentAction, text string) (*model.ApplicationComment, error) {
	c, err := s.comments.Create(ctx, &model.ApplicationComment{
		ID:            uuid.New().String(),
		ApplicationID: appID,
		PersonID:      personID,
		Action:        action,
		Text:          text,
		Date:          now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *applicationService) Apply(ctx context.Context, app *model.Application, applier *model.Person, comment string) (*model.Application, error) {
	person, err := s.persons.GetPersonByID(ctx, app.PersonID)
	if err != nil {
		return nil, err
	}
	if applier.ID != person.ID && !applier.HasAnyRole(model.RoleOffice, model.RoleBoss) {
		return nil, ErrAccessDenied
	}

	if app.VacationType != model.VacationOvertime {
		app.Hours = nil
	}
	if app.VacationType != model.VacationSpecialLeave {
		app.Reason = ""
	}
	app.StartDate = period.DateOf(app.StartDate)
	app.EndDate = period.DateOf(app.EndDate)
	app.ID = uuid.New().String()

	errs, err := s.validator.Validate(ctx, app, comment)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	twoStage, err := s.departments.RequiresTwoStageApproval(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	day := today()
	app.ApplierID = applier.ID
	app.Status = model.StatusWaiting
	app.TwoStageApproval = twoStage
	app.ApplicationDate = &day
	app.BossID, app.CancellerID = "", ""
	app.EditedDate, app.CancelDate, app.RemindDate = nil, nil, nil

	stored, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	if _, err := s.comment(ctx, stored.ID, applier.ID, model.ActionApplied, comment); err != nil {
		return nil, err
	}
	s.updateRemainingVacationDays(ctx, stored)

	t := event.ApplicationApplied
	if applier.ID != person.ID {
		t = event.ApplicationAppliedOnBehalf
	}
	s.log.Info("application applied", zap.String("application_id", stored.ID), zap.String("person_id", person.ID))
	publish(ctx, s.events, s.log, event.New(t, stored, append([]string{person.ID}, s.responsibleIDs(ctx, person.ID)...)...))
	return stored, nil
}

func (s *applicationService) Allow(ctx context.Context, id string, privileged *model.Person, comment string) (*model.Application, error) {
	if err := validation.ValidateComment(comment, false).Err(); err != nil {
		return nil, err
	}
	app, person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.HasStatus(model.StatusWaiting, model.StatusTemporaryAllowed) {
		return nil, ErrInvalidState
	}

	authority, err := s.departments.IsSecondStageAuthorityOfPerson(ctx, privileged, person)
	if err != nil {
		return nil, err
	}
	head, err := s.departments.IsDepartmentHeadOfPerson(ctx, privileged, person)
	if err != nil {
		return nil, err
	}

	next := model.StatusAllowed
	switch {
	case privileged.HasRole(model.RoleBoss) || authority:
	case head:
		if privileged.ID == person.ID {
			return nil, ErrAccessDenied
		}
		if app.TwoStageApproval {
			if app.Status == model.StatusTemporaryAllowed {
				return nil, ErrInvalidState
			}
			next = model.StatusTemporaryAllowed
		}
	default:
		return nil, ErrAccessDenied
	}

	app.Status = next
	app.BossID = privileged.ID
	day := today()
	app.EditedDate = &day
	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, err
	}

	action, t := model.ActionAllowed, event.ApplicationAllowed
	if next == model.StatusTemporaryAllowed {
		action, t = model.ActionTemporaryAllowed, event.ApplicationTemporaryAllowed
	}
	if _, err := s.comment(ctx, updated.ID, privileged.ID, action, comment); err != nil {
		return nil, err
	}
	s.updateRemainingVacationDays(ctx, updated)

	s.log.Info("application allowed", zap.String("application_id", updated.ID), zap.String("status", string(next)))
	publish(ctx, s.events, s.log, event.New(t, updated, append([]string{person.ID}, s.responsibleIDs(ctx, person.ID)...)...))
	return updated, nil
}

func (s *applicationService) Reject(ctx context.Context, id string, privileged *model.Person, comment string) (*model.Application, error) {
	if err := validation.ValidateComment(comment, true).Err(); err != nil {
		return nil, err
	}
	app, person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.HasStatus(model.StatusWaiting, model.StatusTemporaryAllowed) {
		return nil, ErrInvalidState
	}
	allowed, err := s.isDecider(ctx, privileged, person)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}

	app.Status = model.StatusRejected
	app.BossID = privileged.ID
	day := today()
	app.EditedDate = &day
	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, err
	}
	if _, err := s.comment(ctx, updated.ID, privileged.ID, model.ActionRejected, comment); err != nil {
		return nil, err
	}
	s.updateRemainingVacationDays(ctx, updated)

	s.log.Info("application rejected", zap.String("application_id", updated.ID))
	publish(ctx, s.events, s.log, event.New(event.ApplicationRejected, updated, append([]string{person.ID}, s.responsibleIDs(ctx, person.ID)...)...))
	return updated, nil
}

func (s *applicationService) Cancel(ctx context.Context, id string, canceller *model.Person, comment string) (*model.Application, error) {
	app, person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.IsActive() {
		return nil, ErrInvalidState
	}

	own := canceller.ID == person.ID && app.Status == model.StatusWaiting
	if !own && !canceller.HasRole(model.RoleOffice) {
		return nil, ErrAccessDenied
	}
	if err := validation.ValidateComment(comment, !own).Err(); err != nil {
		return nil, err
	}

	action, t, status := model.ActionRevoked, event.ApplicationRevoked, model.StatusRevoked
	if app.HasStatus(model.StatusAllowed, model.StatusTemporaryAllowed) {
		action, t, status = model.ActionCancelled, event.ApplicationCancelled, model.StatusCancelled
	}
	app.Status = status
	app.CancellerID = canceller.ID
	day := today()
	app.CancelDate = &day

	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, err
	}
	if _, err := s.comment(ctx, updated.ID, canceller.ID, action, comment); err != nil {
		return nil, err
	}
	s.updateRemainingVacationDays(ctx, updated)

	s.log.Info("application cancelled", zap.String("application_id", updated.ID), zap.String("status", string(updated.Status)))
	publish(ctx, s.events, s.log, event.New(t, updated, append([]string{person.ID}, s.responsibleIDs(ctx, person.ID)...)...))
	return updated, nil
}

func (s *applicationService) Refer(ctx context.Context, id, recipientID string, sender *model.Person) (*model.Application, error) {
	app, person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	head, err := s.departments.IsDepartmentHeadOfPerson(ctx, sender, person)
	if err != nil {
		return nil, err
	}
	if !sender.HasRole(model.RoleBoss) && !head {
		return nil, ErrAccessDenied
	}
	recipient, err := s.persons.GetPersonByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	if _, err := s.comment(ctx, app.ID, sender.ID, model.ActionReferred, recipient.NiceName()); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.log, event.New(event.ApplicationReferred, app, recipient.ID))
	return app, nil
}

func (s *applicationService) Remind(ctx context.Context, id string) (*model.Application, error) {
	app, person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.HasStatus(model.StatusWaiting, model.StatusTemporaryAllowed) {
		return nil, ErrInvalidState
	}

	day := today()
	if app.RemindDate != nil && app.RemindDate.Equal(day) {
		return nil, ErrRemindAlreadySent
	}
	if app.ApplicationDate != nil && app.ApplicationDate.AddDate(0, 0, minDaysBeforeRemind).After(day) {
		return nil, ErrImpatientRemind
	}

	app.RemindDate = &day
	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.log, event.New(event.ApplicationReminded, updated, s.responsibleIDs(ctx, person.ID)...))
	return updated, nil
}

func (s *applicationService) RemindWaitingApplications(ctx context.Context) (int, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	app := settings.ApplicationSettings
	if !app.RemindForWaitingApplications || app.DaysBeforeRemindForWaitingApplications == nil {
		return 0, nil
	}

	waiting, err := s.repo.FindByStatuses(ctx, model.StatusWaiting, model.StatusTemporaryAllowed)
	if err != nil {
		return 0, err
	}
	day := today()
	threshold := day.AddDate(0, 0, -*app.DaysBeforeRemindForWaitingApplications)

	reminded := 0
	for i := range waiting {
		a := &waiting[i]
		if a.ApplicationDate == nil || a.ApplicationDate.After(threshold) {
			continue
		}
		if a.RemindDate != nil && a.RemindDate.After(threshold) {
			continue
		}
		a.RemindDate = &day
		if _, err := s.repo.Update(ctx, a); err != nil {
			return reminded, err
		}
		publish(ctx, s.events, s.log, event.New(event.ApplicationWaitingReminder, a, s.responsibleIDs(ctx, a.PersonID)...))
		reminded++
	}
	return reminded, nil
}

func (s *applicationService) RemindUpcomingApplications(ctx context.Context) (int, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	app := settings.ApplicationSettings
	if !app.RemindForUpcomingApplications || app.DaysBeforeRemindForUpcomingApplications == nil {
		return 0, nil
	}

	target := today().AddDate(0, 0, *app.DaysBeforeRemindForUpcomingApplications)
	upcoming, err := s.repo.FindByPeriod(ctx, target, target, model.StatusAllowed)
	if err != nil {
		return 0, err
	}
	reminded := 0
	for _, a := range upcoming {
		if !a.StartDate.Equal(target) {
			continue
		}
		publish(ctx, s.events, s.log, event.New(event.ApplicationUpcomingReminder, a, a.PersonID))
		reminded++
	}
	return reminded, nil
}

func (s *applicationService) load(ctx context.Context, id string) (*model.Application, *model.Person, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	person, err := s.persons.GetPersonByID(ctx, app.PersonID)
	if err != nil {
		return nil, nil, err
	}
	return app, person, nil
}

// isDecider reports whether privileged may allow or reject applications of person.
func (s *applicationService) isDecider(ctx context.Context, privileged, person *model.Person) (bool, error) {
	if privileged.HasRole(model.RoleBoss) {
		return true, nil
	}
	head, err := s.departments.IsDepartmentHeadOfPerson(ctx, privileged, person)
	if err != nil || head {
		return head, err
	}
	return s.departments.IsSecondStageAuthorityOfPerson(ctx, privileged, person)
}

// responsibleIDs returns the bosses and the department heads and second
// stage authorities of the person.
func (s *applicationService) responsibleIDs(ctx context.Context, personID string) []string {
	var ids []string
	add := func(id string) {
		if id != personID && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	bosses, err := s.persons.GetActivePersonsWithNotificationType(ctx, model.NotificationBoss)
	if err != nil {
		s.log.Warn("load boss recipients", zap.Error(err))
	}
	for _, b := range bosses {
		add(b.ID)
	}

	departments, err := s.departments.GetAssignedDepartmentsOfMember(ctx, personID)
	if err != nil {
		s.log.Warn("load department recipients", zap.Error(err))
	}
	for _, d := range departments {
		for _, id := range d.DepartmentHeadIDs {
			add(id)
		}
		for _, id := range d.SecondStageAuthorityIDs {
			add(id)
		}
	}
	return ids
}

// updateRemainingVacationDays recomputes the accounts following the year of
// app. Failures are logged; the application itself is already stored.
func (s *applicationService) updateRemainingVacationDays(ctx context.Context, app *model.Application) {
	if app.VacationType != model.VacationHoliday || s.accounts == nil {
		return
	}
	if err := s.accounts.UpdateRemainingVacationDays(ctx, app.StartDate.Year(), app.PersonID); err != nil {
		s.log.Warn("update remaining vacation days", zap.String("person_id", app.PersonID), zap.Error(err))
	}
}
