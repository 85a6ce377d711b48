package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/event"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/repository"
	"urlaubsverwaltung/internal/validation"
)

// SickNoteValidator validates sick notes before they are stored.
type SickNoteValidator interface {
	Validate(ctx context.Context, s *model.SickNote, comment string) (*validation.Errors, error)
}

// EndOfSickPay is a sick note reaching the last day its person receives sick pay.
type EndOfSickPay struct {
	SickNote           model.SickNote `json:"sick_note"`
	LastDayOfSickPay   time.Time      `json:"last_day_of_sick_pay"`
	MaximumSickPayDays int            `json:"maximum_sick_pay_days"`
}

// SickNoteService records sick notes. Every write needs the OFFICE role.
type SickNoteService interface {
	Get(ctx context.Context, id string) (*model.SickNote, error)
	GetForPersonAndPeriod(ctx context.Context, personID string, start, end time.Time) ([]model.SickNote, error)
	GetInPeriod(ctx context.Context, start, end time.Time) ([]model.SickNote, error)
	GetComments(ctx context.Context, id string) ([]model.SickNoteComment, error)

	Create(ctx context.Context, s *model.SickNote, applier *model.Person, comment string) (*model.SickNote, error)
	Update(ctx context.Context, s *model.SickNote, editor *model.Person, comment string) (*model.SickNote, error)
	Cancel(ctx context.Context, id string, canceller *model.Person, comment string) (*model.SickNote, error)

	// ConvertToVacation replaces an active sick note with an allowed application
	// over the same period.
	ConvertToVacation(ctx context.Context, id string, vacationType model.VacationCategory, reason string, converter *model.Person) (*model.Application, error)

	// GetSickNotesReachingEndOfSickPay returns the active, not yet notified sick
	// notes lasting until the last day of sick pay, once that day is at most
	// the configured number of days ahead.
	GetSickNotesReachingEndOfSickPay(ctx context.Context) ([]model.SickNote, error)

	// SendEndOfSickPayNotification publishes one event per sick note returned
	// by GetSickNotesReachingEndOfSickPay and marks it notified.
	SendEndOfSickPayNotification(ctx context.Context) (int, error)
}

type sickNoteService struct {
	repo         repository.SickNoteRepository
	comments     repository.SickNoteCommentRepository
	applications repository.ApplicationRepository
	appComments  repository.ApplicationCommentRepository
	persons      PersonService
	accounts     AccountService
	validator    SickNoteValidator
	settings     SettingsService
	events       event.Publisher
	log          *zap.Logger
}

// SickNoteDeps groups the collaborators of the sick note service.
type SickNoteDeps struct {
	Repo                repository.SickNoteRepository
	Comments            repository.SickNoteCommentRepository
	Applications        repository.ApplicationRepository
	ApplicationComments repository.ApplicationCommentRepository
	Persons             PersonService
	Accounts            AccountService
	Validator           SickNoteValidator
	Settings            SettingsService
	Events              event.Publisher
	Log                 *zap.Logger
}

func NewSickNoteService(d SickNoteDeps) SickNoteService {
	return &sickNoteService{
		repo:         d.Repo,
		comments:     d.Comments,
		applications: d.Applications,
		appComments:  d.ApplicationComments,
		persons:      d.Persons,
		accounts:     d.Accounts,
		validator:    d.Validator,
		settings:     d.Settings,
		events:       d.Events,
		log:          orNop(d.Log),
	}
}

func (s *sickNoteService) Get(ctx context.Context, id string) (*model.SickNote, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return sn, nil
}

func (s *sickNoteService) GetForPersonAndPeriod(ctx context.Context, personID string, start, end time.Time) ([]model.SickNote, error) {
	return s.repo.FindByPersonAndPeriod(ctx, personID, start, end)
}

func (s *sickNoteService) GetInPeriod(ctx context.Context, start, end time.Time) ([]model.SickNote, error) {
	return s.repo.FindByPeriod(ctx, start, end)
}

func (s *sickNoteService) GetComments(ctx context.Context, id string) ([]model.SickNoteComment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.comments.FindBySickNote(ctx, id)
}

func (s *sickNoteService) comment(ctx context.Context, sickNoteID, personID string, action model.SickNoteCommentAction, text string) error {
	_, err := s.comments.Create(ctx, &model.SickNoteComment{
		ID:         uuid.New().String(),
		SickNoteID: sickNoteID,
		PersonID:   personID,
		Action:     action,
		Text:       text,
		Date:       now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create sick note comment: %w", err)
	}
	return nil
}

func (s *sickNoteService) validate(ctx context.Context, sn *model.SickNote, comment string) error {
	errs, err := s.validator.Validate(ctx, sn, comment)
	if err != nil {
		return err
	}
	return errs.Err()
}

func normalizeSickNote(sn *model.SickNote) {
	sn.StartDate = period.DateOf(sn.StartDate)
	sn.EndDate = period.DateOf(sn.EndDate)
	if sn.AubStartDate != nil {
		d := period.DateOf(*sn.AubStartDate)
		sn.AubStartDate = &d
	}
	if sn.AubEndDate != nil {
		d := period.DateOf(*sn.AubEndDate)
		sn.AubEndDate = &d
	}
}

func (s *sickNoteService) Create(ctx context.Context, sn *model.SickNote, applier *model.Person, comment string) (*model.SickNote, error) {
	if !applier.HasRole(model.RoleOffice) {
		return nil, ErrAccessDenied
	}
	if _, err := s.persons.GetPersonByID(ctx, sn.PersonID); err != nil {
		return nil, err
	}
	normalizeSickNote(sn)
	sn.ID = uuid.New().String()
	if err := s.validate(ctx, sn, comment); err != nil {
		return nil, err
	}

	sn.ApplierID = applier.ID
	sn.Status = model.SickNoteActive
	sn.LastEdited = now().UTC()
	sn.EndOfSickPayNotificationSend = nil
	stored, err := s.repo.Create(ctx, sn)
	if err != nil {
		return nil, err
	}
	if err := s.comment(ctx, stored.ID, applier.ID, model.SickNoteActionCreated, comment); err != nil {
		return nil, err
	}

	s.log.Info("sick note created", zap.String("sick_note_id", stored.ID), zap.String("person_id", stored.PersonID))
	publish(ctx, s.events, s.log, event.New(event.SickNoteCreated, stored, stored.PersonID))
	return stored, nil
}

func (s *sickNoteService) Update(ctx context.Context, sn *model.SickNote, editor *model.Person, comment string) (*model.SickNote, error) {
	if !editor.HasRole(model.RoleOffice) {
		return nil, ErrAccessDenied
	}
	existing, err := s.Get(ctx, sn.ID)
	if err != nil {
		return nil, err
	}
	if !existing.IsActive() {
		return nil, ErrInvalidState
	}

	normalizeSickNote(sn)
	existing.Type = sn.Type
	existing.StartDate = sn.StartDate
	existing.EndDate = sn.EndDate
	existing.DayLength = sn.DayLength
	existing.AubStartDate = sn.AubStartDate
	existing.AubEndDate = sn.AubEndDate
	if err := s.validate(ctx, existing, comment); err != nil {
		return nil, err
	}

	existing.LastEdited = now().UTC()
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if err := s.comment(ctx, updated.ID, editor.ID, model.SickNoteActionEdited, comment); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.log, event.New(event.SickNoteUpdated, updated, updated.PersonID))
	return updated, nil
}

func (s *sickNoteService) Cancel(ctx context.Context, id string, canceller *model.Person, comment string) (*model.SickNote, error) {
	if !canceller.HasRole(model.RoleOffice) {
		return nil, ErrAccessDenied
	}
	if err := validation.ValidateComment(comment, false).Err(); err != nil {
		return nil, err
	}
	sn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sn.IsActive() {
		return nil, ErrInvalidState
	}

	sn.Status = model.SickNoteCancelled
	sn.LastEdited = now().UTC()
	updated, err := s.repo.Update(ctx, sn)
	if err != nil {
		return nil, err
	}
	if err := s.comment(ctx, updated.ID, canceller.ID, model.SickNoteActionCancelled, comment); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.log, event.New(event.SickNoteCancelled, updated, updated.PersonID))
	return updated, nil
}

func (s *sickNoteService) ConvertToVacation(ctx context.Context, id string, vacationType model.VacationCategory, reason string, converter *model.Person) (*model.Application, error) {
	if !converter.HasRole(model.RoleOffice) {
		return nil, ErrAccessDenied
	}
	errs := &validation.Errors{}
	if !vacationType.Valid() {
		errs.RejectValue("vacation_type", validation.ErrorMandatory)
	}
	for _, f := range validation.ValidateComment(reason, true).Fields {
		errs.RejectValue("reason", f.Code)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	sn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sn.IsActive() {
		return nil, ErrInvalidState
	}

	day := today()
	app, err := s.applications.Create(ctx, &model.Application{
		ID:              uuid.New().String(),
		PersonID:        sn.PersonID,
		ApplierID:       converter.ID,
		BossID:          converter.ID,
		StartDate:       sn.StartDate,
		EndDate:         sn.EndDate,
		DayLength:       sn.DayLength,
		VacationType:    vacationType,
		Reason:          reason,
		Status:          model.StatusAllowed,
		ApplicationDate: &day,
		EditedDate:      &day,
	})
	if err != nil {
		return nil, fmt.Errorf("create converted application: %w", err)
	}
	if _, err := s.appComments.Create(ctx, &model.ApplicationComment{
		ID:            uuid.New().String(),
		ApplicationID: app.ID,
		PersonID:      converter.ID,
		Action:        model.ActionConverted,
		Date:          now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("create application comment: %w", err)
	}

	sn.Status = model.SickNoteConvertedToVacation
	sn.LastEdited = now().UTC()
	if _, err := s.repo.Update(ctx, sn); err != nil {
		return nil, err
	}
	if err := s.comment(ctx, sn.ID, converter.ID, model.SickNoteActionConvertedToVacation, reason); err != nil {
		return nil, err
	}

	if vacationType == model.VacationHoliday && s.accounts != nil {
		if err := s.accounts.UpdateRemainingVacationDays(ctx, app.StartDate.Year(), app.PersonID); err != nil {
			s.log.Warn("update remaining vacation days", zap.String("person_id", app.PersonID), zap.Error(err))
		}
	}

	s.log.Info("sick note converted", zap.String("sick_note_id", sn.ID), zap.String("application_id", app.ID))
	publish(ctx, s.events, s.log, event.New(event.SickNoteConverted, app, sn.PersonID))
	return app, nil
}

func (s *sickNoteService) endOfSickPaySettings(ctx context.Context) (maxDays, daysBefore int, err error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return 0, 0, err
	}
	sn := settings.SickNoteSettings
	if sn.MaximumSickPayDays == nil || sn.DaysBeforeEndOfSickPayNotification == nil {
		return 0, 0, nil
	}
	return *sn.MaximumSickPayDays, *sn.DaysBeforeEndOfSickPayNotification, nil
}

func (s *sickNoteService) GetSickNotesReachingEndOfSickPay(ctx context.Context) ([]model.SickNote, error) {
	maxDays, daysBefore, err := s.endOfSickPaySettings(ctx)
	if err != nil || maxDays <= 0 {
		return nil, err
	}
	startedOnOrBefore := today().AddDate(0, 0, daysBefore-(maxDays-1))
	return s.repo.FindByMinimumLengthAndStartedBefore(ctx, maxDays-1, startedOnOrBefore)
}

func (s *sickNoteService) SendEndOfSickPayNotification(ctx context.Context) (int, error) {
	notes, err := s.GetSickNotesReachingEndOfSickPay(ctx)
	if err != nil {
		return 0, err
	}
	maxDays, _, err := s.endOfSickPaySettings(ctx)
	if err != nil {
		return 0, err
	}

	var office []string
	if len(notes) > 0 {
		persons, err := s.persons.GetActivePersonsWithNotificationType(ctx, model.NotificationOffice)
		if err != nil {
			return 0, err
		}
		office = personIDs(persons)
	}

	sent := 0
	for i := range notes {
		sn := &notes[i]
		payload := EndOfSickPay{
			SickNote:           *sn,
			LastDayOfSickPay:   sn.StartDate.AddDate(0, 0, maxDays-1),
			MaximumSickPayDays: maxDays,
		}
		publish(ctx, s.events, s.log, event.New(event.SickNoteEndOfSickPay, payload, append([]string{sn.PersonID}, office...)...))

		notified := now().UTC()
		sn.EndOfSickPayNotificationSend = &notified
		if _, err := s.repo.Update(ctx, sn); err != nil {
			return sent, fmt.Errorf("mark sick note %s notified: %w", sn.ID, err)
		}
		sent++
	}
	return sent, nil
}
