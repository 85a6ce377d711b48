package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/event"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	repoMocks "urlaubsverwaltung/internal/repository/mocks"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/service/mocks"
	"urlaubsverwaltung/internal/validation"
)

type sickNoteFixture struct {
	repo        *repoMocks.MockSickNoteRepository
	comments    *repoMocks.MockSickNoteCommentRepository
	apps        *repoMocks.MockApplicationRepository
	appComments *repoMocks.MockApplicationCommentRepository
	persons     *mocks.MockPersonService
	accounts    *mocks.MockAccountService
	validator   *mocks.MockSickNoteValidator
	settings    *mocks.MockSettingsService
	events      *recorder
	svc         service.SickNoteService
}

func newSickNoteFixture(t *testing.T) *sickNoteFixture {
	freezeTime(t)
	f := &sickNoteFixture{
		repo:        new(repoMocks.MockSickNoteRepository),
		comments:    new(repoMocks.MockSickNoteCommentRepository),
		apps:        new(repoMocks.MockApplicationRepository),
		appComments: new(repoMocks.MockApplicationCommentRepository),
		persons:     new(mocks.MockPersonService),
		accounts:    new(mocks.MockAccountService),
		validator:   new(mocks.MockSickNoteValidator),
		settings:    new(mocks.MockSettingsService),
		events:      &recorder{},
	}
	f.svc = service.NewSickNoteService(service.SickNoteDeps{
		Repo:                f.repo,
		Comments:            f.comments,
		Applications:        f.apps,
		ApplicationComments: f.appComments,
		Persons:             f.persons,
		Accounts:            f.accounts,
		Validator:           f.validator,
		Settings:            f.settings,
		Events:              f.events,
	})
	return f
}

func activeSickNote() *model.SickNote {
	return &model.SickNote{
		ID:        "s1",
		PersonID:  "p1",
		Type:      model.SickNoteTypeSick,
		StartDate: period.Date(2024, time.June, 3),
		EndDate:   period.Date(2024, time.June, 5),
		DayLength: model.DayLengthFull,
		Status:    model.SickNoteActive,
	}
}

func TestSickNoteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("office creates an active sick note", func(t *testing.T) {
		f := newSickNoteFixture(t)
		sn := activeSickNote()
		sn.Status = ""
		f.persons.On("GetPersonByID", ctx, "p1").Return(employee, nil)
		f.validator.On("Validate", ctx, sn, "").Return(&validation.Errors{}, nil)
		f.repo.On("Create", ctx, mock.MatchedBy(func(s *model.SickNote) bool {
			return s.Status == model.SickNoteActive && s.ApplierID == "office"
		})).Return(sn, nil)
		f.comments.On("Create", ctx, mock.MatchedBy(func(c *model.SickNoteComment) bool {
			return c.Action == model.SickNoteActionCreated
		})).Return(&model.SickNoteComment{}, nil)

		got, err := f.svc.Create(ctx, sn, office, "")

		require.NoError(t, err)
		assert.Equal(t, model.SickNoteActive, got.Status)
		assert.Equal(t, []event.Type{event.SickNoteCreated}, f.events.types())
	})

	t.Run("only office may create", func(t *testing.T) {
		f := newSickNoteFixture(t)

		_, err := f.svc.Create(ctx, activeSickNote(), boss, "")

		assert.ErrorIs(t, err, service.ErrAccessDenied)
	})
}

func TestSickNoteService_Update_Inactive(t *testing.T) {
	ctx := context.Background()
	f := newSickNoteFixture(t)
	existing := activeSickNote()
	existing.Status = model.SickNoteCancelled
	f.repo.On("FindByID", ctx, "s1").Return(existing, nil)

	_, err := f.svc.Update(ctx, activeSickNote(), office, "")

	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestSickNoteService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newSickNoteFixture(t)
	sn := activeSickNote()
	f.repo.On("FindByID", ctx, "s1").Return(sn, nil)
	f.repo.On("Update", ctx, sn).Return(sn, nil)
	f.comments.On("Create", ctx, mock.Anything).Return(&model.SickNoteComment{}, nil)

	got, err := f.svc.Cancel(ctx, "s1", office, "")

	require.NoError(t, err)
	assert.Equal(t, model.SickNoteCancelled, got.Status)
	assert.Equal(t, []event.Type{event.SickNoteCancelled}, f.events.types())
}

func TestSickNoteService_ConvertToVacation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an allowed application", func(t *testing.T) {
		f := newSickNoteFixture(t)
		sn := activeSickNote()
		f.repo.On("FindByID", ctx, "s1").Return(sn, nil)
		f.apps.On("Create", ctx, mock.MatchedBy(func(a *model.Application) bool {
			return a.Status == model.StatusAllowed && a.PersonID == "p1" &&
				a.StartDate.Equal(sn.StartDate) && a.EndDate.Equal(sn.EndDate) && a.BossID == "office"
		})).Return(&model.Application{ID: "a1", PersonID: "p1", StartDate: sn.StartDate, Status: model.StatusAllowed}, nil)
		f.appComments.On("Create", ctx, mock.MatchedBy(func(c *model.ApplicationComment) bool {
			return c.Action == model.ActionConverted && c.ApplicationID == "a1"
		})).Return(&model.ApplicationComment{}, nil)
		f.repo.On("Update", ctx, mock.MatchedBy(func(s *model.SickNote) bool {
			return s.Status == model.SickNoteConvertedToVacation
		})).Return(sn, nil)
		f.comments.On("Create", ctx, mock.Anything).Return(&model.SickNoteComment{}, nil)
		f.accounts.On("UpdateRemainingVacationDays", ctx, 2024, "p1").Return(nil)

		app, err := f.svc.ConvertToVacation(ctx, "s1", model.VacationHoliday, "doctor said ok", office)

		require.NoError(t, err)
		assert.Equal(t, "a1", app.ID)
		assert.Equal(t, []event.Type{event.SickNoteConverted}, f.events.types())
		f.accounts.AssertExpectations(t)
	})

	t.Run("reason is mandatory", func(t *testing.T) {
		f := newSickNoteFixture(t)

		_, err := f.svc.ConvertToVacation(ctx, "s1", model.VacationHoliday, "", office)

		var verr *validation.Errors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.HasFieldError("reason", validation.ErrorMandatory))
	})
}

func TestSickNoteService_EndOfSickPay(t *testing.T) {
	ctx := context.Background()
	f := newSickNoteFixture(t)

	s := model.DefaultSettings() // 42 days of sick pay, notify 7 days before
	f.settings.On("GetSettings", ctx).Return(&s, nil)

	// last day of sick pay = start + 41, notify from last day - 7 on
	startedOnOrBefore := testToday.AddDate(0, 0, 7-41)
	sn := model.SickNote{ID: "s1", PersonID: "p1", StartDate: startedOnOrBefore, Status: model.SickNoteActive}
	f.repo.On("FindByMinimumLengthAndStartedBefore", ctx, 41, startedOnOrBefore).Return([]model.SickNote{sn}, nil)
	f.persons.On("GetActivePersonsWithNotificationType", ctx, model.NotificationOffice).
		Return([]model.Person{{ID: "office"}}, nil)
	f.repo.On("Update", ctx, mock.MatchedBy(func(s *model.SickNote) bool {
		return s.ID == "s1" && s.EndOfSickPayNotificationSend != nil
	})).Return(&sn, nil)

	n, err := f.svc.SendEndOfSickPayNotification(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, f.events.events, 1)
	e := f.events.events[0]
	assert.Equal(t, event.SickNoteEndOfSickPay, e.Type)
	assert.Equal(t, []string{"p1", "office"}, e.Recipients)
	payload := e.Payload.(service.EndOfSickPay)
	assert.True(t, payload.LastDayOfSickPay.Equal(startedOnOrBefore.AddDate(0, 0, 41)))
	assert.Equal(t, 42, payload.MaximumSickPayDays)
}
