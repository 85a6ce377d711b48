package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/service"
	serviceMocks "urlaubsverwaltung/internal/service/mocks"
	"urlaubsverwaltung/internal/validation"
)

func TestApply(t *testing.T) {
	valid := map[string]any{
		"start_date":    "2024-06-17",
		"end_date":      "2024-06-21",
		"vacation_type": "HOLIDAY",
		"day_length":    "FULL",
		"comment":       "summer",
	}

	tests := []struct {
		name       string
		body       map[string]any
		setupMocks func(m *serviceMocks.MockApplicationService)
		wantStatus int
		wantField  string
	}{
		{
			name: "applies for the signed in person",
			body: valid,
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Apply", mock.Anything, mock.MatchedBy(func(a *model.Application) bool {
					return a.PersonID == "p1" &&
						a.StartDate.Equal(period.Date(2024, time.June, 17)) &&
						a.EndDate.Equal(period.Date(2024, time.June, 21)) &&
						a.VacationType == model.VacationHoliday
				}), employee, "summer").Return(&model.Application{ID: "a1", PersonID: "p1", Status: model.StatusWaiting}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "start date is mandatory",
			body:       map[string]any{"end_date": "2024-06-21", "vacation_type": "HOLIDAY", "day_length": "FULL"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "start_date",
		},
		{
			name: "malformed date",
			body: map[string]any{"start_date": "17.06.2024", "end_date": "2024-06-21",
				"vacation_type": "HOLIDAY", "day_length": "FULL"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {},
			wantStatus: http.StatusBadRequest,
			wantField:  "start_date",
		},
		{
			name: "business rule violation",
			body: valid,
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				errs := &validation.Errors{}
				errs.Reject("application.error.overlap")
				m.On("Apply", mock.Anything, mock.Anything, employee, "summer").Return(nil, errs)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "applying for someone else",
			body: map[string]any{"person_id": "boss", "start_date": "2024-06-17", "end_date": "2024-06-21",
				"vacation_type": "HOLIDAY", "day_length": "FULL"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Apply", mock.Anything, mock.MatchedBy(func(a *model.Application) bool { return a.PersonID == "boss" }),
					employee, "").Return(nil, service.ErrAccessDenied)
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(serviceMocks.MockApplicationService)
			tt.setupMocks(m)

			app := newTestApp(employee)
			app.Post("/api/applications", Apply(m))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/applications", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantField != "" {
				var body struct {
					Error struct {
						Code    string            `json:"code"`
						Details validation.Errors `json:"details"`
					} `json:"error"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
				assert.True(t, body.Error.Details.HasFieldError(tt.wantField, ""))
			}
			m.AssertExpectations(t)
		})
	}
}

func TestApplicationActions(t *testing.T) {
	allowed := &model.Application{ID: "a1", PersonID: "p1", Status: model.StatusAllowed}

	tests := []struct {
		name       string
		target     string
		body       any
		setupMocks func(m *serviceMocks.MockApplicationService)
		wantStatus int
	}{
		{
			name:   "allow with comment",
			target: "/api/applications/a1/allow",
			body:   commentRequest{Comment: "enjoy"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Allow", mock.Anything, "a1", boss, "enjoy").Return(allowed, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "allow without body",
			target: "/api/applications/a1/allow",
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Allow", mock.Anything, "a1", boss, "").Return(allowed, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "reject in wrong state",
			target: "/api/applications/a1/reject",
			body:   commentRequest{Comment: "no"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Reject", mock.Anything, "a1", boss, "no").Return(nil, service.ErrInvalidState)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "cancel",
			target: "/api/applications/a1/cancel",
			body:   commentRequest{Comment: "plans changed"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Cancel", mock.Anything, "a1", boss, "plans changed").
					Return(&model.Application{ID: "a1", Status: model.StatusCancelled}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "refer",
			target: "/api/applications/a1/refer",
			body:   referRequest{RecipientID: "office"},
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Refer", mock.Anything, "a1", "office", boss).Return(allowed, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "refer needs a recipient",
			target:     "/api/applications/a1/refer",
			body:       map[string]string{},
			setupMocks: func(m *serviceMocks.MockApplicationService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(serviceMocks.MockApplicationService)
			tt.setupMocks(m)

			app := newTestApp(boss)
			app.Post("/api/applications/:id/allow", AllowApplication(m))
			app.Post("/api/applications/:id/reject", RejectApplication(m))
			app.Post("/api/applications/:id/cancel", CancelApplication(m))
			app.Post("/api/applications/:id/refer", ReferApplication(m))

			var req *http.Request
			if tt.body == nil {
				req = httptest.NewRequest(http.MethodPost, tt.target, nil)
			} else {
				req = jsonRequest(http.MethodPost, tt.target, tt.body)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			m.AssertExpectations(t)
		})
	}
}

func TestRemindApplication(t *testing.T) {
	waiting := &model.Application{ID: "a1", PersonID: "p1", Status: model.StatusWaiting}

	tests := []struct {
		name       string
		signedIn   *model.Person
		setupMocks func(m *serviceMocks.MockApplicationService)
		wantStatus int
	}{
		{
			name:     "applicant reminds",
			signedIn: employee,
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Get", mock.Anything, "a1").Return(waiting, nil)
				m.On("Remind", mock.Anything, "a1").Return(waiting, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "someone else may not remind",
			signedIn: boss,
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Get", mock.Anything, "a1").Return(waiting, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:     "already reminded today",
			signedIn: employee,
			setupMocks: func(m *serviceMocks.MockApplicationService) {
				m.On("Get", mock.Anything, "a1").Return(waiting, nil)
				m.On("Remind", mock.Anything, "a1").Return(nil, service.ErrRemindAlreadySent)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(serviceMocks.MockApplicationService)
			tt.setupMocks(m)

			app := newTestApp(tt.signedIn)
			app.Post("/api/applications/:id/remind", RemindApplication(m))

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/applications/a1/remind", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			m.AssertExpectations(t)
		})
	}
}

func TestWaitingApplications(t *testing.T) {
	m := new(serviceMocks.MockApplicationService)
	m.On("GetWaitingApplications", mock.Anything, boss).
		Return([]model.Application{{ID: "a1"}, {ID: "a2"}}, nil)

	app := newTestApp(boss)
	app.Get("/api/applications", WaitingApplications(m))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/applications", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.Application `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	m.AssertExpectations(t)
}
