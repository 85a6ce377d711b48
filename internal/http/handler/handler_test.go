package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/service"
	serviceMocks "urlaubsverwaltung/internal/service/mocks"
	"urlaubsverwaltung/internal/validation"
)

var (
	employee = &model.Person{ID: "p1", Username: "jdoe", Permissions: []model.Role{model.RoleUser}}
	office   = &model.Person{ID: "office", Username: "office", Permissions: []model.Role{model.RoleUser, model.RoleOffice}}
	boss     = &model.Person{ID: "boss", Username: "boss", Permissions: []model.Role{model.RoleUser, model.RoleBoss}}
)

// newTestApp returns an app with the global error handler and p signed in.
func newTestApp(p *model.Person) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(middleware.RequestID(nil))
	app.Use(func(c *fiber.Ctx) error {
		if p != nil {
			c.Locals(middleware.PersonLocalKey, p)
		}
		return c.Next()
	})
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessCheck())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteServiceError(t *testing.T) {
	verrs := &validation.Errors{}
	verrs.RejectValue("start_date", validation.ErrorMandatory)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: verrs, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "not found", err: fmt.Errorf("load: %w", service.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "access denied", err: service.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "invalid state", err: service.ErrInvalidState, wantStatus: http.StatusConflict, wantCode: "INVALID_STATE"},
		{name: "remind twice", err: service.ErrRemindAlreadySent, wantStatus: http.StatusConflict, wantCode: "REMIND_ALREADY_SENT"},
		{name: "remind too early", err: service.ErrImpatientRemind, wantStatus: http.StatusConflict, wantCode: "REMIND_TOO_EARLY"},
		{name: "bad credentials", err: service.ErrBadCredentials, wantStatus: http.StatusUnauthorized, wantCode: "BAD_CREDENTIALS"},
		{name: "invalid period", err: period.ErrInvalidPeriod, wantStatus: http.StatusBadRequest, wantCode: "INVALID_PERIOD"},
		{name: "period too long", err: service.ErrPeriodTooLong, wantStatus: http.StatusBadRequest, wantCode: "INVALID_PERIOD"},
		{name: "no working time", err: model.ErrNoValidWorkingTime, wantStatus: http.StatusBadRequest, wantCode: "NO_WORKING_TIME"},
		{name: "content type", err: service.ErrUnsupportedContentType, wantStatus: http.StatusUnsupportedMediaType, wantCode: "UNSUPPORTED_CONTENT_TYPE"},
		{name: "fiber error", err: fiber.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(nil)
			app.Get("/", func(c *fiber.Ctx) error { return writeServiceError(c, tt.err) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "rid-1")
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, "rid-1", body.RequestID)
			assert.NotContains(t, body.Error.Message, "boom")
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp(nil)
	app.Get("/forbidden", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "insufficient permissions") })
	app.Get("/denied", func(c *fiber.Ctx) error { return service.ErrAccessDenied })

	t.Run("unknown route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("fiber error keeps its message", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/forbidden", nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "insufficient permissions", decodeError(t, resp).Error.Message)
	})

	t.Run("service error returned by a handler", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/denied", nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setupMocks func(m *serviceMocks.MockAuthService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: loginRequest{Username: "jdoe", Password: "secret"},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "jdoe", "secret").Return(&auth.Token{AccessToken: "tok", TokenType: "Bearer"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       map[string]string{"username": "jdoe"},
			setupMocks: func(m *serviceMocks.MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name: "bad credentials",
			body: loginRequest{Username: "jdoe", Password: "wrong"},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "jdoe", "wrong").Return(nil, service.ErrBadCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "BAD_CREDENTIALS",
		},
		{
			name: "disabled",
			body: loginRequest{Username: "gone", Password: "secret"},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "gone", "secret").Return(nil, service.ErrDisabled)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "ACCOUNT_DISABLED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(serviceMocks.MockAuthService)
			tt.setupMocks(m)

			app := newTestApp(nil)
			app.Post("/api/auth/login", Login(m))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var tok auth.Token
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
				assert.Equal(t, "tok", tok.AccessToken)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestListPersons(t *testing.T) {
	mockSvc := new(serviceMocks.MockPersonService)
	app := newTestApp(office)
	app.Get("/api/persons", ListPersons(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.PersonListResult{Items: []model.Person{*employee}, Total: 1}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expected, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/persons?limit=10&offset=0", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.PersonListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("limit is capped", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, maxLimit, 0).Return(&service.PersonListResult{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/persons?limit=1000", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/persons?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, defaultLimit, 0).Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/persons", nil))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetPerson(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMocks func(p *serviceMocks.MockPersonService, d *serviceMocks.MockDepartmentService)
		wantStatus int
	}{
		{
			name: "allowed",
			id:   "p1",
			setupMocks: func(p *serviceMocks.MockPersonService, d *serviceMocks.MockDepartmentService) {
				p.On("GetPersonByID", mock.Anything, "p1").Return(employee, nil)
				d.On("IsSignedInUserAllowedToAccessPersonData", mock.Anything, boss, employee).Return(true, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not allowed",
			id:   "p1",
			setupMocks: func(p *serviceMocks.MockPersonService, d *serviceMocks.MockDepartmentService) {
				p.On("GetPersonByID", mock.Anything, "p1").Return(employee, nil)
				d.On("IsSignedInUserAllowedToAccessPersonData", mock.Anything, boss, employee).Return(false, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "unknown",
			id:   "ghost",
			setupMocks: func(p *serviceMocks.MockPersonService, d *serviceMocks.MockDepartmentService) {
				p.On("GetPersonByID", mock.Anything, "ghost").Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persons := new(serviceMocks.MockPersonService)
			departments := new(serviceMocks.MockDepartmentService)
			tt.setupMocks(persons, departments)

			app := newTestApp(boss)
			app.Get("/api/persons/:id", GetPerson(persons, departments))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/persons/"+tt.id, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			persons.AssertExpectations(t)
			departments.AssertExpectations(t)
		})
	}
}
