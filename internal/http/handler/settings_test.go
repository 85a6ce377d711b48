package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/model"
	serviceMocks "urlaubsverwaltung/internal/service/mocks"
)

func TestSaveSettings(t *testing.T) {
	restricted := model.DefaultSettings()
	restricted.CalendarSettings.RestrictCompanyCalendar = true
	open := model.DefaultSettings()

	tests := []struct {
		name       string
		body       model.Settings
		setupMocks func(s *serviceMocks.MockSettingsService, c *serviceMocks.MockCalendarService)
		wantStatus int
	}{
		{
			name: "restricting removes company calendars",
			body: restricted,
			setupMocks: func(s *serviceMocks.MockSettingsService, c *serviceMocks.MockCalendarService) {
				s.On("Save", mock.Anything, mock.Anything).Return(&restricted, nil)
				c.On("RestrictCompanyCalendars", mock.Anything, &restricted).Return(3, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unrestricted settings",
			body: open,
			setupMocks: func(s *serviceMocks.MockSettingsService, c *serviceMocks.MockCalendarService) {
				s.On("Save", mock.Anything, mock.Anything).Return(&open, nil)
				c.On("RestrictCompanyCalendars", mock.Anything, &open).Return(0, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "calendar cleanup fails",
			body: restricted,
			setupMocks: func(s *serviceMocks.MockSettingsService, c *serviceMocks.MockCalendarService) {
				s.On("Save", mock.Anything, mock.Anything).Return(&restricted, nil)
				c.On("RestrictCompanyCalendars", mock.Anything, &restricted).Return(0, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := new(serviceMocks.MockSettingsService)
			calendars := new(serviceMocks.MockCalendarService)
			tt.setupMocks(settings, calendars)

			app := newTestApp(office)
			app.Put("/api/settings", SaveSettings(settings, calendars))

			resp, err := app.Test(jsonRequest(http.MethodPut, "/api/settings", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			settings.AssertExpectations(t)
			calendars.AssertExpectations(t)
		})
	}
}
