package middleware

import (
	"context"
	"database/sql"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/config"
	"urlaubsverwaltung/internal/model"
)

type personsStub map[string]*model.Person

func (s personsStub) GetPersonByID(_ context.Context, id string) (*model.Person, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func TestAuthenticate(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(config.JWTConfig{Secret: "s3cr3t", Issuer: "test", AccessTTL: time.Hour})
	require.NoError(t, err)

	active := &model.Person{ID: "p1", Username: "jdoe", Permissions: []model.Role{model.RoleUser}}
	inactive := &model.Person{ID: "p2", Username: "gone", Permissions: []model.Role{model.RoleInactive}}
	persons := personsStub{"p1": active, "p2": inactive}

	issue := func(p *model.Person) string {
		tok, err := jwtSvc.Issue(p)
		require.NoError(t, err)
		return tok.AccessToken
	}

	revokedToken := issue(active)
	revokedClaims, err := jwtSvc.Verify(revokedToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.Add(context.Background(), revokedClaims.ID, time.Hour))

	app := fiber.New()
	app.Use(Authenticate(jwtSvc, blacklist, persons))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(CurrentPerson(c).ID + "|" + CurrentClaims(c).Username)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + issue(active), wantStatus: fiber.StatusOK, wantBody: "p1|jdoe"},
		{name: "missing header", header: "", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: fiber.StatusUnauthorized},
		{name: "revoked token", header: "Bearer " + revokedToken, wantStatus: fiber.StatusUnauthorized},
		{name: "unknown person", header: "Bearer " + issue(&model.Person{ID: "ghost", Username: "ghost"}), wantStatus: fiber.StatusUnauthorized},
		{name: "inactive person", header: "Bearer " + issue(inactive), wantStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		person     *model.Person
		wantStatus int
	}{
		{name: "office passes", person: &model.Person{Permissions: []model.Role{model.RoleUser, model.RoleOffice}}, wantStatus: fiber.StatusOK},
		{name: "boss passes", person: &model.Person{Permissions: []model.Role{model.RoleBoss}}, wantStatus: fiber.StatusOK},
		{name: "user is forbidden", person: &model.Person{Permissions: []model.Role{model.RoleUser}}, wantStatus: fiber.StatusForbidden},
		{name: "anonymous is unauthorized", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				if tt.person != nil {
					c.Locals(PersonLocalKey, tt.person)
				}
				return c.Next()
			})
			app.Get("/admin", RequireRole(model.RoleOffice, model.RoleBoss), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
