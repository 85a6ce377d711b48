package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/model"
	repoMocks "urlaubsverwaltung/internal/repository/mocks"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/service/mocks"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	active := &model.Person{ID: "p1", Username: "jdoe", PasswordHash: hash, Permissions: []model.Role{model.RoleUser}}
	inactive := &model.Person{ID: "p2", Username: "gone", PasswordHash: hash, Permissions: []model.Role{model.RoleInactive}}
	noPassword := &model.Person{ID: "p3", Username: "ldap", Permissions: []model.Role{model.RoleUser}}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(persons *repoMocks.MockPersonRepository, tokens *mocks.MockTokenIssuer)
		wantErr    error
	}{
		{
			name:     "success",
			username: "jdoe",
			password: "secret",
			setupMocks: func(persons *repoMocks.MockPersonRepository, tokens *mocks.MockTokenIssuer) {
				persons.On("FindByUsername", ctx, "jdoe").Return(active, nil)
				tokens.On("Issue", active).Return(&auth.Token{AccessToken: "t", TokenType: "Bearer"}, nil)
			},
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "secret",
			setupMocks: func(persons *repoMocks.MockPersonRepository, tokens *mocks.MockTokenIssuer) {
				persons.On("FindByUsername", ctx, "nobody").Return(nil, sql.ErrNoRows)
			},
			wantErr: service.ErrBadCredentials,
		},
		{
			name:     "wrong password",
			username: "jdoe",
			password: "guess",
			setupMocks: func(persons *repoMocks.MockPersonRepository, tokens *mocks.MockTokenIssuer) {
				persons.On("FindByUsername", ctx, "jdoe").Return(active, nil)
			},
			wantErr: service.ErrBadCredentials,
		},
		{
			name:     "no local password",
			username: "ldap",
			password: "",
			setupMocks: func(persons *repoMocks.MockPersonRepository, tokens *mocks.MockTokenIssuer) {
				persons.On("FindByUsername", ctx, "ldap").Return(noPassword, nil)
			},
			wantErr: service.ErrBadCredentials,
		},
		{
			name:     "inactive person",
			username: "gone",
			password: "secret",
			setupMocks: func(persons *repoMocks.MockPersonRepository, tokens *mocks.MockTokenIssuer) {
				persons.On("FindByUsername", ctx, "gone").Return(inactive, nil)
			},
			wantErr: service.ErrDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persons := new(repoMocks.MockPersonRepository)
			tokens := new(mocks.MockTokenIssuer)
			tt.setupMocks(persons, tokens)
			svc := service.NewAuthService(persons, tokens, auth.NewInMemoryTokenBlacklist(), nil)

			token, err := svc.Login(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				tokens.AssertNotCalled(t, "Issue", active)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "t", token.AccessToken)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes until expiry", func(t *testing.T) {
		tokens := new(mocks.MockTokenIssuer)
		blacklist := auth.NewInMemoryTokenBlacklist()
		claims := &auth.Claims{}
		claims.ID = "jti-1"
		tokens.On("RemainingTTL", claims).Return(time.Hour)
		svc := service.NewAuthService(new(repoMocks.MockPersonRepository), tokens, blacklist, nil)

		require.NoError(t, svc.Logout(ctx, claims))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		tokens := new(mocks.MockTokenIssuer)
		blacklist := auth.NewInMemoryTokenBlacklist()
		claims := &auth.Claims{}
		claims.ID = "jti-2"
		tokens.On("RemainingTTL", claims).Return(time.Duration(0))
		svc := service.NewAuthService(new(repoMocks.MockPersonRepository), tokens, blacklist, nil)

		require.NoError(t, svc.Logout(ctx, claims))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("claims without id", func(t *testing.T) {
		svc := service.NewAuthService(nil, nil, nil, nil)

		assert.ErrorIs(t, svc.Logout(ctx, &auth.Claims{}), auth.ErrInvalidClaims)
		assert.ErrorIs(t, svc.Logout(ctx, nil), auth.ErrInvalidClaims)
	})
}
