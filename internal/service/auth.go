package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/repository"
)

// TokenIssuer issues access tokens for persons.
type TokenIssuer interface {
	Issue(p *model.Person) (*auth.Token, error)
	RemainingTTL(c *auth.Claims) time.Duration
}

// AuthService authenticates persons by username and password.
type AuthService interface {
	// Login returns ErrBadCredentials for unknown users and wrong passwords and
	// ErrDisabled for inactive persons.
	Login(ctx context.Context, username, password string) (*auth.Token, error)

	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	persons   repository.PersonRepository
	tokens    TokenIssuer
	blacklist auth.TokenBlacklist
	log       *zap.Logger
}

func NewAuthService(persons repository.PersonRepository, tokens TokenIssuer, blacklist auth.TokenBlacklist, log *zap.Logger) AuthService {
	return &authService{persons: persons, tokens: tokens, blacklist: blacklist, log: orNop(log)}
}

func (s *authService) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	p, err := s.persons.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if p.PasswordHash == "" || !auth.CheckPassword(p.PasswordHash, password) {
		s.log.Info("login failed", zap.String("username", username))
		return nil, ErrBadCredentials
	}
	if !p.IsActive() {
		return nil, ErrDisabled
	}
	return s.tokens.Issue(p)
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return auth.ErrInvalidClaims
	}
	ttl := s.tokens.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Add(ctx, claims.ID, ttl)
}
