package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/logger"
	"urlaubsverwaltung/internal/model"
)

const (
	ClaimsLocalKey = "claims"
	PersonLocalKey = "person"
)

// TokenVerifier parses access tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// PersonLoader loads the person a token was issued for.
type PersonLoader interface {
	GetPersonByID(ctx context.Context, id string) (*model.Person, error)
}

// Authenticate requires a valid, not revoked "Authorization: Bearer" token of
// an active person. The claims and the person are stored in the locals.
func Authenticate(verifier TokenVerifier, blacklist auth.TokenBlacklist, persons PersonLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return fiber.NewError(fiber.StatusUnauthorized, "token has expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		ctx := c.UserContext()
		revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			logger.FromContext(ctx).Error("check token blacklist", zap.Error(err))
			return fiber.NewError(fiber.StatusServiceUnavailable, "token store unavailable")
		}
		if revoked {
			return fiber.NewError(fiber.StatusUnauthorized, auth.ErrTokenBlacklisted.Error())
		}

		p, err := persons.GetPersonByID(ctx, claims.Subject)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unknown person")
		}
		if !p.IsActive() {
			return fiber.NewError(fiber.StatusForbidden, "account is disabled")
		}

		c.Locals(ClaimsLocalKey, claims)
		c.Locals(PersonLocalKey, p)
		return c.Next()
	}
}

// RequireRole lets only persons holding one of roles pass.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPerson(c)
		if p == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}
		if !p.HasAnyRole(roles...) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// CurrentPerson returns the person stored by Authenticate, or nil.
func CurrentPerson(c *fiber.Ctx) *model.Person {
	p, _ := c.Locals(PersonLocalKey).(*model.Person)
	return p
}

// CurrentClaims returns the claims stored by Authenticate, or nil.
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}
