package handler

import (
	"github.com/gofiber/fiber/v2"

	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/service"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges username and password for an access token.
//
// @Summary Log in
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   body body loginRequest true "credentials"
// @Success 200 {object} auth.Token
// @Failure 401 {object} errorPayload
// @Router  /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		tok, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tok)
	}
}

// Logout revokes the token of the request.
//
// @Summary Log out
// @Tags    auth
// @Security BearerAuth
// @Success 204
// @Router  /api/auth/logout [post]
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Logout(c.UserContext(), middleware.CurrentClaims(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the signed in person.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := middleware.CurrentPerson(c)
		if p == nil {
			return fiber.ErrUnauthorized
		}
		return c.JSON(p)
	}
}
