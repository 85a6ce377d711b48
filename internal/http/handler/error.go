package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"urlaubsverwaltung/internal/auth"
	"urlaubsverwaltung/internal/http/middleware"
	"urlaubsverwaltung/internal/logger"
	"urlaubsverwaltung/internal/model"
	"urlaubsverwaltung/internal/period"
	"urlaubsverwaltung/internal/service"
	"urlaubsverwaltung/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorDetails(c, status, code, message, nil)
}

func writeErrorDetails(c *fiber.Ctx, status int, code, message string, details any) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates an error returned by a service into a response.
// Unknown errors are logged and answered with 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return writeErrorDetails(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "validation failed", verrs)
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return writeFiberError(c, ferr)
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrAccessDenied):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "access denied")
	case errors.Is(err, service.ErrInvalidState):
		return writeError(c, fiber.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, service.ErrRemindAlreadySent):
		return writeError(c, fiber.StatusConflict, "REMIND_ALREADY_SENT", err.Error())
	case errors.Is(err, service.ErrImpatientRemind):
		return writeError(c, fiber.StatusConflict, "REMIND_TOO_EARLY", err.Error())
	case errors.Is(err, service.ErrBadCredentials):
		return writeError(c, fiber.StatusUnauthorized, "BAD_CREDENTIALS", "bad credentials")
	case errors.Is(err, service.ErrDisabled):
		return writeError(c, fiber.StatusForbidden, "ACCOUNT_DISABLED", "account is disabled")
	case errors.Is(err, auth.ErrInvalidClaims):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
	case errors.Is(err, period.ErrInvalidPeriod), errors.Is(err, service.ErrPeriodTooLong):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PERIOD", err.Error())
	case errors.Is(err, service.ErrSecretRequired):
		return writeError(c, fiber.StatusBadRequest, "SECRET_REQUIRED", err.Error())
	case errors.Is(err, model.ErrNoValidWorkingTime):
		return writeError(c, fiber.StatusBadRequest, "NO_WORKING_TIME", err.Error())
	case errors.Is(err, service.ErrUnsupportedContentType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_CONTENT_TYPE", err.Error())
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}

	logger.FromContext(c.UserContext()).Error("request failed",
		zap.String("path", c.Path()), zap.Error(err))
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func writeFiberError(c *fiber.Ctx, e *fiber.Error) error {
	switch e.Code {
	case fiber.StatusBadRequest:
		return writeError(c, e.Code, "BAD_REQUEST", "bad request")
	case fiber.StatusUnauthorized:
		return writeError(c, e.Code, "UNAUTHORIZED", e.Message)
	case fiber.StatusForbidden:
		return writeError(c, e.Code, "FORBIDDEN", e.Message)
	case fiber.StatusNotFound:
		return writeError(c, e.Code, "NOT_FOUND", "resource not found")
	case fiber.StatusMethodNotAllowed:
		return writeError(c, e.Code, "METHOD_NOT_ALLOWED", "method not allowed")
	case fiber.StatusRequestEntityTooLarge:
		return writeError(c, e.Code, "PAYLOAD_TOO_LARGE", "request body too large")
	case fiber.StatusServiceUnavailable:
		return writeError(c, e.Code, "SERVICE_UNAVAILABLE", e.Message)
	default:
		return writeError(c, e.Code, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return writeFiberError(c, ferr)
		}
		log.Error("unhandled error", zap.String("request_id", requestIDFromCtx(c)), zap.Error(err))
		return writeServiceError(c, err)
	}
}
