package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crmapi/internal/errs"
	"crmapi/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

type errorMapping struct {
	status  int
	message string
}

var kindMappings = map[string]errorMapping{
	"MISSING_IDENTIFIER":          {fiber.StatusBadRequest, "tenant identifier is required"},
	"MALFORMED_IDENTIFIER":        {fiber.StatusBadRequest, "tenant identifier is malformed"},
	"INVALID_CREDENTIAL":          {fiber.StatusUnauthorized, "invalid credential"},
	"TENANT_NOT_FOUND":            {fiber.StatusNotFound, "tenant not found"},
	"TENANT_INACTIVE":             {fiber.StatusForbidden, "tenant is inactive"},
	"NOT_FOUND":                   {fiber.StatusNotFound, "resource not found"},
	"FOREIGN_OWNERSHIP_VIOLATION": {fiber.StatusUnprocessableEntity, "referenced record does not exist"},
	"VALUE_OUT_OF_RANGE":          {fiber.StatusUnprocessableEntity, "value out of range"},
	"INVALID_INPUT":               {fiber.StatusUnprocessableEntity, "invalid input"},
	"STORAGE_UNAVAILABLE":         {fiber.StatusServiceUnavailable, "dependency unavailable"},
}

// respondError maps an error from the tenancy or service layer onto a status
// and safe message. The cause is kept in locals for the request log.
func respondError(c *fiber.Ctx, err error) error {
	c.Locals(middleware.ErrorLocalKey, err)

	code := errs.Kind(err)
	m, ok := kindMappings[code]
	if !ok {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return writeError(c, m.status, code, m.message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		e, ok := err.(*fiber.Error)
		if !ok {
			if errs.Kind(err) != "INTERNAL_ERROR" {
				return respondError(c, err)
			}
			log.Error("unhandled error",
				zap.String("request_id", middleware.RequestIDFrom(c)),
				zap.String("path", c.Path()),
				zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		switch e.Code {
		case fiber.StatusBadRequest:
			return writeError(c, e.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, e.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, e.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, e.Code, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
