package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"crmapi/internal/errs"
	"crmapi/internal/http/middleware"
)

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errs.ErrMissingIdentifier, http.StatusBadRequest, "MISSING_IDENTIFIER"},
		{errs.ErrMalformedIdentifier, http.StatusBadRequest, "MALFORMED_IDENTIFIER"},
		{fmt.Errorf("%w: token is expired", errs.ErrInvalidCredential), http.StatusUnauthorized, "INVALID_CREDENTIAL"},
		{errs.ErrTenantNotFound, http.StatusNotFound, "TENANT_NOT_FOUND"},
		{errs.ErrTenantInactive, http.StatusForbidden, "TENANT_INACTIVE"},
		{errs.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{errs.ErrForeignOwnershipViolation, http.StatusUnprocessableEntity, "FOREIGN_OWNERSHIP_VIOLATION"},
		{errs.OutOfRange("value", 0, 32767), http.StatusUnprocessableEntity, "VALUE_OUT_OF_RANGE"},
		{errs.Invalid("title"), http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{errs.Storage(errors.New("conn refused")), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{errors.New("nil pointer"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{badRequest("INVALID_ID", "invalid id format"), http.StatusBadRequest, "INVALID_ID"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Use(middleware.RequestID())
			app.Get("/", func(c *fiber.Ctx) error { return fail(c, tc.err) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "rid-1")
			resp, _ := app.Test(req)

			assert.Equal(t, tc.status, resp.StatusCode)
			var body errorPayload
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, "rid-1", body.RequestID)
			assert.NotContains(t, body.Error.Message, "conn refused")
		})
	}
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })
	app.Get("/kind", func(c *fiber.Ctx) error { return errs.ErrTenantInactive })
	app.Get("/raw", func(c *fiber.Ctx) error { return errors.New("secret detail") })

	t.Run("fiber error", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/fiber", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("error kind", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/kind", nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown error is logged not echoed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/raw", nil))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "internal server error", body.Error.Message)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "secret detail", logs.All()[0].ContextMap()["error"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/fiber", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
