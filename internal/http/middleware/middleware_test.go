package middleware

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository/mocks"
	"crmapi/internal/tenancy"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFrom(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace oversized request id", func(t *testing.T) {
		long := strings.Repeat("a", maxRequestIDLen+1)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, long)

		resp, _ := app.Test(req)

		rid := resp.Header.Get(RequestIDHeader)
		assert.NotEqual(t, long, rid)
		assert.Len(t, rid, 36)
	})
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, validRequestID("abc-123"))
	assert.False(t, validRequestID(""))
	assert.False(t, validRequestID("has space"))
	assert.False(t, validRequestID("tab\there"))
}

func TestLogger(t *testing.T) {
	newApp := func() (*fiber.App, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		app := fiber.New()
		app.Use(RequestID())
		app.Use(Logger(zap.New(core)))
		return app, logs
	}

	t.Run("logs request fields at info", func(t *testing.T) {
		app, logs := newApp()
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusAccepted)
		})

		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)

		fields := entry.ContextMap()
		assert.NotEmpty(t, fields["request_id"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/test", fields["path"])
		assert.Equal(t, int64(fiber.StatusAccepted), fields["status"])
		assert.Contains(t, fields, "latency")
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		app, logs := newApp()
		app.Get("/bad", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusBadRequest, "bad")
		})

		resp, _ := app.Test(httptest.NewRequest("GET", "/bad", nil))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("server errors log at error with the cause", func(t *testing.T) {
		app, logs := newApp()
		app.Get("/boom", func(c *fiber.Ctx) error {
			return errors.New("connection reset")
		})

		resp, _ := app.Test(httptest.NewRequest("GET", "/boom", nil))
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "connection reset", entry.ContextMap()["error"])
	})
}

func writeKind(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).SendString(errs.Kind(err))
}

func TestRequireTenant(t *testing.T) {
	newApp := func(repo *mocks.MockTenantRepository) *fiber.App {
		v, _ := tenancy.NewValidator(repo, nil)
		r := tenancy.NewResolver(tenancy.NewHeaderExtractor("X-Tenant-ID"), v)

		app := fiber.New()
		app.Get("/test", RequireTenant(r, writeKind, func(c *fiber.Ctx, rc tenancy.RequestContext) error {
			return c.SendString(rc.Tenant().CompanyName)
		}))
		return app
	}

	t.Run("passes the resolved tenant to the handler", func(t *testing.T) {
		repo := new(mocks.MockTenantRepository)
		repo.On("FindByID", mock.Anything, model.TenantID(5)).
			Return(&model.Tenant{ID: 5, CompanyName: "Globex", IsActive: true}, nil)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Tenant-ID", "5")
		resp, _ := newApp(repo).Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, "Globex", buf.String())
	})

	t.Run("rejects before the handler runs", func(t *testing.T) {
		cases := []struct {
			name   string
			header string
			setup  func(*mocks.MockTenantRepository)
			kind   string
		}{
			{"missing", "", nil, "MISSING_IDENTIFIER"},
			{"malformed", "abc", nil, "MALFORMED_IDENTIFIER"},
			{"unknown", "9", func(r *mocks.MockTenantRepository) {
				r.On("FindByID", mock.Anything, model.TenantID(9)).Return(nil, errs.ErrNotFound)
			}, "TENANT_NOT_FOUND"},
			{"inactive", "4", func(r *mocks.MockTenantRepository) {
				r.On("FindByID", mock.Anything, model.TenantID(4)).Return(&model.Tenant{ID: 4}, nil)
			}, "TENANT_INACTIVE"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := new(mocks.MockTenantRepository)
				if tc.setup != nil {
					tc.setup(repo)
				}

				req := httptest.NewRequest("GET", "/test", nil)
				if tc.header != "" {
					req.Header.Set("X-Tenant-ID", tc.header)
				}
				resp, _ := newApp(repo).Test(req)

				assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
				buf := new(bytes.Buffer)
				buf.ReadFrom(resp.Body)
				assert.Equal(t, tc.kind, buf.String())
			})
		}
	})
}

func TestFiberRequest_Header(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(fiberRequest{c}.Header("x-tenant-id"))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Tenant-ID", "12")
	resp, _ := app.Test(req)

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	assert.Equal(t, "12", buf.String())
}
