package middleware

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/tenancy"
)

// TenantHandler is a route handler that runs only for a validated tenant.
// The RequestContext is passed explicitly and is never stored in locals.
type TenantHandler func(c *fiber.Ctx, rc tenancy.RequestContext) error

// ErrorWriter renders an error response.
type ErrorWriter func(c *fiber.Ctx, err error) error

// RequireTenant resolves the tenant of the request with r and calls h.
// Extraction or validation failures are written with onError and h never runs.
func RequireTenant(r *tenancy.Resolver, onError ErrorWriter, h TenantHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, err := r.Resolve(c.UserContext(), fiberRequest{c})
		if err != nil {
			return onError(c, err)
		}
		return h(c, rc)
	}
}

// fiberRequest adapts a Fiber request to tenancy.Request.
type fiberRequest struct {
	c *fiber.Ctx
}

func (r fiberRequest) Header(name string) string {
	return r.c.Get(name)
}
