package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

func listUsers(svc service.UserService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		roleID, err := queryInt64(c, "role_id")
		if err != nil {
			return fail(c, err)
		}
		includeInactive, err := strconv.ParseBool(c.Query("include_inactive", "false"))
		if err != nil {
			return fail(c, badRequest("INVALID_QUERY", "invalid include_inactive"))
		}
		users, err := svc.List(c.UserContext(), rc, roleID, includeInactive)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"data": users})
	}
}

func getUser(svc service.UserService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		u, err := svc.Get(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(u)
	}
}
