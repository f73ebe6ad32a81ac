package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

func clientInteractions(svc service.InteractionService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		f := model.InteractionFilter{Type: c.Query("interaction_type")}
		if f.CreatedBy, err = queryInt64(c, "created_by"); err != nil {
			return fail(c, err)
		}
		out, err := svc.ForClient(c.UserContext(), rc, id, f)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"data": out})
	}
}

func leadInteractions(svc service.InteractionService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		out, err := svc.ForLead(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"data": out})
	}
}
