package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

func listProjects(svc service.ProjectService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		f := model.ProjectFilter{Status: model.ProjectStatus(c.Query("status"))}
		if f.ProjectManagerID, err = queryInt64(c, "project_manager_id"); err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), rc, f, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

func getProject(svc service.ProjectService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		p, err := svc.Get(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(p)
	}
}
