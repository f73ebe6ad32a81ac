package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

func listServices(svc service.CatalogService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.ListServices(c.UserContext(), rc, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

func getService(svc service.CatalogService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		s, err := svc.GetService(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(s)
	}
}

func createService(svc service.CatalogService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		var in model.ServiceInput
		if err := parseBody(c, &in); err != nil {
			return fail(c, err)
		}
		s, err := svc.CreateService(c.UserContext(), rc, in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

func updateService(svc service.CatalogService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var p model.ServicePatch
		if err := parseBody(c, &p); err != nil {
			return fail(c, err)
		}
		s, err := svc.UpdateService(c.UserContext(), rc, id, p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(s)
	}
}

func deleteService(svc service.CatalogService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		ok, err := svc.DeleteService(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return deleted(c, ok)
	}
}

// listStages returns the pipeline stages. They are global but still require
// a valid tenant.
func listStages(svc service.CatalogService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		stages, err := svc.ListStages(c.UserContext(), rc)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"data": stages})
	}
}

func dashboardSummary(svc service.DashboardService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		sum, err := svc.Summary(c.UserContext(), rc)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(sum)
	}
}
