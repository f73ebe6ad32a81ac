package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

func listClients(svc service.ClientService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), rc, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

func getClient(svc service.ClientService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		client, err := svc.Get(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(client)
	}
}

func createClient(svc service.ClientService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		var in model.ClientInput
		if err := parseBody(c, &in); err != nil {
			return fail(c, err)
		}
		client, err := svc.Create(c.UserContext(), rc, in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

func updateClient(svc service.ClientService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var p model.ClientPatch
		if err := parseBody(c, &p); err != nil {
			return fail(c, err)
		}
		client, err := svc.Update(c.UserContext(), rc, id, p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(client)
	}
}

func deleteClient(svc service.ClientService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		ok, err := svc.Delete(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return deleted(c, ok)
	}
}
