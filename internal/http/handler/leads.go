package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

// createWithClientRequest is the body of POST /leads/with-client.
type createWithClientRequest struct {
	Client model.ClientInput      `json:"client"`
	Lead   model.OpportunityInput `json:"lead"`
}

func leadFilter(c *fiber.Ctx) (model.LeadFilter, error) {
	var f model.LeadFilter
	var err error
	if f.StageID, err = queryInt64(c, "stage_id"); err != nil {
		return f, err
	}
	if f.ClientID, err = queryInt64(c, "client_id"); err != nil {
		return f, err
	}
	if f.OwnerEmployeeID, err = queryInt64(c, "owner_employee_id"); err != nil {
		return f, err
	}
	return f, nil
}

func listLeads(svc service.LeadService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		f, err := leadFilter(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), rc, f, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

func getLead(svc service.LeadService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		lead, err := svc.Get(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(lead)
	}
}

func createLead(svc service.LeadService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		var in model.OpportunityInput
		if err := parseBody(c, &in); err != nil {
			return fail(c, err)
		}
		lead, err := svc.Create(c.UserContext(), rc, in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(lead)
	}
}

func createLeadWithClient(svc service.LeadService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		var req createWithClientRequest
		if err := parseBody(c, &req); err != nil {
			return fail(c, err)
		}
		res, err := svc.CreateWithClient(c.UserContext(), rc, req.Client, req.Lead)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func updateLead(svc service.LeadService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var p model.OpportunityPatch
		if err := parseBody(c, &p); err != nil {
			return fail(c, err)
		}
		lead, err := svc.Update(c.UserContext(), rc, id, p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(lead)
	}
}

func deleteLead(svc service.LeadService) middleware.TenantHandler {
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
