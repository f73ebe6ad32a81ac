package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

func listContracts(svc service.ContractService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		status := model.ContractStatus(c.Query("status"))
		res, err := svc.List(c.UserContext(), rc, status, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(res)
	}
}

func getContract(svc service.ContractService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		contract, err := svc.Get(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(contract)
	}
}

func createContract(svc service.ContractService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		var in model.ContractInput
		if err := parseBody(c, &in); err != nil {
			return fail(c, err)
		}
		contract, err := svc.Create(c.UserContext(), rc, in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(contract)
	}
}

func updateContract(svc service.ContractService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var p model.ContractPatch
		if err := parseBody(c, &p); err != nil {
			return fail(c, err)
		}
		contract, err := svc.Update(c.UserContext(), rc, id, p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(contract)
	}
}

func deleteContract(svc service.ContractService) middleware.TenantHandler {
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

// uploadContractDocument accepts multipart/form-data with the file in field "file".
func uploadContractDocument(svc service.ContractDocumentService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		contract, err := svc.Upload(c.UserContext(), rc, id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(contract)
	}
}

func contractDocumentURL(svc service.ContractDocumentService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		url, err := svc.DownloadURL(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"url":                url,
			"expires_in_seconds": int(service.DocumentURLExpiry.Seconds()),
		})
	}
}

func removeContractDocument(svc service.ContractDocumentService) middleware.TenantHandler {
	return func(c *fiber.Ctx, rc tenancy.RequestContext) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		contract, err := svc.Remove(c.UserContext(), rc, id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(contract)
	}
}
