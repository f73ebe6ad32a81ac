package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// requestError is a malformed request rejected before any service call.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

// fail writes err as a response, request errors as 400 and everything else
// through the error kind mapping.
func fail(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return writeError(c, fiber.StatusBadRequest, re.code, re.message)
	}
	return respondError(c, err)
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

// pageParams reads limit and offset; the service clamps them.
func pageParams(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, badRequest("INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, badRequest("INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

// queryInt64 reads an optional numeric filter; absent means zero.
func queryInt64(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, badRequest("INVALID_QUERY", "invalid "+name)
	}
	return v, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "invalid request body")
	}
	return nil
}

func deleted(c *fiber.Ctx, ok bool) error {
	return c.JSON(fiber.Map{"deleted": ok})
}
