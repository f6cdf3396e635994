package handlers

import (
	"errors"

	"vidyarth/internal/domain"
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ok wraps a payload in the uniform success envelope.
func ok(c *fiber.Ctx, status int, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// failErr maps service errors onto HTTP statuses. Unexpected errors are
// logged and answered with a generic 500 so internals never leak.
func failErr(c *fiber.Ctx, action string, err error) error {
	switch {
	case domain.IsValidation(err):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, services.ErrBadCreds):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotAuthorized), errors.Is(err, services.ErrUserBlocked):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusConflict, err.Error())
	default:
		applog.Error(c, action, err, nil)
		return fail(c, fiber.StatusInternalServerError, "internal error")
	}
}
