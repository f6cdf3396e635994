package handlers

import (
	"vidyarth/internal/domain"
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	Requests *services.RequestService
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in domain.Request
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	q, err := h.Requests.Create(userID(c), in)
	if err != nil {
		return failErr(c, "request.create", err)
	}
	applog.Audit(c, "request.create", map[string]any{"request_id": q.ID})
	return ok(c, fiber.StatusCreated, fiber.Map{"request": q})
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	q, err := h.Requests.Get(c.Params("id"))
	if err != nil {
		return failErr(c, "request.get", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"request": q})
}

func (h *RequestHandler) ListOpen(c *fiber.Ctx) error {
	list, err := h.Requests.ListOpen(c.Query("type"))
	if err != nil {
		return failErr(c, "request.open", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"requests": list})
}

func (h *RequestHandler) Mine(c *fiber.Ctx) error {
	list, err := h.Requests.ListMine(userID(c))
	if err != nil {
		return failErr(c, "request.mine", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"requests": list})
}

func (h *RequestHandler) Update(c *fiber.Ctx) error {
	var in domain.Request
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	q, err := h.Requests.Update(userID(c), c.Params("id"), in)
	if err != nil {
		return failErr(c, "request.update", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"request": q})
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.Requests.Delete(userID(c), c.Params("id")); err != nil {
		return failErr(c, "request.delete", err)
	}
	return ok(c, fiber.StatusOK, nil)
}
