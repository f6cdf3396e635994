package handlers

import (
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	v, err := h.Reviews.Create(userID(c), in)
	if err != nil {
		return failErr(c, "review.create", err)
	}
	applog.Audit(c, "review.create", map[string]any{"review_id": v.ID, "target_user_id": v.TargetUserID})
	return ok(c, fiber.StatusCreated, fiber.Map{"review": v})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var in struct {
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	v, err := h.Reviews.Update(userID(c), c.Params("id"), in.Rating, in.Title, in.Message)
	if err != nil {
		return failErr(c, "review.update", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"review": v})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.Reviews.Delete(userID(c), c.Params("id")); err != nil {
		return failErr(c, "review.delete", err)
	}
	return ok(c, fiber.StatusOK, nil)
}

func (h *ReviewHandler) ForStuff(c *fiber.Ctx) error {
	list, err := h.Reviews.ForStuff(c.Params("id"))
	if err != nil {
		return failErr(c, "review.stuff", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"reviews": list})
}

func (h *ReviewHandler) ForUser(c *fiber.Ctx) error {
	rating, err := h.Reviews.ForUser(c.Params("id"))
	if err != nil {
		return failErr(c, "review.user", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"rating": rating})
}
