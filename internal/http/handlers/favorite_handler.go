package handlers

import (
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	Fav *services.FavoriteService
}

func (h *FavoriteHandler) Save(c *fiber.Ctx) error {
	stuffID := c.Params("stuffId")
	if err := h.Fav.Save(userID(c), stuffID); err != nil {
		return failErr(c, "favorite.save", err)
	}
	applog.Info(c, "favorite.save", map[string]any{"stuff_id": stuffID})
	return ok(c, fiber.StatusCreated, nil)
}

func (h *FavoriteHandler) Unsave(c *fiber.Ctx) error {
	if err := h.Fav.Unsave(userID(c), c.Params("stuffId")); err != nil {
		return failErr(c, "favorite.unsave", err)
	}
	return ok(c, fiber.StatusOK, nil)
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	items, err := h.Fav.List(userID(c))
	if err != nil {
		return failErr(c, "favorite.list", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"favorites": items})
}
