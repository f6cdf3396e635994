package handlers

import (
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Notify *services.NotificationService
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread")
	list, err := h.Notify.List(userID(c), unreadOnly, c.QueryInt("limit"))
	if err != nil {
		return failErr(c, "notification.list", err)
	}
	unread, err := h.Notify.UnreadCount(userID(c))
	if err != nil {
		return failErr(c, "notification.list", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"notifications": list, "unread_count": unread})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	n, err := h.Notify.MarkRead(userID(c), in.IDs)
	if err != nil {
		return failErr(c, "notification.mark", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"marked": n})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.Notify.MarkAllRead(userID(c))
	if err != nil {
		return failErr(c, "notification.markall", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"marked": n})
}
