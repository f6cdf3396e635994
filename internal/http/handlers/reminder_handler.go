package handlers

import (
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReminderHandler struct {
	Reminders *services.ReminderService
}

func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var in services.ReminderInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	m, err := h.Reminders.Create(userID(c), in)
	if err != nil {
		return failErr(c, "reminder.create", err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"reminder": m})
}

func (h *ReminderHandler) Mine(c *fiber.Ctx) error {
	list, err := h.Reminders.ListMine(userID(c), c.QueryBool("pending"))
	if err != nil {
		return failErr(c, "reminder.mine", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"reminders": list})
}

func (h *ReminderHandler) Dismiss(c *fiber.Ctx) error {
	if err := h.Reminders.Dismiss(userID(c), c.Params("id")); err != nil {
		return failErr(c, "reminder.dismiss", err)
	}
	return ok(c, fiber.StatusOK, nil)
}

func (h *ReminderHandler) Delete(c *fiber.Ctx) error {
	if err := h.Reminders.Delete(userID(c), c.Params("id")); err != nil {
		return failErr(c, "reminder.delete", err)
	}
	return ok(c, fiber.StatusOK, nil)
}

// Sweep is admin-only: it flushes due reminders into notifications.
func (h *ReminderHandler) Sweep(c *fiber.Ctx) error {
	fired, err := h.Reminders.Sweep()
	if err != nil {
		return failErr(c, "reminder.sweep", err)
	}
	applog.Audit(c, "reminder.sweep", map[string]any{"fired": fired})
	return ok(c, fiber.StatusOK, fiber.Map{"fired": fired})
}
