package handlers

import (
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	Messaging *services.MessagingService
}

// Conversations lists the viewer's inbox grouped by counterparty and offer.
// An offerId query narrows it to one offer's threads.
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	convs, err := h.Messaging.Conversations(userID(c), c.Query("offerId"))
	if err != nil {
		return failErr(c, "message.conversations", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"conversations": convs})
}

// Thread returns one offer thread, oldest first, and marks the viewer's
// unread messages in it read.
func (h *MessageHandler) Thread(c *fiber.Ctx) error {
	msgs, err := h.Messaging.Thread(userID(c), c.Query("offerId"), c.Query("otherUserId"))
	if err != nil {
		return failErr(c, "message.thread", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"messages": msgs})
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in services.SendMessageInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	m, err := h.Messaging.Send(userID(c), in)
	if err != nil {
		return failErr(c, "message.send", err)
	}
	applog.Info(c, "message.send", map[string]any{"message_id": m.ID, "receiver_id": m.ReceiverID})
	return ok(c, fiber.StatusCreated, fiber.Map{"message": m})
}
