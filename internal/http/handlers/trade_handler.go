package handlers

import (
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type TradeHandler struct {
	Trades *services.TradeService
}

func (h *TradeHandler) Create(c *fiber.Ctx) error {
	var in services.TradeInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	t, err := h.Trades.Create(userID(c), in)
	if err != nil {
		return failErr(c, "trade.create", err)
	}
	applog.Audit(c, "trade.create", map[string]any{"trade_id": t.ID, "offer_id": t.OfferID})
	return ok(c, fiber.StatusCreated, fiber.Map{"trade": t})
}

func (h *TradeHandler) Get(c *fiber.Ctx) error {
	t, err := h.Trades.Get(userID(c), c.Params("id"))
	if err != nil {
		return failErr(c, "trade.get", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"trade": t})
}

func (h *TradeHandler) Mine(c *fiber.Ctx) error {
	list, err := h.Trades.ListMine(userID(c))
	if err != nil {
		return failErr(c, "trade.mine", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"trades": list})
}

func (h *TradeHandler) Update(c *fiber.Ctx) error {
	var in services.TradeUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	t, err := h.Trades.Update(userID(c), c.Params("id"), in)
	if err != nil {
		return failErr(c, "trade.update", err)
	}
	applog.Audit(c, "trade.update", map[string]any{"trade_id": t.ID, "status": t.Status})
	return ok(c, fiber.StatusOK, fiber.Map{"trade": t})
}

func (h *TradeHandler) Delete(c *fiber.Ctx) error {
	tradeID := c.Params("id")
	if err := h.Trades.Delete(userID(c), tradeID); err != nil {
		return failErr(c, "trade.delete", err)
	}
	applog.Audit(c, "trade.delete", map[string]any{"trade_id": tradeID})
	return ok(c, fiber.StatusOK, nil)
}
