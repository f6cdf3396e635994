package handlers

import (
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in services.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	st, of, err := h.Listings.Create(userID(c), in)
	if err != nil {
		return failErr(c, "listing.create", err)
	}
	applog.Audit(c, "listing.create", map[string]any{"stuff_id": st.ID, "offer_id": of.ID})
	return ok(c, fiber.StatusCreated, fiber.Map{"stuff": st, "offer": of})
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	st, offers, err := h.Listings.Get(c.Params("id"))
	if err != nil {
		return failErr(c, "listing.get", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"stuff": st, "offers": offers})
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	var in services.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	st, of, err := h.Listings.Update(userID(c), c.Params("id"), c.Params("offerId"), in)
	if err != nil {
		return failErr(c, "listing.update", err)
	}
	applog.Audit(c, "listing.update", map[string]any{"stuff_id": st.ID, "offer_id": of.ID})
	return ok(c, fiber.StatusOK, fiber.Map{"stuff": st, "offer": of})
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	stuffID := c.Params("id")
	if err := h.Listings.Delete(userID(c), stuffID); err != nil {
		return failErr(c, "listing.delete", err)
	}
	applog.Audit(c, "listing.delete", map[string]any{"stuff_id": stuffID})
	return ok(c, fiber.StatusOK, nil)
}

func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	items, err := h.Listings.ListByOwner(userID(c))
	if err != nil {
		return failErr(c, "listing.mine", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"stuffs": items})
}
