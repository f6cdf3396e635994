package handlers

import (
	"strconv"

	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

type BrowseHandler struct {
	Browse *services.BrowseService
}

func queryFloat(c *fiber.Ctx, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h *BrowseHandler) Search(c *fiber.Ctx) error {
	q := services.BrowseQuery{
		Query:     c.Query("q"),
		StuffType: c.Query("type"),
		OfferType: c.Query("offerType"),
		Condition: c.Query("condition"),
		Tag:       c.Query("tag"),
		City:      c.Query("city"),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		Latitude:  queryFloat(c, "lat"),
		Longitude: queryFloat(c, "lng"),
		RadiusKM:  c.QueryFloat("radiusKm"),
		Limit:     c.QueryInt("limit"),
	}
	items, err := h.Browse.Search(q)
	if err != nil {
		return failErr(c, "browse.search", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"results": items, "count": len(items)})
}
