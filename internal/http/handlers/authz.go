package handlers

import (
	"strings"

	"vidyarth/internal/domain"
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
)

// resolveUser accepts either a bearer token or the sid session cookie.
func resolveUser(c *fiber.Ctx, auth *services.AuthService) *domain.User {
	if hdr := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(hdr, "Bearer ") {
		u, err := auth.UserFromToken(strings.TrimPrefix(hdr, "Bearer "))
		if err == nil && u != nil {
			return u
		}
		applog.Security(c, "auth.token.reject", nil)
		return nil
	}
	if sid := c.Cookies("sid"); sid != "" {
		u, err := auth.CurrentUser(sid)
		if err == nil && u != nil && u.IsActive {
			return u
		}
	}
	return nil
}

// RequireUser attaches the resolved user to the request context or rejects
// the request with 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := resolveUser(c, auth)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := resolveUser(c, auth)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		if u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return fail(c, fiber.StatusForbidden, "admin access required")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

// currentUser returns the user attached by RequireUser. Handlers behind the
// middleware can rely on it being present.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
