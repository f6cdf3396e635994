package handlers

import (
	"errors"
	"time"

	"vidyarth/internal/domain"
	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	u, err := h.Auth.Register(in)
	if err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"email": in.Email})
		return failErr(c, "auth.register", err)
	}
	applog.Audit(c, "auth.register.success", map[string]any{"user_id": u.ID})
	return ok(c, fiber.StatusCreated, fiber.Map{"user": u})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed body")
	}
	sid := ensureSID(c)
	u, token, err := h.Auth.Login(sid, in.Email, in.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return failErr(c, "auth.login", err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return ok(c, fiber.StatusOK, fiber.Map{"user": u, "token": token})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return ok(c, fiber.StatusOK, nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c)
	// Accounts created outside Register may have no profile yet.
	p, err := h.Auth.Profile(u.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return failErr(c, "auth.me", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"user": u, "profile": p})
}

// DeleteUser removes an account with everything tied to it. Admin only.
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Auth.DeleteUser(id); err != nil {
		return failErr(c, "admin.users.delete", err)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"target_user_id": id})
	return ok(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

func (h *AuthHandler) SchoolColleges(c *fiber.Ctx) error {
	list, err := h.Auth.SchoolColleges()
	if err != nil {
		return failErr(c, "schools.list", err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"school_colleges": list})
}
