package handlers

import (
	"time"

	applog "vidyarth/internal/log"
	"vidyarth/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Register mounts the full API surface under /api/v1.
func Register(app *fiber.App, deps *Deps, auth *services.AuthService) {
	api := app.Group("/api/v1")

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return fail(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
		},
	})

	// Public
	api.Post("/auth/register", deps.AuthHandler.Register)
	api.Post("/auth/login", loginLimiter, deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)
	api.Get("/school-colleges", deps.AuthHandler.SchoolColleges)
	api.Get("/browse", deps.BrowseHandler.Search)
	api.Get("/stuffs/:id", deps.ListingHandler.Get)
	api.Get("/stuffs/:id/reviews", deps.ReviewHandler.ForStuff)
	api.Get("/users/:id/reviews", deps.ReviewHandler.ForUser)
	api.Get("/requests", deps.RequestHandler.ListOpen)
	api.Get("/requests/:id", deps.RequestHandler.Get)

	// Authenticated
	user := api.Group("", RequireUser(auth))
	user.Get("/me", deps.AuthHandler.Me)

	user.Post("/stuffs", deps.ListingHandler.Create)
	user.Put("/stuffs/:id/offers/:offerId", deps.ListingHandler.Update)
	user.Delete("/stuffs/:id", deps.ListingHandler.Delete)
	user.Get("/my/stuffs", deps.ListingHandler.Mine)

	user.Get("/conversations", deps.MessageHandler.Conversations)
	user.Get("/messages", deps.MessageHandler.Thread)
	user.Post("/messages", deps.MessageHandler.Send)

	user.Get("/notifications", deps.NotificationHandler.List)
	user.Patch("/notifications/read", deps.NotificationHandler.MarkRead)
	user.Put("/notifications/read-all", deps.NotificationHandler.MarkAllRead)

	user.Get("/favorites", deps.FavoriteHandler.List)
	user.Post("/favorites/:stuffId", deps.FavoriteHandler.Save)
	user.Delete("/favorites/:stuffId", deps.FavoriteHandler.Unsave)

	user.Post("/reviews", deps.ReviewHandler.Create)
	user.Put("/reviews/:id", deps.ReviewHandler.Update)
	user.Delete("/reviews/:id", deps.ReviewHandler.Delete)

	user.Post("/trades", deps.TradeHandler.Create)
	user.Get("/trades", deps.TradeHandler.Mine)
	user.Get("/trades/:id", deps.TradeHandler.Get)
	user.Put("/trades/:id", deps.TradeHandler.Update)
	user.Delete("/trades/:id", deps.TradeHandler.Delete)

	user.Post("/requests", deps.RequestHandler.Create)
	user.Get("/my/requests", deps.RequestHandler.Mine)
	user.Put("/requests/:id", deps.RequestHandler.Update)
	user.Delete("/requests/:id", deps.RequestHandler.Delete)

	user.Post("/reminders", deps.ReminderHandler.Create)
	user.Get("/reminders", deps.ReminderHandler.Mine)
	user.Patch("/reminders/:id/dismiss", deps.ReminderHandler.Dismiss)
	user.Delete("/reminders/:id", deps.ReminderHandler.Delete)

	// Admin
	admin := api.Group("/admin", RequireAdmin(auth))
	admin.Post("/reminders/sweep", deps.ReminderHandler.Sweep)
	admin.Delete("/users/:id", deps.AuthHandler.DeleteUser)
}
