package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Report intake (any authenticated user)
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.SubmitReport)

	// Moderation panel (reviewer role required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ReviewerRequired(db, cfg))
	admin.Get("/moderation/reports", moderationHandler.ListReports)
	admin.Get("/moderation/reports/:id", moderationHandler.GetReport)
	admin.Put("/moderation/reports/:id", moderationHandler.ReviewReport)
	admin.Get("/moderation/stats", moderationHandler.GetStats)
}
