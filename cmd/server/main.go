package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Record store and capability collaborators
	recordStore := store.New(database.DB)
	notifier := notify.NewStoreSink(recordStore.Notifications())
	textClassifier := buildClassifier(cfg)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	reportService := services.NewReportService(recordStore, textClassifier, notifier, cfg.ClassifierTimeout)
	actionService := services.NewActionService(recordStore, notifier)
	statsService := services.NewStatsService(recordStore)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	moderationHandler := handlers.NewModerationHandler(reportService, actionService, statsService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, moderationHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// buildClassifier wires the configured chat-completions providers, falling
// back to the local lexical classifier when no keys are set. Intake degrades
// to "no analysis" on any classifier failure either way.
func buildClassifier(cfg *config.Config) classifier.Classifier {
	var providers []classifier.Provider
	if cfg.GLMAPIKey != "" {
		providers = append(providers, classifier.Provider{
			Name: "glm", URL: cfg.GLMAPIURL, APIKey: cfg.GLMAPIKey, Model: cfg.GLMModel,
		})
	}
	if cfg.DeepSeekAPIKey != "" {
		providers = append(providers, classifier.Provider{
			Name: "deepseek", URL: cfg.DeepSeekAPIURL, APIKey: cfg.DeepSeekAPIKey, Model: cfg.DeepSeekModel,
		})
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, classifier.Provider{
			Name: "openai", URL: cfg.OpenAIAPIURL, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel,
		})
	}

	if len(providers) == 0 {
		slog.Info("no classifier providers configured, using lexical classifier")
		return classifier.NewLexical()
	}
	slog.Info("remote classifier configured", "providers", len(providers))
	return classifier.NewRemote(providers, cfg.ClassifierTimeout)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
