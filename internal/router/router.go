package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/roundonehq/r1-interview-api/internal/config"
	"github.com/roundonehq/r1-interview-api/internal/handler"
	"github.com/roundonehq/r1-interview-api/internal/middleware"
	"github.com/roundonehq/r1-interview-api/internal/observability"
	"github.com/roundonehq/r1-interview-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	InterviewHandler *handler.InterviewHandler
	AdminHandler     *handler.AdminHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.InterviewHandler != nil {
		interview := app.Group("/api/interview", jwtMiddleware, middleware.RequireRole(service.RoleCandidate))
		// Uploads are throttled per candidate; transcription and scoring are slow.
		interview.Use("/section1", middleware.RateLimit("section1", 6, time.Minute))
		deps.InterviewHandler.Register(interview)
	}

	if deps.AdminHandler != nil {
		admin := app.Group("/api/admin", jwtMiddleware, middleware.RequireRole(service.RoleAdmin))
		deps.AdminHandler.Register(admin)
	}
}
