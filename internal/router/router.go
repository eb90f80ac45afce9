package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prompt-arena/arena-go-api/internal/config"
	"github.com/prompt-arena/arena-go-api/internal/handler"
	"github.com/prompt-arena/arena-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ChallengeHandler   *handler.ChallengeHandler
	GradeHandler       *handler.GradeHandler
	LeaderboardHandler *handler.LeaderboardHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ChallengeHandler != nil {
		deps.ChallengeHandler.Register(api)
	}

	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(api.Group("/grade"))
	}

	if deps.LeaderboardHandler != nil {
		deps.LeaderboardHandler.Register(api.Group("/leaderboard"))
	}

	app.Get("/metrics", observability.MetricsHandler())
}
