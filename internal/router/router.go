package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prompt-arena/arena-api/internal/config"
	"github.com/prompt-arena/arena-api/internal/handler"
	"github.com/prompt-arena/arena-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	TeamHandler        *handler.TeamHandler
	SubmissionHandler  *handler.SubmissionHandler
	ChallengeHandler   *handler.ChallengeHandler
	ProgressHandler    *handler.ProgressHandler
	LeaderboardHandler *handler.LeaderboardHandler
	JWTMiddleware      fiber.Handler
	SubmitRateLimit    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.TeamHandler != nil {
		teams := api.Group("/teams")
		deps.TeamHandler.Register(teams)

		protected := teams.Group("", jwtMiddleware)
		deps.TeamHandler.RegisterProtected(protected)
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		if deps.SubmitRateLimit != nil {
			submissions.Use(deps.SubmitRateLimit)
		}
		deps.SubmissionHandler.Register(submissions)
	}

	if deps.ProgressHandler != nil {
		progress := api.Group("/progress", jwtMiddleware)
		deps.ProgressHandler.Register(progress)
	}

	if deps.ChallengeHandler != nil {
		challenges := api.Group("/challenges", jwtMiddleware)
		deps.ChallengeHandler.Register(challenges)
	}

	if deps.LeaderboardHandler != nil {
		leaderboard := api.Group("/leaderboard", jwtMiddleware)
		deps.LeaderboardHandler.Register(leaderboard)
	}
}
