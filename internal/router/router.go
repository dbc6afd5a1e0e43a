package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/config"
	"github.com/braillebridge/teacher-console/internal/handler"
	"github.com/braillebridge/teacher-console/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	ReviewHandler     *handler.ReviewHandler
	StudentHandler    *handler.StudentHandler
	BrailleHandler    *handler.BrailleHandler
	LessonPackHandler *handler.LessonPackHandler
	HealthBackend     handler.HealthBackend
	Logger            zerolog.Logger
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthBackend != nil {
		api.Get("/health", handler.HealthCheck(cfg, deps.HealthBackend, deps.Logger))
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments")
		deps.AssignmentHandler.Register(assignments)

		if deps.SubmissionHandler != nil {
			deps.SubmissionHandler.RegisterSubmitRoute(assignments)
		}
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions"))
	}

	if deps.ReviewHandler != nil {
		deps.ReviewHandler.Register(api.Group("/review"))
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}

	if deps.BrailleHandler != nil {
		deps.BrailleHandler.Register(api.Group("/braille"))
	}

	if deps.LessonPackHandler != nil {
		deps.LessonPackHandler.Register(api.Group("/lesson-packs"))
	}
}
