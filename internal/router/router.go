package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sajjad-mugdho/frontend/internal/config"
	"github.com/sajjad-mugdho/frontend/internal/handler"
	"github.com/sajjad-mugdho/frontend/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CourseHandler         *handler.CourseHandler
	LessonHandler         *handler.LessonHandler
	EditorHandler         *handler.EditorHandler
	PreferenceHandler     *handler.PreferenceHandler
	SubmissionHandler     *handler.SubmissionHandler
	HealthProbes          map[string]handler.HealthProbe
	JWTMiddleware         fiber.Handler
	OptionalJWTMiddleware fiber.Handler
	CheckRateLimiter      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())
	app.Get("/courses/:course/lesson/:lesson/chapter/:chapter", handler.LegacyLessonRedirect)

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := orNoop(deps.JWTMiddleware)

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(api.Group("/courses"))
	}

	lesson := api.Group("/courses/:course/sections/:section/lessons/:lesson")
	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(lesson, orNoop(deps.OptionalJWTMiddleware), orNoop(deps.CheckRateLimiter))
	}

	// Editor sessions need redis and are skipped without it
	if deps.EditorHandler != nil {
		deps.EditorHandler.Register(lesson.Group("/editor", jwtMiddleware))
	}

	if deps.PreferenceHandler != nil {
		deps.PreferenceHandler.RegisterPreferences(api.Group("/user-preferences", jwtMiddleware))
		deps.PreferenceHandler.RegisterReminders(api.Group("/user-repositories", jwtMiddleware))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submission"))
	}
}

func orNoop(h fiber.Handler) fiber.Handler {
	if h == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return h
}
