package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/middleware"
)

func userIDFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		switch id := v.(type) {
		case string:
			return strings.TrimSpace(id)
		case fmt.Stringer:
			return strings.TrimSpace(id.String())
		}
	}
	return ""
}

// lessonRequest copies the lesson path parameters out of the request buffer.
func lessonRequest(c *fiber.Ctx) dto.LessonPageRequest {
	return dto.LessonPageRequest{
		Course:  strings.Clone(c.Params("course")),
		Section: strings.Clone(c.Params("section")),
		Lesson:  strings.Clone(c.Params("lesson")),
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
