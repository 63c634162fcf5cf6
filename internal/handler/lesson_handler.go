package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/service"
	"github.com/sajjad-mugdho/frontend/internal/utils"
)

// LessonHandler serves lesson pages and anonymous solution checks.
type LessonHandler struct {
	service service.LessonService
	logger  zerolog.Logger
}

// NewLessonHandler builds a lesson handler instance.
func NewLessonHandler(service service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		logger:  logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register attaches the routes to a group mounted at
// /courses/:course/sections/:section/lessons/:lesson. checkMiddleware runs
// in front of the check route only.
func (h *LessonHandler) Register(router fiber.Router, checkMiddleware ...fiber.Handler) {
	router.Get("", h.page)

	check := append(append([]fiber.Handler{}, checkMiddleware...), h.check)
	router.Post("/check", check...)
}

func (h *LessonHandler) page(c *fiber.Ctx) error {
	page, err := h.service.GetLessonPage(c.UserContext(), lessonRequest(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "lesson retrieved", page)
}

func (h *LessonHandler) check(c *fiber.Ctx) error {
	var payload dto.CheckRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CheckLesson(c.UserContext(), lessonRequest(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	message := "solution does not match"
	if result.AllMatch {
		message = "solution matches"
	}
	return utils.SendSuccess(c, message, result)
}

func (h *LessonHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidLessonPosition):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrLessonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
	case errors.Is(err, service.ErrContentUnavailable):
		requestLogger(h.logger, c).Warn().Err(err).Msg("content service unavailable")
		return utils.SendError(c, fiber.StatusBadGateway, "content service unavailable")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
