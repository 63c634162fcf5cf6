package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/service"
	"github.com/sajjad-mugdho/frontend/internal/utils"
)

// EditorHandler manages the editor session endpoints of a lesson.
type EditorHandler struct {
	service service.EditorService
	logger  zerolog.Logger
}

// NewEditorHandler builds an editor handler instance.
func NewEditorHandler(service service.EditorService, logger zerolog.Logger) *EditorHandler {
	return &EditorHandler{
		service: service,
		logger:  logger.With().Str("component", "editor_handler").Logger(),
	}
}

// Register attaches the routes to a group mounted at .../lessons/:lesson/editor.
func (h *EditorHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("/content", h.setContent)
	router.Post("/check", h.check)
	router.Post("/toggle-answer", h.toggleAnswer)
	router.Post("/toggle-diff", h.toggleDiff)
	router.Put("/tab", h.selectTab)
}

func (h *EditorHandler) get(c *fiber.Ctx) error {
	state, err := h.service.Get(c.UserContext(), userIDFromContext(c), lessonRequest(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "editor state retrieved", state)
}

func (h *EditorHandler) setContent(c *fiber.Ctx) error {
	var payload dto.EditorContentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	state, err := h.service.SetContent(c.UserContext(), userIDFromContext(c), lessonRequest(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "editor content saved", state)
}

func (h *EditorHandler) check(c *fiber.Ctx) error {
	state, err := h.service.Check(c.UserContext(), userIDFromContext(c), lessonRequest(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "solution checked", state)
}

func (h *EditorHandler) toggleAnswer(c *fiber.Ctx) error {
	state, err := h.service.ToggleAnswer(c.UserContext(), userIDFromContext(c), lessonRequest(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "answer toggled", state)
}

func (h *EditorHandler) toggleDiff(c *fiber.Ctx) error {
	state, err := h.service.ToggleDiff(c.UserContext(), userIDFromContext(c), lessonRequest(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "diff toggled", state)
}

func (h *EditorHandler) selectTab(c *fiber.Ctx) error {
	var payload dto.EditorTabRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	state, err := h.service.SelectTab(c.UserContext(), userIDFromContext(c), lessonRequest(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "tab selected", state)
}

func (h *EditorHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEditorUserRequired):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrInvalidLessonPosition), isValidationError(err):
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
