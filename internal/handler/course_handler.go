package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/service"
	"github.com/sajjad-mugdho/frontend/internal/utils"
)

// CourseHandler exposes the course catalog.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler builds a course handler instance.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:course", h.detail)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.OK(c, courses, "courses retrieved", fiber.Map{"total": len(courses)})
}

func (h *CourseHandler) detail(c *fiber.Ctx) error {
	course, err := h.service.GetCourse(c.UserContext(), strings.Clone(c.Params("course")))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrContentUnavailable):
		requestLogger(h.logger, c).Warn().Err(err).Msg("content service unavailable")
		return utils.SendError(c, fiber.StatusBadGateway, "content service unavailable")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
