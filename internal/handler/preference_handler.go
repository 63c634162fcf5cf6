package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/service"
	"github.com/sajjad-mugdho/frontend/internal/utils"
)

// PreferenceHandler serves notification preferences and course reminders.
type PreferenceHandler struct {
	service service.PreferenceService
	logger  zerolog.Logger
}

// NewPreferenceHandler builds a preference handler instance.
func NewPreferenceHandler(service service.PreferenceService, logger zerolog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service: service,
		logger:  logger.With().Str("component", "preference_handler").Logger(),
	}
}

// RegisterPreferences attaches the global preference routes.
func (h *PreferenceHandler) RegisterPreferences(router fiber.Router) {
	router.Get("", h.getPreferences)
	router.Put("", h.updatePreferences)
}

// RegisterReminders attaches the per-course reminder routes.
func (h *PreferenceHandler) RegisterReminders(router fiber.Router) {
	router.Get("", h.listReminders)
	router.Put("", h.replaceReminders)
}

func (h *PreferenceHandler) getPreferences(c *fiber.Ctx) error {
	prefs, err := h.service.GetPreferences(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "preferences retrieved", prefs)
}

func (h *PreferenceHandler) updatePreferences(c *fiber.Ctx) error {
	var payload dto.PreferencesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	prefs, err := h.service.UpdatePreferences(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "preferences updated", prefs)
}

func (h *PreferenceHandler) listReminders(c *fiber.Ctx) error {
	reminders, err := h.service.ListReminders(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "course reminders retrieved", dto.CourseRemindersRequest{CourseReminders: reminders})
}

func (h *PreferenceHandler) replaceReminders(c *fiber.Ctx) error {
	var payload dto.CourseRemindersRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	reminders, err := h.service.ReplaceReminders(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "course reminders updated", dto.CourseRemindersRequest{CourseReminders: reminders})
}

func (h *PreferenceHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPreferenceUserRequired):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrDuplicateReminder):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
