package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/models"
	"github.com/sajjad-mugdho/frontend/internal/repository"
)

var (
	// ErrPreferenceUserRequired indicates the caller is not identified.
	ErrPreferenceUserRequired = errors.New("preference user required")
	// ErrDuplicateReminder indicates the same course appears twice in a reminder list.
	ErrDuplicateReminder = errors.New("duplicate course reminder")
)

// PreferenceService manages notification preferences and course reminders.
type PreferenceService interface {
	GetPreferences(ctx context.Context, userID string) (dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req dto.PreferencesRequest) (dto.PreferencesResponse, error)
	ListReminders(ctx context.Context, userID string) ([]dto.CourseReminderPayload, error)
	ReplaceReminders(ctx context.Context, userID string, req dto.CourseRemindersRequest) ([]dto.CourseReminderPayload, error)
}

type preferenceService struct {
	preferences repository.PreferenceRepository
	reminders   repository.ReminderRepository
	validator   *validator.Validate
	policy      *bluemonday.Policy
	logger      zerolog.Logger
}

// NewPreferenceService constructs the preference service.
func NewPreferenceService(preferences repository.PreferenceRepository, reminders repository.ReminderRepository, validate *validator.Validate, logger zerolog.Logger) PreferenceService {
	return &preferenceService{
		preferences: preferences,
		reminders:   reminders,
		validator:   validate,
		policy:      bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "preference_service").Logger(),
	}
}

func (s *preferenceService) GetPreferences(ctx context.Context, userID string) (dto.PreferencesResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return dto.PreferencesResponse{}, ErrPreferenceUserRequired
	}

	pref, err := s.preferences.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PreferencesResponse{}, nil
		}
		return dto.PreferencesResponse{}, err
	}

	return dto.PreferencesResponse{
		MilestoneAlerts: pref.MilestoneAlerts,
		NewCourseAlerts: pref.NewCourseAlerts,
	}, nil
}

func (s *preferenceService) UpdatePreferences(ctx context.Context, userID string, req dto.PreferencesRequest) (dto.PreferencesResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return dto.PreferencesResponse{}, ErrPreferenceUserRequired
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.PreferencesResponse{}, err
	}

	pref := models.UserPreference{
		UserID:          userID,
		MilestoneAlerts: *req.MilestoneAlerts,
		NewCourseAlerts: *req.NewCourseAlerts,
	}
	if err := s.preferences.Upsert(ctx, &pref); err != nil {
		return dto.PreferencesResponse{}, err
	}

	s.logger.Info().Str("user_id", userID).Msg("notification preferences updated")
	return dto.PreferencesResponse{
		MilestoneAlerts: pref.MilestoneAlerts,
		NewCourseAlerts: pref.NewCourseAlerts,
	}, nil
}

func (s *preferenceService) ListReminders(ctx context.Context, userID string) ([]dto.CourseReminderPayload, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrPreferenceUserRequired
	}

	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toReminderPayloads(reminders), nil
}

func (s *preferenceService) ReplaceReminders(ctx context.Context, userID string, req dto.CourseRemindersRequest) ([]dto.CourseReminderPayload, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrPreferenceUserRequired
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.CourseReminders))
	reminders := make([]models.CourseReminder, 0, len(req.CourseReminders))
	for _, item := range req.CourseReminders {
		courseID := strings.TrimSpace(item.CourseID)
		if _, ok := seen[courseID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReminder, courseID)
		}
		seen[courseID] = struct{}{}

		name := strings.TrimSpace(s.policy.Sanitize(item.CourseName))
		if name == "" {
			name = courseID
		}
		frequency := strings.ToLower(strings.TrimSpace(item.Frequency))
		if frequency == "" {
			frequency = models.ReminderFrequencyWeekly
		}

		reminders = append(reminders, models.CourseReminder{
			CourseID:   courseID,
			CourseName: name,
			Enabled:    item.Enabled,
			Frequency:  frequency,
		})
	}

	if err := s.reminders.ReplaceForUser(ctx, userID, reminders); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Int("count", len(reminders)).Msg("course reminders replaced")
	return toReminderPayloads(reminders), nil
}

func toReminderPayloads(reminders []models.CourseReminder) []dto.CourseReminderPayload {
	result := make([]dto.CourseReminderPayload, 0, len(reminders))
	for _, reminder := range reminders {
		result = append(result, dto.CourseReminderPayload{
			CourseID:   reminder.CourseID,
			CourseName: reminder.CourseName,
			Enabled:    reminder.Enabled,
			Frequency:  reminder.Frequency,
		})
	}
	return result
}
