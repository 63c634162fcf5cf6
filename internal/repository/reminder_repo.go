package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sajjad-mugdho/frontend/internal/models"
)

// ReminderRepository persists per-course practice reminders.
type ReminderRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CourseReminder, error)
	ReplaceForUser(ctx context.Context, userID string, reminders []models.CourseReminder) error
}

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository constructs a reminder repository.
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) ListByUser(ctx context.Context, userID string) ([]models.CourseReminder, error) {
	var reminders []models.CourseReminder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("course_name ASC").
		Order("id ASC").
		Find(&reminders).Error
	return reminders, err
}

// ReplaceForUser swaps the stored reminder list of a user in one transaction.
func (r *reminderRepository) ReplaceForUser(ctx context.Context, userID string, reminders []models.CourseReminder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CourseReminder{}).Error; err != nil {
			return err
		}
		if len(reminders) == 0 {
			return nil
		}
		for i := range reminders {
			reminders[i].ID = 0
			reminders[i].UserID = userID
		}
		return tx.Create(&reminders).Error
	})
}
