package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sajjad-mugdho/frontend/internal/models"
)

// CheckRecordRepository stores editor check outcomes.
type CheckRecordRepository interface {
	Create(ctx context.Context, record *models.CheckRecord) error
	ListForLesson(ctx context.Context, userID, course string, sectionIndex, lessonIndex, limit int) ([]models.CheckRecord, error)
}

type checkRecordRepository struct {
	db *gorm.DB
}

// NewCheckRecordRepository constructs a check record repository.
func NewCheckRecordRepository(db *gorm.DB) CheckRecordRepository {
	return &checkRecordRepository{db: db}
}

func (r *checkRecordRepository) Create(ctx context.Context, record *models.CheckRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *checkRecordRepository) ListForLesson(ctx context.Context, userID, course string, sectionIndex, lessonIndex, limit int) ([]models.CheckRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []models.CheckRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_slug = ? AND section_index = ? AND lesson_index = ?", userID, course, sectionIndex, lessonIndex).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
