package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sajjad-mugdho/frontend/internal/models"
)

// PreferenceRepository persists user notification preferences.
type PreferenceRepository interface {
	GetByUser(ctx context.Context, userID string) (models.UserPreference, error)
	Upsert(ctx context.Context, pref *models.UserPreference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository constructs a preference repository.
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUser(ctx context.Context, userID string) (models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	return pref, err
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *models.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"milestone_alerts", "new_course_alerts", "updated_at"}),
	}).Create(pref).Error
}
