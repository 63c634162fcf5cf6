package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckRecord is the persisted outcome of one editor check.
type CheckRecord struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         string         `gorm:"size:128;not null;index:idx_check_user_lesson,priority:1" json:"user_id"`
	CourseSlug     string         `gorm:"size:160;not null;index:idx_check_user_lesson,priority:2" json:"course_slug"`
	SectionIndex   int            `gorm:"not null;index:idx_check_user_lesson,priority:3" json:"section_index"`
	LessonIndex    int            `gorm:"not null;index:idx_check_user_lesson,priority:4" json:"lesson_index"`
	AllMatch       bool           `gorm:"not null" json:"all_match"`
	IncorrectFiles datatypes.JSON `gorm:"type:json" json:"incorrect_files"`
	CreatedAt      time.Time      `json:"created_at"`
}

// BeforeSave keeps the incorrect file list a valid JSON array.
func (r *CheckRecord) BeforeSave(tx *gorm.DB) error {
	if len(r.IncorrectFiles) == 0 {
		r.IncorrectFiles = datatypes.JSON("[]")
	}
	return nil
}
