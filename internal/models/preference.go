package models

import "time"

// Reminder frequencies accepted for course practice reminders.
const (
	ReminderFrequencyDaily   = "daily"
	ReminderFrequencyWeekly  = "weekly"
	ReminderFrequencyMonthly = "monthly"
)

// UserPreference stores the global notification switches of a user.
type UserPreference struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          string    `gorm:"size:128;not null;uniqueIndex"`
	MilestoneAlerts bool      `gorm:"not null;default:false"`
	NewCourseAlerts bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CourseReminder is a per-course practice reminder.
type CourseReminder struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     string    `gorm:"size:128;not null;uniqueIndex:idx_reminder_user_course,priority:1"`
	CourseID   string    `gorm:"size:160;not null;uniqueIndex:idx_reminder_user_course,priority:2"`
	CourseName string    `gorm:"size:255"`
	Enabled    bool      `gorm:"not null;default:false"`
	Frequency  string    `gorm:"size:16;not null;default:weekly"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
