package dto

// PreferencesRequest updates the global notification switches.
type PreferencesRequest struct {
	MilestoneAlerts *bool `json:"milestoneAlerts" validate:"required"`
	NewCourseAlerts *bool `json:"newCourseAlerts" validate:"required"`
}

// PreferencesResponse returns the global notification switches.
type PreferencesResponse struct {
	MilestoneAlerts bool `json:"milestoneAlerts"`
	NewCourseAlerts bool `json:"newCourseAlerts"`
}

// CourseReminderPayload is a single per-course practice reminder.
type CourseReminderPayload struct {
	CourseID   string `json:"courseId" validate:"required,max=160"`
	CourseName string `json:"courseName" validate:"required,max=255"`
	Enabled    bool   `json:"enabled"`
	Frequency  string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
}

// CourseRemindersRequest replaces the full reminder list of a user.
type CourseRemindersRequest struct {
	CourseReminders []CourseReminderPayload `json:"courseReminders" validate:"max=100,dive"`
}
