package dto

// CourseResponse is a catalog entry.
type CourseResponse struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Language    string `json:"language"`
}

// LessonOutline is a lesson entry inside a section outline.
type LessonOutline struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// SectionOutline describes a section and its lessons for navigation menus.
type SectionOutline struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	LessonTotal int             `json:"lesson_total"`
	Lessons     []LessonOutline `json:"lessons"`
}

// CourseDetailResponse is a course with its section outline.
type CourseDetailResponse struct {
	CourseResponse
	GithubURL string           `json:"github_url,omitempty"`
	Sections  []SectionOutline `json:"sections"`
}
