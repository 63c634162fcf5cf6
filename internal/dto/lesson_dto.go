package dto

// EditorFile is a file as exchanged with the lesson editor.
type EditorFile struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	Code     string `json:"code" validate:"max=1048576"`
	Language string `json:"language" validate:"omitempty,max=32"`
}

// LessonPageRequest identifies a lesson by its 1-based path parameters.
type LessonPageRequest struct {
	Course  string `validate:"required,max=160"`
	Section string `validate:"required"`
	Lesson  string `validate:"required"`
}

// LessonCourse carries the course fields shown on a lesson page.
type LessonCourse struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	GithubURL string `json:"github_url,omitempty"`
}

// LessonContent carries the lesson body.
type LessonContent struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// LessonPageResponse aggregates everything needed to render a lesson.
type LessonPageResponse struct {
	Course        LessonCourse     `json:"course"`
	Section       SectionOutline   `json:"section"`
	Lesson        LessonContent    `json:"lesson"`
	StartingFiles []EditorFile     `json:"starting_files"`
	Solution      []EditorFile     `json:"solution"`
	ReadOnly      bool             `json:"read_only"`
	FeedbackURL   string           `json:"feedback_url"`
	Prev          string           `json:"prev,omitempty"`
	Next          string           `json:"next,omitempty"`
	Sections      []SectionOutline `json:"sections"`
}

// CheckRequest is the payload of an anonymous solution check.
type CheckRequest struct {
	Files []EditorFile `json:"files" validate:"max=64,dive"`
}

// CheckResponse reports the outcome of a solution check.
type CheckResponse struct {
	AllMatch       bool         `json:"all_match"`
	IncorrectFiles []EditorFile `json:"incorrect_files"`
}
