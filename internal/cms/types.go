package cms

import (
	"context"
	"errors"
	"strings"

	"github.com/sajjad-mugdho/frontend/internal/solution"
)

var (
	// ErrNotFound is returned when the requested course, section or lesson does not exist.
	ErrNotFound = errors.New("content not found")
	// ErrUpstream wraps transport and GraphQL failures reported by Contentful.
	ErrUpstream = errors.New("content service unavailable")
)

// defaultLanguage is used for assets whose file name carries no extension.
const defaultLanguage = "rust"

// Source is the read side of the course content store.
type Source interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, slug string) (Course, error)
	GetSection(ctx context.Context, slug string, index int) (*Section, error)
	ListSections(ctx context.Context, slug string) ([]Section, error)
	GetLesson(ctx context.Context, slug string, sectionIndex, lessonIndex int) (Lesson, error)
	FetchFiles(ctx context.Context, assets []Asset) ([]solution.File, error)
}

// Course describes a course module.
type Course struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Level        string `json:"level"`
	Language     string `json:"language"`
	GithubURL    string `json:"github_url"`
	SectionTotal int    `json:"section_total"`
}

// LessonSummary is the outline entry of a lesson inside a section.
type LessonSummary struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Section groups the lessons of a course.
type Section struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	LessonTotal int             `json:"lesson_total"`
	Lessons     []LessonSummary `json:"lessons"`
}

// Asset references a file stored in the content delivery network.
type Asset struct {
	Title    string `json:"title"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// Language derives the editor language from the asset file name extension.
func (a Asset) Language() string {
	name := strings.TrimSpace(a.FileName)
	if name == "" {
		return defaultLanguage
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// FileSet holds the asset collections attached to a lesson.
type FileSet struct {
	Source   []Asset `json:"source"`
	Template []Asset `json:"template"`
	Solution []Asset `json:"solution"`
}

// Starting returns the files a learner starts with: the source collection
// when present, otherwise the template collection.
func (f FileSet) Starting() []Asset {
	if f.Source != nil {
		return f.Source
	}
	return f.Template
}

// Lesson is a single lesson with its content and files.
type Lesson struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Content string  `json:"content"`
	Files   FileSet `json:"files"`
}
