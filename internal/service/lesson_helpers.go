package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/navigation"
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

var (
	// ErrCourseNotFound indicates the requested course slug does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrLessonNotFound indicates the section or lesson does not exist in the course.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrInvalidLessonPosition indicates the section or lesson path parameter is not a positive number.
	ErrInvalidLessonPosition = errors.New("invalid lesson position")
	// ErrContentUnavailable indicates the content service could not be reached or answered with an error.
	ErrContentUnavailable = errors.New("content service unavailable")
)

// DefaultFeedbackRepository receives feedback for courses without a repository of their own.
const DefaultFeedbackRepository = "https://github.com/dotcodeschool/frontend"

type lessonRef struct {
	Course       string
	SectionIndex int
	LessonIndex  int
}

func parseLessonRef(req dto.LessonPageRequest) (lessonRef, error) {
	course := strings.TrimSpace(req.Course)
	if course == "" {
		return lessonRef{}, fmt.Errorf("%w: missing course", ErrInvalidLessonPosition)
	}
	sectionIndex, lessonIndex, err := navigation.ParseIndices(req.Section, req.Lesson)
	if err != nil {
		return lessonRef{}, fmt.Errorf("%w: %v", ErrInvalidLessonPosition, err)
	}
	return lessonRef{Course: course, SectionIndex: sectionIndex, LessonIndex: lessonIndex}, nil
}

// translateContentError maps content store failures onto service errors.
// notFound is returned for missing content.
func translateContentError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cms.ErrNotFound):
		return fmt.Errorf("%w: %v", notFound, err)
	case errors.Is(err, cms.ErrUpstream):
		return fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	default:
		return err
	}
}

// BuildFeedbackURL returns the link that opens a prefilled feedback issue for a lesson.
func BuildFeedbackURL(githubURL, section, lesson, lessonTitle string) string {
	base := strings.TrimRight(strings.TrimSpace(githubURL), "/")
	if base == "" {
		base = DefaultFeedbackRepository
	}

	title := fmt.Sprintf("Dot Code School Suggestion: Feedback for Section %s - Lesson %s: %s", section, lesson, lessonTitle)
	return base + "/issues/new?assignees=&labels=feedback&template=feedback.md&title=" + encodeURIComponent(strings.TrimSpace(title))
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes like the browser function of the same name.
func encodeURIComponent(value string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(value))
}

func toSolutionFiles(files []dto.EditorFile) []solution.File {
	result := make([]solution.File, 0, len(files))
	for _, file := range files {
		result = append(result, solution.File{
			FileName: file.FileName,
			Code:     file.Code,
			Language: file.Language,
		})
	}
	return result
}

func toEditorFiles(files []solution.File) []dto.EditorFile {
	result := make([]dto.EditorFile, 0, len(files))
	for _, file := range files {
		result = append(result, dto.EditorFile{
			FileName: file.FileName,
			Code:     file.Code,
			Language: file.Language,
		})
	}
	return result
}

func toSectionOutline(section cms.Section) dto.SectionOutline {
	lessons := make([]dto.LessonOutline, 0, len(section.Lessons))
	for _, lesson := range section.Lessons {
		lessons = append(lessons, dto.LessonOutline{Title: lesson.Title, Slug: lesson.Slug})
	}
	return dto.SectionOutline{
		Title:       section.Title,
		Description: section.Description,
		LessonTotal: section.LessonTotal,
		Lessons:     lessons,
	}
}

func checkOutcome(allMatch bool) string {
	if allMatch {
		return "match"
	}
	return "mismatch"
}
