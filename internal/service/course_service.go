package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/dto"
)

// CourseService exposes the course catalog.
type CourseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	GetCourse(ctx context.Context, slug string) (dto.CourseDetailResponse, error)
}

type courseService struct {
	source cms.Source
	logger zerolog.Logger
}

// NewCourseService constructs the course catalog service.
func NewCourseService(source cms.Source, logger zerolog.Logger) CourseService {
	return &courseService{
		source: source,
		logger: logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.source.ListCourses(ctx)
	if err != nil {
		return nil, translateContentError(err, ErrCourseNotFound)
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, toCourseResponse(course))
	}
	return items, nil
}

func (s *courseService) GetCourse(ctx context.Context, slug string) (dto.CourseDetailResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return dto.CourseDetailResponse{}, ErrCourseNotFound
	}

	course, err := s.source.GetCourse(ctx, slug)
	if err != nil {
		return dto.CourseDetailResponse{}, translateContentError(err, ErrCourseNotFound)
	}

	sections, err := s.source.ListSections(ctx, slug)
	if err != nil {
		return dto.CourseDetailResponse{}, translateContentError(err, ErrCourseNotFound)
	}

	outline := make([]dto.SectionOutline, 0, len(sections))
	for _, section := range sections {
		outline = append(outline, toSectionOutline(section))
	}

	return dto.CourseDetailResponse{
		CourseResponse: toCourseResponse(course),
		GithubURL:      course.GithubURL,
		Sections:       outline,
	}, nil
}

func toCourseResponse(course cms.Course) dto.CourseResponse {
	return dto.CourseResponse{
		Slug:        course.Slug,
		Title:       course.Title,
		Description: course.Description,
		Level:       course.Level,
		Language:    course.Language,
	}
}
