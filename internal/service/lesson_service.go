package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/navigation"
	"github.com/sajjad-mugdho/frontend/internal/observability"
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

// LessonService assembles lesson pages and runs anonymous solution checks.
type LessonService interface {
	GetLessonPage(ctx context.Context, req dto.LessonPageRequest) (dto.LessonPageResponse, error)
	CheckLesson(ctx context.Context, req dto.LessonPageRequest, payload dto.CheckRequest) (dto.CheckResponse, error)
}

type lessonService struct {
	source      cms.Source
	validator   *validator.Validate
	feedbackURL string
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewLessonService constructs the lesson page service.
func NewLessonService(source cms.Source, validate *validator.Validate, feedbackURL string, logger zerolog.Logger) LessonService {
	if feedbackURL == "" {
		feedbackURL = DefaultFeedbackRepository
	}
	return &lessonService{
		source:      source,
		validator:   validate,
		feedbackURL: feedbackURL,
		logger:      logger.With().Str("component", "lesson_service").Logger(),
		tracer:      otel.Tracer("github.com/sajjad-mugdho/frontend/internal/service/lesson"),
	}
}

func (s *lessonService) GetLessonPage(ctx context.Context, req dto.LessonPageRequest) (dto.LessonPageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LessonPageResponse{}, err
	}
	ref, err := parseLessonRef(req)
	if err != nil {
		return dto.LessonPageResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "lesson.page")
	span.SetAttributes(
		attribute.String("lesson.course", ref.Course),
		attribute.Int("lesson.section_index", ref.SectionIndex),
		attribute.Int("lesson.lesson_index", ref.LessonIndex),
	)
	defer span.End()

	course, err := s.source.GetCourse(ctx, ref.Course)
	if err != nil {
		span.RecordError(err)
		return dto.LessonPageResponse{}, translateContentError(err, ErrCourseNotFound)
	}

	section, err := s.source.GetSection(ctx, ref.Course, ref.SectionIndex)
	if err != nil {
		span.RecordError(err)
		return dto.LessonPageResponse{}, translateContentError(err, ErrLessonNotFound)
	}
	if section == nil {
		return dto.LessonPageResponse{}, ErrLessonNotFound
	}

	lesson, err := s.source.GetLesson(ctx, ref.Course, ref.SectionIndex, ref.LessonIndex)
	if err != nil {
		span.RecordError(err)
		return dto.LessonPageResponse{}, translateContentError(err, ErrLessonNotFound)
	}

	var (
		previous      *cms.Section
		sections      []cms.Section
		startingFiles []solution.File
		solutionFiles []solution.File
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		previous, err = s.source.GetSection(groupCtx, ref.Course, ref.SectionIndex-1)
		return err
	})
	group.Go(func() error {
		var err error
		sections, err = s.source.ListSections(groupCtx, ref.Course)
		return err
	})
	group.Go(func() error {
		var err error
		startingFiles, err = s.source.FetchFiles(groupCtx, lesson.Files.Starting())
		return err
	})
	group.Go(func() error {
		var err error
		solutionFiles, err = s.source.FetchFiles(groupCtx, lesson.Files.Solution)
		return err
	})
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lesson_assembly_failed")
		return dto.LessonPageResponse{}, translateContentError(err, ErrLessonNotFound)
	}

	position := navigation.Position{
		SectionIndex:       ref.SectionIndex,
		LessonIndex:        ref.LessonIndex,
		SectionLessonTotal: section.LessonTotal,
		CourseSectionTotal: course.SectionTotal,
	}
	if previous != nil {
		position.PreviousSectionLessonTotal = previous.LessonTotal
	}
	links := navigation.Compute(ref.Course, position)

	githubURL := course.GithubURL
	if githubURL == "" {
		githubURL = s.feedbackURL
	}

	outline := make([]dto.SectionOutline, 0, len(sections))
	for _, item := range sections {
		outline = append(outline, toSectionOutline(item))
	}

	return dto.LessonPageResponse{
		Course: dto.LessonCourse{
			Slug:      course.Slug,
			Title:     course.Title,
			GithubURL: course.GithubURL,
		},
		Section: toSectionOutline(*section),
		Lesson: dto.LessonContent{
			Title:   lesson.Title,
			Slug:    lesson.Slug,
			Content: lesson.Content,
		},
		StartingFiles: toEditorFiles(startingFiles),
		Solution:      toEditorFiles(solutionFiles),
		ReadOnly:      len(solutionFiles) == 0,
		FeedbackURL:   BuildFeedbackURL(githubURL, req.Section, req.Lesson, lesson.Title),
		Prev:          links.Prev,
		Next:          links.Next,
		Sections:      outline,
	}, nil
}

func (s *lessonService) CheckLesson(ctx context.Context, req dto.LessonPageRequest, payload dto.CheckRequest) (dto.CheckResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CheckResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.CheckResponse{}, err
	}
	ref, err := parseLessonRef(req)
	if err != nil {
		return dto.CheckResponse{}, err
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "lesson.check")
	defer span.End()

	lesson, err := s.source.GetLesson(ctx, ref.Course, ref.SectionIndex, ref.LessonIndex)
	if err != nil {
		span.RecordError(err)
		return dto.CheckResponse{}, translateContentError(err, ErrLessonNotFound)
	}

	reference, err := s.source.FetchFiles(ctx, lesson.Files.Solution)
	if err != nil {
		span.RecordError(err)
		return dto.CheckResponse{}, translateContentError(err, ErrLessonNotFound)
	}

	result := solution.Match(toSolutionFiles(payload.Files), reference)

	observability.SolutionChecks().WithLabelValues(checkOutcome(result.AllMatch), "anonymous").Inc()
	observability.SolutionCheckIncorrectFiles().Observe(float64(len(result.IncorrectFiles)))
	span.SetAttributes(
		attribute.Bool("lesson.all_match", result.AllMatch),
		attribute.Int("lesson.incorrect_files", len(result.IncorrectFiles)),
	)

	s.logger.Debug().
		Str("course", ref.Course).
		Int("section_index", ref.SectionIndex).
		Int("lesson_index", ref.LessonIndex).
		Bool("all_match", result.AllMatch).
		Dur("duration", time.Since(start)).
		Msg("anonymous solution check")

	return dto.CheckResponse{
		AllMatch:       result.AllMatch,
		IncorrectFiles: toEditorFiles(result.IncorrectFiles),
	}, nil
}
