package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/editor"
	"github.com/sajjad-mugdho/frontend/internal/middleware"
	"github.com/sajjad-mugdho/frontend/internal/models"
	"github.com/sajjad-mugdho/frontend/internal/observability"
	"github.com/sajjad-mugdho/frontend/internal/repository"
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

// ErrEditorUserRequired indicates an editor operation was attempted without an authenticated user.
var ErrEditorUserRequired = errors.New("editor user required")

// EditorService keeps the editor session of each learner and lesson.
type EditorService interface {
	Get(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error)
	SetContent(ctx context.Context, userID string, req dto.LessonPageRequest, payload dto.EditorContentRequest) (dto.EditorStateResponse, error)
	Check(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error)
	ToggleAnswer(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error)
	ToggleDiff(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error)
	SelectTab(ctx context.Context, userID string, req dto.LessonPageRequest, payload dto.EditorTabRequest) (dto.EditorStateResponse, error)
}

// EditorConfig groups the collaborators of the editor service.
type EditorConfig struct {
	Source    cms.Source
	Store     *redis.Client
	Checks    repository.CheckRecordRepository
	Publisher EventPublisher
	Validator *validator.Validate
	TTL       time.Duration
	Subject   string
}

type editorService struct {
	source    cms.Source
	store     *redis.Client
	checks    repository.CheckRecordRepository
	publisher EventPublisher
	validator *validator.Validate
	ttl       time.Duration
	subject   string
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewEditorService constructs the editor session service.
func NewEditorService(cfg EditorConfig, logger zerolog.Logger) EditorService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	subject := cfg.Subject
	if subject == "" {
		subject = "dcs.lesson.checked"
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = NewLogPublisher(logger)
	}
	validate := cfg.Validator
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}

	return &editorService{
		source:    cfg.Source,
		store:     cfg.Store,
		checks:    cfg.Checks,
		publisher: publisher,
		validator: validate,
		ttl:       ttl,
		subject:   subject,
		logger:    logger.With().Str("component", "editor_service").Logger(),
		tracer:    otel.Tracer("github.com/sajjad-mugdho/frontend/internal/service/editor"),
	}
}

// editorSession is the state plus the lesson it belongs to.
type editorSession struct {
	key    string
	ref    lessonRef
	lesson cms.Lesson
	state  editor.State
}

func (s *editorService) Get(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error) {
	session, err := s.load(ctx, userID, req)
	if err != nil {
		return dto.EditorStateResponse{}, err
	}
	return s.respond(ctx, session)
}

func (s *editorService) SetContent(ctx context.Context, userID string, req dto.LessonPageRequest, payload dto.EditorContentRequest) (dto.EditorStateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EditorStateResponse{}, err
	}
	return s.apply(ctx, userID, req, func(state editor.State) editor.State {
		return state.SetContent(toSolutionFiles(payload.Files))
	})
}

func (s *editorService) ToggleAnswer(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error) {
	return s.apply(ctx, userID, req, editor.State.ToggleAnswer)
}

func (s *editorService) ToggleDiff(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error) {
	return s.apply(ctx, userID, req, editor.State.ToggleDiff)
}

func (s *editorService) SelectTab(ctx context.Context, userID string, req dto.LessonPageRequest, payload dto.EditorTabRequest) (dto.EditorStateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EditorStateResponse{}, err
	}
	return s.apply(ctx, userID, req, func(state editor.State) editor.State {
		return state.SelectTab(*payload.TabIndex)
	})
}

func (s *editorService) Check(ctx context.Context, userID string, req dto.LessonPageRequest) (dto.EditorStateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "editor.check")
	defer span.End()

	session, err := s.load(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		return dto.EditorStateResponse{}, err
	}
	span.SetAttributes(
		attribute.String("editor.course", session.ref.Course),
		attribute.Int("editor.section_index", session.ref.SectionIndex),
		attribute.Int("editor.lesson_index", session.ref.LessonIndex),
	)

	reference, err := s.source.FetchFiles(ctx, session.lesson.Files.Solution)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "solution_fetch_failed")
		return dto.EditorStateResponse{}, translateContentError(err, ErrLessonNotFound)
	}

	var result solution.Result
	session.state, result = session.state.Check(reference)
	if err := s.save(ctx, session); err != nil {
		span.RecordError(err)
		return dto.EditorStateResponse{}, err
	}

	observability.SolutionChecks().WithLabelValues(checkOutcome(result.AllMatch), "editor").Inc()
	observability.SolutionCheckIncorrectFiles().Observe(float64(len(result.IncorrectFiles)))
	span.SetAttributes(attribute.Bool("editor.all_match", result.AllMatch))

	names := result.IncorrectNames()
	s.recordCheck(ctx, userID, session.ref, result.AllMatch, names)
	s.publishCheck(ctx, userID, session.ref, result.AllMatch, names)

	return s.respondWith(session, reference), nil
}

func (s *editorService) apply(ctx context.Context, userID string, req dto.LessonPageRequest, op func(editor.State) editor.State) (dto.EditorStateResponse, error) {
	session, err := s.load(ctx, userID, req)
	if err != nil {
		return dto.EditorStateResponse{}, err
	}

	session.state = op(session.state)
	if err := s.save(ctx, session); err != nil {
		return dto.EditorStateResponse{}, err
	}
	return s.respond(ctx, session)
}

// load reads the stored session, seeding a new one from the lesson's
// starting files when none exists or the stored value is unreadable.
func (s *editorService) load(ctx context.Context, userID string, req dto.LessonPageRequest) (editorSession, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return editorSession{}, ErrEditorUserRequired
	}
	if err := s.validator.Struct(req); err != nil {
		return editorSession{}, err
	}
	ref, err := parseLessonRef(req)
	if err != nil {
		return editorSession{}, err
	}

	lesson, err := s.source.GetLesson(ctx, ref.Course, ref.SectionIndex, ref.LessonIndex)
	if err != nil {
		return editorSession{}, translateContentError(err, ErrLessonNotFound)
	}

	session := editorSession{key: editorKey(userID, ref), ref: ref, lesson: lesson}

	payload, err := s.store.Get(ctx, session.key).Bytes()
	switch {
	case err == nil:
		if decodeErr := json.Unmarshal(payload, &session.state); decodeErr == nil {
			return session, nil
		}
		s.logger.Warn().Str("key", session.key).Msg("discarding unreadable editor state")
	case !errors.Is(err, redis.Nil):
		return editorSession{}, fmt.Errorf("load editor state: %w", err)
	}

	starting, err := s.source.FetchFiles(ctx, lesson.Files.Starting())
	if err != nil {
		return editorSession{}, translateContentError(err, ErrLessonNotFound)
	}
	session.state = editor.New(starting)
	return session, nil
}

func (s *editorService) save(ctx context.Context, session editorSession) error {
	payload, err := json.Marshal(session.state)
	if err != nil {
		return fmt.Errorf("encode editor state: %w", err)
	}
	if err := s.store.Set(ctx, session.key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store editor state: %w", err)
	}
	return nil
}

func (s *editorService) respond(ctx context.Context, session editorSession) (dto.EditorStateResponse, error) {
	if !session.state.IsAnswerOpen {
		return s.respondWith(session, nil), nil
	}

	reference, err := s.source.FetchFiles(ctx, session.lesson.Files.Solution)
	if err != nil {
		return dto.EditorStateResponse{}, translateContentError(err, ErrLessonNotFound)
	}
	return s.respondWith(session, reference), nil
}

func (s *editorService) respondWith(session editorSession, reference []solution.File) dto.EditorStateResponse {
	state := session.state
	response := dto.EditorStateResponse{
		EditorContent:   toEditorFiles(state.EditorContent),
		TabIndex:        state.TabIndex,
		ShowDiff:        state.ShowDiff,
		IsAnswerOpen:    state.IsAnswerOpen,
		DoesAnswerMatch: state.DoesAnswerMatch,
		IncorrectFiles:  toEditorFiles(state.IncorrectFiles),
		Checked:         state.Checked,
		ReadOnly:        len(session.lesson.Files.Solution) == 0,
	}
	if state.IsAnswerOpen {
		response.Solution = toEditorFiles(reference)
	}
	return response
}

func (s *editorService) recordCheck(ctx context.Context, userID string, ref lessonRef, allMatch bool, incorrect []string) {
	if s.checks == nil {
		return
	}

	encoded, err := json.Marshal(incorrect)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode incorrect files")
		return
	}

	record := models.CheckRecord{
		UserID:         userID,
		CourseSlug:     ref.Course,
		SectionIndex:   ref.SectionIndex,
		LessonIndex:    ref.LessonIndex,
		AllMatch:       allMatch,
		IncorrectFiles: datatypes.JSON(encoded),
	}
	if err := s.checks.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to persist check record")
	}
}

func (s *editorService) publishCheck(ctx context.Context, userID string, ref lessonRef, allMatch bool, incorrect []string) {
	event := LessonCheckedEvent{
		UserID:         userID,
		Course:         ref.Course,
		Section:        ref.SectionIndex + 1,
		Lesson:         ref.LessonIndex + 1,
		AllMatch:       allMatch,
		IncorrectFiles: incorrect,
		CorrelationID:  middleware.CorrelationIDFromContext(ctx),
		CheckedAt:      time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.subject, event); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish lesson check")
	}
}

func editorKey(userID string, ref lessonRef) string {
	return strings.Join([]string{
		"editor:v1",
		userID,
		ref.Course,
		strconv.Itoa(ref.SectionIndex + 1),
		strconv.Itoa(ref.LessonIndex + 1),
	}, ":")
}
