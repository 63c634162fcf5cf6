package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/dto"
)

func newTestLessonService(source cms.Source) LessonService {
	return NewLessonService(source, validator.New(validator.WithRequiredStructEnabled()), "", zerolog.Nop())
}

func TestLessonServiceBuildsFirstLessonPage(t *testing.T) {
	svc := newTestLessonService(newCourseFixture())

	page, err := svc.GetLessonPage(context.Background(), dto.LessonPageRequest{Course: "rust-state-machine", Section: "1", Lesson: "1"})
	require.NoError(t, err)

	require.Equal(t, "Welcome", page.Lesson.Title)
	require.Equal(t, "Introduction", page.Section.Title)
	require.False(t, page.ReadOnly)
	require.Len(t, page.StartingFiles, 2)
	require.Equal(t, "main.rs", page.StartingFiles[0].FileName)
	require.Equal(t, "rs", page.StartingFiles[0].Language)
	require.Len(t, page.Solution, 2)
	require.Empty(t, page.Prev)
	require.Equal(t, "rust-state-machine/section/1/lesson/2", page.Next)
	require.Len(t, page.Sections, 2)
	require.Equal(t,
		"https://github.com/shawntabrizi/rust-state-machine/issues/new?assignees=&labels=feedback&template=feedback.md&title=Dot%20Code%20School%20Suggestion%3A%20Feedback%20for%20Section%201%20-%20Lesson%201%3A%20Welcome",
		page.FeedbackURL,
	)
}

func TestLessonServiceReadOnlyLessonUsesSourceFiles(t *testing.T) {
	svc := newTestLessonService(newCourseFixture())

	page, err := svc.GetLessonPage(context.Background(), dto.LessonPageRequest{Course: "rust-state-machine", Section: "1", Lesson: "2"})
	require.NoError(t, err)

	require.True(t, page.ReadOnly)
	require.Empty(t, page.Solution)
	require.Len(t, page.StartingFiles, 1)
	require.Equal(t, "README.md", page.StartingFiles[0].FileName)
	require.Equal(t, "rust-state-machine/section/1/lesson/1", page.Prev)
	require.Equal(t, "rust-state-machine/section/2/lesson/1", page.Next)
}

func TestLessonServiceLinksBackIntoPreviousSection(t *testing.T) {
	svc := newTestLessonService(newCourseFixture())

	page, err := svc.GetLessonPage(context.Background(), dto.LessonPageRequest{Course: "rust-state-machine", Section: "2", Lesson: "1"})
	require.NoError(t, err)

	require.Equal(t, "rust-state-machine/section/1/lesson/2", page.Prev)
	require.Empty(t, page.Next)
}

func TestLessonServiceFallsBackToDefaultFeedbackRepository(t *testing.T) {
	svc := newTestLessonService(newCourseFixture())

	page, err := svc.GetLessonPage(context.Background(), dto.LessonPageRequest{Course: "no-repo", Section: "1", Lesson: "1"})
	require.NoError(t, err)
	require.Contains(t, page.FeedbackURL, "https://github.com/dotcodeschool/frontend/issues/new?")
	require.True(t, page.ReadOnly)
	require.Empty(t, page.StartingFiles)
}

func TestLessonServiceErrors(t *testing.T) {
	svc := newTestLessonService(newCourseFixture())
	ctx := context.Background()

	_, err := svc.GetLessonPage(ctx, dto.LessonPageRequest{Course: "unknown", Section: "1", Lesson: "1"})
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.GetLessonPage(ctx, dto.LessonPageRequest{Course: "rust-state-machine", Section: "9", Lesson: "1"})
	require.ErrorIs(t, err, ErrLessonNotFound)

	_, err = svc.GetLessonPage(ctx, dto.LessonPageRequest{Course: "rust-state-machine", Section: "1", Lesson: "7"})
	require.ErrorIs(t, err, ErrLessonNotFound)

	_, err = svc.GetLessonPage(ctx, dto.LessonPageRequest{Course: "rust-state-machine", Section: "0", Lesson: "1"})
	require.ErrorIs(t, err, ErrInvalidLessonPosition)

	_, err = svc.GetLessonPage(ctx, dto.LessonPageRequest{Course: "rust-state-machine", Section: "", Lesson: "1"})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	broken := newCourseFixture()
	broken.err = cms.ErrUpstream
	_, err = newTestLessonService(broken).GetLessonPage(ctx, dto.LessonPageRequest{Course: "rust-state-machine", Section: "1", Lesson: "1"})
	require.ErrorIs(t, err, ErrContentUnavailable)
}

func TestLessonServiceCheckLesson(t *testing.T) {
	svc := newTestLessonService(newCourseFixture())
	req := dto.LessonPageRequest{Course: "rust-state-machine", Section: "1", Lesson: "1"}

	result, err := svc.CheckLesson(context.Background(), req, dto.CheckRequest{Files: []dto.EditorFile{
		{FileName: "main.rs", Code: "fn main() { println!(\"hi\"); } // done", Language: "rs"},
		{FileName: "Cargo.toml", Code: "[package]\nname = \"rsm\"", Language: "toml"},
	}})
	require.NoError(t, err)
	require.True(t, result.AllMatch)
	require.Empty(t, result.IncorrectFiles)

	result, err = svc.CheckLesson(context.Background(), req, dto.CheckRequest{Files: []dto.EditorFile{
		{FileName: "main.rs", Code: "fn main() { todo!() }", Language: "rs"},
		{FileName: "notes.txt", Code: "anything"},
	}})
	require.NoError(t, err)
	require.False(t, result.AllMatch)
	require.Len(t, result.IncorrectFiles, 1)
	require.Equal(t, "main.rs", result.IncorrectFiles[0].FileName)

	result, err = svc.CheckLesson(context.Background(), req, dto.CheckRequest{})
	require.NoError(t, err)
	require.True(t, result.AllMatch)
	require.NotNil(t, result.IncorrectFiles)
}

func TestBuildFeedbackURLEscapesLikeURIComponent(t *testing.T) {
	got := BuildFeedbackURL("", "3", "4", "Hello (World)! & more")
	require.Equal(t,
		"https://github.com/dotcodeschool/frontend/issues/new?assignees=&labels=feedback&template=feedback.md&title=Dot%20Code%20School%20Suggestion%3A%20Feedback%20for%20Section%203%20-%20Lesson%204%3A%20Hello%20(World)!%20%26%20more",
		got,
	)
}

func TestBuildFeedbackURLTrimsWhitespaceAndSlash(t *testing.T) {
	got := BuildFeedbackURL(" https://github.com/org/repo/ ", "1", "2", "Intro \n")
	require.Equal(t,
		"https://github.com/org/repo/issues/new?assignees=&labels=feedback&template=feedback.md&title=Dot%20Code%20School%20Suggestion%3A%20Feedback%20for%20Section%201%20-%20Lesson%202%3A%20Intro",
		got,
	)
	require.NotContains(t, got, "%0A")
}
