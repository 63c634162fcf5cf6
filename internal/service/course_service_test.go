package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sajjad-mugdho/frontend/internal/cms"
)

func TestCourseServiceCatalog(t *testing.T) {
	svc := NewCourseService(newCourseFixture(), zerolog.Nop())
	ctx := context.Background()

	courses, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "rust-state-machine", courses[0].Slug)
	require.Equal(t, "Beginner", courses[0].Level)

	detail, err := svc.GetCourse(ctx, "rust-state-machine")
	require.NoError(t, err)
	require.Equal(t, "Rust State Machine", detail.Title)
	require.Len(t, detail.Sections, 2)
	require.Equal(t, 2, detail.Sections[0].LessonTotal)
	require.Equal(t, "setup", detail.Sections[0].Lessons[1].Slug)
}

func TestCourseServiceErrors(t *testing.T) {
	svc := NewCourseService(newCourseFixture(), zerolog.Nop())

	_, err := svc.GetCourse(context.Background(), "missing")
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.GetCourse(context.Background(), "")
	require.ErrorIs(t, err, ErrCourseNotFound)

	broken := newCourseFixture()
	broken.err = cms.ErrUpstream
	_, err = NewCourseService(broken, zerolog.Nop()).ListCourses(context.Background())
	require.ErrorIs(t, err, ErrContentUnavailable)
}
