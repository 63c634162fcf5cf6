package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/config"
	"github.com/sajjad-mugdho/frontend/internal/handler"
	"github.com/sajjad-mugdho/frontend/internal/models"
	"github.com/sajjad-mugdho/frontend/internal/repository"
	"github.com/sajjad-mugdho/frontend/internal/router"
	"github.com/sajjad-mugdho/frontend/internal/service"
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

type fakeContent struct {
	failing bool
}

var introCourse = cms.Course{
	Slug:         "intro-rust",
	Title:        "Intro to Rust",
	Description:  "First steps",
	Level:        "Beginner",
	Language:     "Rust",
	GithubURL:    "https://github.com/dotcodeschool/intro-rust",
	SectionTotal: 1,
}

var introSection = cms.Section{
	Title:       "Basics",
	LessonTotal: 2,
	Lessons:     []cms.LessonSummary{{Title: "Hello", Slug: "hello"}, {Title: "Reading", Slug: "reading"}},
}

var introLessons = []cms.Lesson{
	{
		Title:   "Hello",
		Slug:    "hello",
		Content: "Print a greeting.",
		Files: cms.FileSet{
			Template: []cms.Asset{{Title: "main.rs", FileName: "main.rs", URL: "https://cdn.test/t/main.rs"}},
			Solution: []cms.Asset{{Title: "main.rs", FileName: "main.rs", URL: "https://cdn.test/s/main.rs"}},
		},
	},
	{
		Title:   "Reading",
		Slug:    "reading",
		Content: "Nothing to code.",
		Files: cms.FileSet{
			Template: []cms.Asset{{Title: "main.rs", FileName: "main.rs", URL: "https://cdn.test/t/main.rs"}},
		},
	},
}

var contentFiles = map[string]string{
	"https://cdn.test/t/main.rs": "fn main() {}",
	"https://cdn.test/s/main.rs": "fn main() {\n    println!(\"hello\");\n}",
}

func (f fakeContent) check(slug string) error {
	if f.failing {
		return fmt.Errorf("%w: status 503", cms.ErrUpstream)
	}
	if slug != introCourse.Slug {
		return cms.ErrNotFound
	}
	return nil
}

func (f fakeContent) ListCourses(context.Context) ([]cms.Course, error) {
	if f.failing {
		return nil, cms.ErrUpstream
	}
	return []cms.Course{introCourse}, nil
}

func (f fakeContent) GetCourse(_ context.Context, slug string) (cms.Course, error) {
	if err := f.check(slug); err != nil {
		return cms.Course{}, err
	}
	return introCourse, nil
}

func (f fakeContent) GetSection(_ context.Context, slug string, index int) (*cms.Section, error) {
	if err := f.check(slug); err != nil {
		return nil, err
	}
	if index != 0 {
		return nil, nil
	}
	section := introSection
	return &section, nil
}

func (f fakeContent) ListSections(_ context.Context, slug string) ([]cms.Section, error) {
	if err := f.check(slug); err != nil {
		return nil, err
	}
	return []cms.Section{introSection}, nil
}

func (f fakeContent) GetLesson(_ context.Context, slug string, sectionIndex, lessonIndex int) (cms.Lesson, error) {
	if err := f.check(slug); err != nil {
		return cms.Lesson{}, err
	}
	if sectionIndex != 0 || lessonIndex < 0 || lessonIndex >= len(introLessons) {
		return cms.Lesson{}, cms.ErrNotFound
	}
	return introLessons[lessonIndex], nil
}

func (f fakeContent) FetchFiles(_ context.Context, assets []cms.Asset) ([]solution.File, error) {
	files := make([]solution.File, 0, len(assets))
	for _, asset := range assets {
		files = append(files, solution.File{FileName: asset.Title, Code: contentFiles[asset.URL], Language: asset.Language()})
	}
	return files, nil
}

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

// setupApp wires the real services behind the router. Requests carrying an
// X-Test-User header are treated as authenticated by that user.
func setupApp(t *testing.T, content cms.Source) testApp {
	t.Helper()
	return setupAppWith(t, content, nil)
}

// setupAppWith lets a test adjust the router dependencies before registration.
func setupAppWith(t *testing.T, content cms.Source, configure func(*router.Dependencies)) testApp {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Submission{}, &models.UserPreference{}, &models.CourseReminder{}, &models.CheckRecord{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	store := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	editorService := service.NewEditorService(service.EditorConfig{
		Source:    content,
		Store:     store,
		Checks:    repository.NewCheckRecordRepository(db),
		Publisher: service.NewLogPublisher(logger),
		Validator: validate,
		TTL:       time.Hour,
	}, logger)

	deps := router.Dependencies{
		CourseHandler: handler.NewCourseHandler(service.NewCourseService(content, logger), logger),
		LessonHandler: handler.NewLessonHandler(service.NewLessonService(content, validate, "", logger), logger),
		EditorHandler: handler.NewEditorHandler(editorService, logger),
		PreferenceHandler: handler.NewPreferenceHandler(service.NewPreferenceService(
			repository.NewPreferenceRepository(db),
			repository.NewReminderRepository(db),
			validate,
			logger,
		), logger),
		SubmissionHandler: handler.NewSubmissionHandler(service.NewSubmissionService(repository.NewSubmissionRepository(db), logger), logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			if user := c.Get("X-Test-User"); user != "" {
				c.Locals("user_id", user)
			}
			return c.Next()
		},
	}
	if configure != nil {
		configure(&deps)
	}

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", AppEnv: "test"}, deps)

	return testApp{app: app, db: db}
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
}

func (a testApp) do(t *testing.T, method, path, user string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func decodeData(t *testing.T, env envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, target))
}
