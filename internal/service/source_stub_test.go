package service

import (
	"context"
	"fmt"

	"github.com/sajjad-mugdho/frontend/internal/cms"
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

type stubSource struct {
	courses  []cms.Course
	sections map[string][]cms.Section
	lessons  map[string][][]cms.Lesson
	files    map[string]string
	err      error
}

func (s *stubSource) ListCourses(context.Context) ([]cms.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.courses, nil
}

func (s *stubSource) GetCourse(_ context.Context, slug string) (cms.Course, error) {
	if s.err != nil {
		return cms.Course{}, s.err
	}
	for _, course := range s.courses {
		if course.Slug == slug {
			return course, nil
		}
	}
	return cms.Course{}, fmt.Errorf("course %q: %w", slug, cms.ErrNotFound)
}

func (s *stubSource) GetSection(ctx context.Context, slug string, index int) (*cms.Section, error) {
	if _, err := s.GetCourse(ctx, slug); err != nil {
		return nil, err
	}
	sections := s.sections[slug]
	if index < 0 || index >= len(sections) {
		return nil, nil
	}
	section := sections[index]
	return &section, nil
}

func (s *stubSource) ListSections(ctx context.Context, slug string) ([]cms.Section, error) {
	if _, err := s.GetCourse(ctx, slug); err != nil {
		return nil, err
	}
	return s.sections[slug], nil
}

func (s *stubSource) GetLesson(ctx context.Context, slug string, sectionIndex, lessonIndex int) (cms.Lesson, error) {
	if _, err := s.GetCourse(ctx, slug); err != nil {
		return cms.Lesson{}, err
	}
	sections := s.lessons[slug]
	if sectionIndex < 0 || sectionIndex >= len(sections) {
		return cms.Lesson{}, cms.ErrNotFound
	}
	lessons := sections[sectionIndex]
	if lessonIndex < 0 || lessonIndex >= len(lessons) {
		return cms.Lesson{}, cms.ErrNotFound
	}
	return lessons[lessonIndex], nil
}

func (s *stubSource) FetchFiles(_ context.Context, assets []cms.Asset) ([]solution.File, error) {
	if s.err != nil {
		return nil, s.err
	}
	files := make([]solution.File, 0, len(assets))
	for _, asset := range assets {
		code, ok := s.files[asset.URL]
		if !ok && asset.URL != "" {
			return nil, fmt.Errorf("%w: asset %s", cms.ErrUpstream, asset.URL)
		}
		files = append(files, solution.File{FileName: asset.Title, Code: code, Language: asset.Language()})
	}
	return files, nil
}

func asset(name string) cms.Asset {
	return cms.Asset{Title: name, FileName: name, URL: "https://cdn.test/template/" + name}
}

func solutionAsset(name string) cms.Asset {
	return cms.Asset{Title: name, FileName: name, URL: "https://cdn.test/solution/" + name}
}

// newCourseFixture returns a course with two sections: the first holds two
// lessons (the second read-only), the second holds one lesson.
func newCourseFixture() *stubSource {
	return &stubSource{
		courses: []cms.Course{
			{
				Slug:         "rust-state-machine",
				Title:        "Rust State Machine",
				Description:  "Build a simple state machine",
				Level:        "Beginner",
				Language:     "Rust",
				GithubURL:    "https://github.com/shawntabrizi/rust-state-machine/",
				SectionTotal: 2,
			},
			{Slug: "no-repo", Title: "No Repo", SectionTotal: 1},
		},
		sections: map[string][]cms.Section{
			"rust-state-machine": {
				{Title: "Introduction", LessonTotal: 2, Lessons: []cms.LessonSummary{{Title: "Welcome", Slug: "welcome"}, {Title: "Setup", Slug: "setup"}}},
				{Title: "Balances", LessonTotal: 1, Lessons: []cms.LessonSummary{{Title: "Pallet", Slug: "pallet"}}},
			},
			"no-repo": {
				{Title: "Only", LessonTotal: 1, Lessons: []cms.LessonSummary{{Title: "Solo", Slug: "solo"}}},
			},
		},
		lessons: map[string][][]cms.Lesson{
			"rust-state-machine": {
				{
					{
						Title:   "Welcome",
						Slug:    "welcome",
						Content: "# Welcome",
						Files: cms.FileSet{
							Template: []cms.Asset{asset("main.rs"), asset("Cargo.toml")},
							Solution: []cms.Asset{solutionAsset("main.rs"), solutionAsset("Cargo.toml")},
						},
					},
					{
						Title: "Setup",
						Slug:  "setup",
						Files: cms.FileSet{
							Source:   []cms.Asset{asset("README.md")},
							Template: []cms.Asset{asset("main.rs")},
						},
					},
				},
				{
					{
						Title: "Pallet",
						Slug:  "pallet",
						Files: cms.FileSet{
							Template: []cms.Asset{asset("balances.rs")},
							Solution: []cms.Asset{solutionAsset("balances.rs")},
						},
					},
				},
			},
			"no-repo": {
				{{Title: "Solo", Slug: "solo"}},
			},
		},
		files: map[string]string{
			"https://cdn.test/template/main.rs":     "fn main() {\n    todo!()\n}",
			"https://cdn.test/template/Cargo.toml":  "[package]\nname = \"rsm\"",
			"https://cdn.test/template/README.md":   "# Setup",
			"https://cdn.test/solution/main.rs":     "fn main() {\n    println!(\"hi\");\n}",
			"https://cdn.test/solution/Cargo.toml":  "[package]\nname = \"rsm\" # crate",
			"https://cdn.test/template/balances.rs": "pub struct Pallet;",
			"https://cdn.test/solution/balances.rs": "pub struct Pallet { balances: u128 }",
		},
	}
}
