package cms

const queryCourses = `query Courses {
  courseModuleCollection(limit: 100) {
    items {
      slug
      title
      description
      level
      language
      githubUrl
      sectionsCollection {
        total
      }
    }
  }
}`

const queryCourse = `query Course($courseSlug: String!) {
  courseModuleCollection(where: { slug: $courseSlug }, limit: 1) {
    items {
      slug
      title
      description
      level
      language
      githubUrl
      sectionsCollection {
        total
      }
    }
  }
}`

const querySection = `query Section($courseSlug: String!, $sectionIndex: Int!) {
  courseModuleCollection(where: { slug: $courseSlug }, limit: 1) {
    items {
      sectionsCollection(skip: $sectionIndex, limit: 1) {
        items {
          title
          description
          lessonsCollection {
            total
            items {
              title
              slug
            }
          }
        }
      }
    }
  }
}`

const querySections = `query Sections($courseSlug: String!) {
  courseModuleCollection(where: { slug: $courseSlug }, limit: 1) {
    items {
      sectionsCollection {
        items {
          title
          description
          lessonsCollection {
            total
            items {
              title
              slug
            }
          }
        }
      }
    }
  }
}`

const queryLesson = `query Lesson($courseSlug: String!, $sectionIndex: Int!, $lessonIndex: Int!) {
  courseModuleCollection(where: { slug: $courseSlug }, limit: 1) {
    items {
      sectionsCollection(skip: $sectionIndex, limit: 1) {
        items {
          lessonsCollection(skip: $lessonIndex, limit: 1) {
            items {
              title
              slug
              content
              files {
                sourceCollection {
                  items { title fileName url }
                }
                templateCollection {
                  items { title fileName url }
                }
                solutionCollection {
                  items { title fileName url }
                }
              }
            }
          }
        }
      }
    }
  }
}`

type courseEnvelope struct {
	CourseModuleCollection struct {
		Items []courseItem `json:"items"`
	} `json:"courseModuleCollection"`
}

type courseItem struct {
	Slug               string            `json:"slug"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Level              string            `json:"level"`
	Language           string            `json:"language"`
	GithubURL          string            `json:"githubUrl"`
	SectionsCollection *sectionContainer `json:"sectionsCollection"`
}

type sectionContainer struct {
	Total int           `json:"total"`
	Items []sectionItem `json:"items"`
}

type sectionItem struct {
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	LessonsCollection *lessonContainer `json:"lessonsCollection"`
}

type lessonContainer struct {
	Total int          `json:"total"`
	Items []lessonItem `json:"items"`
}

type lessonItem struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
	Files   *struct {
		SourceCollection   *assetCollection `json:"sourceCollection"`
		TemplateCollection *assetCollection `json:"templateCollection"`
		SolutionCollection *assetCollection `json:"solutionCollection"`
	} `json:"files"`
}

type assetCollection struct {
	Items []*assetItem `json:"items"`
}

type assetItem struct {
	Title    string `json:"title"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

func (e courseEnvelope) first() (courseItem, bool) {
	if len(e.CourseModuleCollection.Items) == 0 {
		return courseItem{}, false
	}
	return e.CourseModuleCollection.Items[0], true
}

func (c courseItem) toCourse() Course {
	course := Course{
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		Level:       c.Level,
		Language:    c.Language,
		GithubURL:   c.GithubURL,
	}
	if c.SectionsCollection != nil {
		course.SectionTotal = c.SectionsCollection.Total
	}
	return course
}

func (s sectionItem) toSection() Section {
	section := Section{
		Title:       s.Title,
		Description: s.Description,
		Lessons:     []LessonSummary{},
	}
	if s.LessonsCollection != nil {
		section.LessonTotal = s.LessonsCollection.Total
		for _, lesson := range s.LessonsCollection.Items {
			section.Lessons = append(section.Lessons, LessonSummary{Title: lesson.Title, Slug: lesson.Slug})
		}
	}
	return section
}

func (l lessonItem) toLesson() Lesson {
	lesson := Lesson{Title: l.Title, Slug: l.Slug, Content: l.Content}
	if l.Files != nil {
		lesson.Files = FileSet{
			Source:   l.Files.SourceCollection.assets(),
			Template: l.Files.TemplateCollection.assets(),
			Solution: l.Files.SolutionCollection.assets(),
		}
	}
	return lesson
}

// assets keeps the difference between a missing collection (nil) and an
// empty one.
func (c *assetCollection) assets() []Asset {
	if c == nil {
		return nil
	}
	assets := make([]Asset, 0, len(c.Items))
	for _, item := range c.Items {
		if item == nil {
			assets = append(assets, Asset{})
			continue
		}
		assets = append(assets, Asset{Title: item.Title, FileName: item.FileName, URL: item.URL})
	}
	return assets
}
