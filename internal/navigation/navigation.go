// Package navigation computes links between adjacent lessons of a course.
package navigation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPosition indicates a section or lesson path segment is not a positive number.
var ErrInvalidPosition = errors.New("invalid lesson position")

// Position locates a lesson inside a course. Indices are 0-based; the totals
// are resolved by the caller and are 0 when unknown.
type Position struct {
	SectionIndex               int
	LessonIndex                int
	SectionLessonTotal         int
	PreviousSectionLessonTotal int
	CourseSectionTotal         int
}

// Links holds the paths of the neighbouring lessons. Empty means no link.
type Links struct {
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

// Compute returns the previous and next lesson paths for pos.
func Compute(course string, pos Position) Links {
	if pos.SectionLessonTotal <= 0 {
		return Links{}
	}
	return Links{
		Prev: previous(course, pos),
		Next: next(course, pos),
	}
}

func previous(course string, pos Position) string {
	switch {
	case pos.LessonIndex > 0:
		return path(course, pos.SectionIndex+1, pos.LessonIndex)
	case pos.SectionIndex > 0:
		// An unknown previous total yields lesson 0, matching the links the
		// site has always produced.
		return path(course, pos.SectionIndex, pos.PreviousSectionLessonTotal)
	default:
		return ""
	}
}

func next(course string, pos Position) string {
	switch {
	case pos.LessonIndex < pos.SectionLessonTotal-1:
		return path(course, pos.SectionIndex+1, pos.LessonIndex+2)
	case pos.SectionIndex < pos.CourseSectionTotal-1:
		return path(course, pos.SectionIndex+2, 1)
	default:
		return ""
	}
}

// LessonPath renders the path of the lesson at the given 0-based indices.
func LessonPath(course string, sectionIndex, lessonIndex int) string {
	return path(course, sectionIndex+1, lessonIndex+1)
}

func path(course string, section, lesson int) string {
	return fmt.Sprintf("%s/section/%d/lesson/%d", course, section, lesson)
}

// ParseIndices converts 1-based section and lesson path segments to 0-based indices.
func ParseIndices(section, lesson string) (int, int, error) {
	sectionIndex, err := parseSegment(section)
	if err != nil {
		return 0, 0, fmt.Errorf("section %q: %w", section, err)
	}
	lessonIndex, err := parseSegment(lesson)
	if err != nil {
		return 0, 0, fmt.Errorf("lesson %q: %w", lesson, err)
	}
	return sectionIndex, lessonIndex, nil
}

func parseSegment(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 1 {
		return 0, ErrInvalidPosition
	}
	return parsed - 1, nil
}
