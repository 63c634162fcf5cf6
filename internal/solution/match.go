// Package solution compares exercise files edited by a learner against the
// reference solution of a lesson.
package solution

import (
	"path"
	"strings"
	"unicode"
)

// File is a single source file shown in the lesson editor.
type File struct {
	FileName string `json:"file_name"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Result is a complete snapshot of one comparison run.
type Result struct {
	AllMatch       bool   `json:"all_match"`
	IncorrectFiles []File `json:"incorrect_files"`
}

// IncorrectNames returns the file names of the failing files in order.
func (r Result) IncorrectNames() []string {
	names := make([]string, 0, len(r.IncorrectFiles))
	for _, file := range r.IncorrectFiles {
		names = append(names, file.FileName)
	}
	return names
}

// Match compares every editor file with the solution file of the same name.
// Comments and whitespace are ignored. Files without a counterpart in the
// solution count as matching. Every file is evaluated on every call so the
// returned incorrect set is always the full current failing set.
func Match(editorContent, solution []File) Result {
	result := Result{AllMatch: true, IncorrectFiles: []File{}}
	failed := make(map[string]struct{})

	for _, file := range editorContent {
		reference, ok := find(solution, file.FileName)
		if !ok {
			continue
		}

		syntax := syntaxFor(reference.Language, file.Language, extension(file.FileName))
		if Normalize(file.Code, syntax) == Normalize(reference.Code, syntax) {
			continue
		}

		result.AllMatch = false
		if _, seen := failed[file.FileName]; seen {
			continue
		}
		failed[file.FileName] = struct{}{}
		result.IncorrectFiles = append(result.IncorrectFiles, file)
	}

	return result
}

// Normalize strips comments using the given syntax and drops all whitespace.
func Normalize(code string, syntax Syntax) string {
	return removeWhitespace(syntax.Strip(code))
}

func find(files []File, name string) (File, bool) {
	for _, file := range files {
		if file.FileName == name {
			return file, true
		}
	}
	return File{}, false
}

func extension(fileName string) string {
	return strings.TrimPrefix(path.Ext(fileName), ".")
}

func removeWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, value)
}
