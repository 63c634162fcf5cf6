// Package editor models the lesson editor session as a plain value. Every
// operation returns a new State; nothing is shared between sessions.
package editor

import (
	"github.com/sajjad-mugdho/frontend/internal/solution"
)

// State is the editor session of one learner on one lesson.
type State struct {
	EditorContent   []solution.File `json:"editor_content"`
	TabIndex        int             `json:"tab_index"`
	ShowDiff        bool            `json:"show_diff"`
	IsAnswerOpen    bool            `json:"is_answer_open"`
	DoesAnswerMatch bool            `json:"does_answer_match"`
	IncorrectFiles  []solution.File `json:"incorrect_files"`
	Checked         bool            `json:"checked"`
}

// New returns the initial state for the given starting files.
func New(initial []solution.File) State {
	return State{
		EditorContent:  cloneFiles(initial),
		IncorrectFiles: []solution.File{},
	}
}

// SetContent replaces the editor files. The last check snapshot is kept
// until the next explicit check.
func (s State) SetContent(files []solution.File) State {
	s.EditorContent = cloneFiles(files)
	s.TabIndex = clampTab(s.TabIndex, len(s.EditorContent))
	s.IncorrectFiles = cloneFiles(s.IncorrectFiles)
	return s
}

// Check compares the editor content with the solution and replaces the
// previous result with the fresh snapshot.
func (s State) Check(reference []solution.File) (State, solution.Result) {
	result := solution.Match(s.EditorContent, reference)
	s.EditorContent = cloneFiles(s.EditorContent)
	s.DoesAnswerMatch = result.AllMatch
	s.IncorrectFiles = cloneFiles(result.IncorrectFiles)
	s.Checked = true
	return s, result
}

// ToggleAnswer opens or closes the reference answer panel.
func (s State) ToggleAnswer() State {
	s = s.copy()
	s.IsAnswerOpen = !s.IsAnswerOpen
	return s
}

// ToggleDiff opens or closes the diff tab. Opening focuses the last tab;
// closing while the last tab is focused moves focus to the tab before it.
func (s State) ToggleDiff() State {
	s = s.copy()
	s.ShowDiff = !s.ShowDiff

	last := len(s.EditorContent) - 1
	if s.ShowDiff {
		if last >= 0 {
			s.TabIndex = last
		}
	} else if s.TabIndex == last && last-1 >= 0 {
		s.TabIndex = last - 1
	}
	return s
}

// SelectTab focuses the tab at index, clamped to the available files.
func (s State) SelectTab(index int) State {
	s = s.copy()
	s.TabIndex = clampTab(index, len(s.EditorContent))
	return s
}

func (s State) copy() State {
	s.EditorContent = cloneFiles(s.EditorContent)
	s.IncorrectFiles = cloneFiles(s.IncorrectFiles)
	return s
}

func clampTab(index, count int) int {
	if index < 0 || count == 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}

func cloneFiles(files []solution.File) []solution.File {
	cloned := make([]solution.File, len(files))
	copy(cloned, files)
	return cloned
}
