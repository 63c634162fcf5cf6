package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sajjad-mugdho/frontend/internal/solution"
)

func starting() []solution.File {
	return []solution.File{
		{FileName: "lib.rs", Code: "fn a() {}", Language: "rs"},
		{FileName: "main.rs", Code: "fn main() {}", Language: "rs"},
		{FileName: "diff", Code: "", Language: "rs"},
	}
}

func TestCheckReplacesSnapshot(t *testing.T) {
	reference := []solution.File{
		{FileName: "lib.rs", Code: "fn a() { 1 }", Language: "rs"},
		{FileName: "main.rs", Code: "fn main() {}", Language: "rs"},
	}

	state := New(starting())
	state, result := state.Check(reference)
	require.False(t, result.AllMatch)
	require.False(t, state.DoesAnswerMatch)
	require.True(t, state.Checked)
	require.Len(t, state.IncorrectFiles, 1)

	again, _ := state.Check(reference)
	require.Equal(t, state, again)

	files := starting()
	files[0].Code = "fn a() { 1 } // fixed"
	fixed, result := state.SetContent(files).Check(reference)
	require.True(t, result.AllMatch)
	require.True(t, fixed.DoesAnswerMatch)
	require.Empty(t, fixed.IncorrectFiles)
}

func TestSetContentKeepsLastSnapshotUntilNextCheck(t *testing.T) {
	reference := []solution.File{{FileName: "lib.rs", Code: "fn b() {}"}}
	state, _ := New(starting()).Check(reference)

	updated := state.SetContent([]solution.File{{FileName: "lib.rs", Code: "fn b() {}"}})
	require.Len(t, updated.IncorrectFiles, 1)
	require.False(t, updated.DoesAnswerMatch)
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	state := New(starting())
	toggled := state.ToggleAnswer().ToggleDiff()

	require.False(t, state.IsAnswerOpen)
	require.False(t, state.ShowDiff)
	require.True(t, toggled.IsAnswerOpen)
	require.True(t, toggled.ShowDiff)

	toggled.EditorContent[0].Code = "changed"
	require.Equal(t, "fn a() {}", state.EditorContent[0].Code)
}

func TestToggleDiffMovesFocus(t *testing.T) {
	state := New(starting()).SelectTab(0)

	opened := state.ToggleDiff()
	require.True(t, opened.ShowDiff)
	require.Equal(t, 2, opened.TabIndex)

	closed := opened.ToggleDiff()
	require.False(t, closed.ShowDiff)
	require.Equal(t, 1, closed.TabIndex)

	reopened := closed.SelectTab(0).ToggleDiff().SelectTab(0).ToggleDiff()
	require.Equal(t, 0, reopened.TabIndex)
}

func TestToggleDiffWithSingleFile(t *testing.T) {
	state := New([]solution.File{{FileName: "main.rs"}})

	opened := state.ToggleDiff()
	require.Equal(t, 0, opened.TabIndex)
	require.Equal(t, 0, opened.ToggleDiff().TabIndex)
}

func TestSelectTabClamps(t *testing.T) {
	state := New(starting())
	require.Equal(t, 2, state.SelectTab(9).TabIndex)
	require.Equal(t, 0, state.SelectTab(-1).TabIndex)
	require.Equal(t, 0, New(nil).SelectTab(3).TabIndex)
}
