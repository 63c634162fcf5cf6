package dto

// EditorContentRequest replaces the files held by an editor session.
type EditorContentRequest struct {
	Files []EditorFile `json:"files" validate:"required,max=64,dive"`
}

// EditorTabRequest focuses a tab of the editor session.
type EditorTabRequest struct {
	TabIndex *int `json:"tab_index" validate:"required,gte=0"`
}

// EditorStateResponse is the persisted editor session of a learner. The
// solution is only included while the answer panel is open.
type EditorStateResponse struct {
	EditorContent   []EditorFile `json:"editor_content"`
	TabIndex        int          `json:"tab_index"`
	ShowDiff        bool         `json:"show_diff"`
	IsAnswerOpen    bool         `json:"is_answer_open"`
	DoesAnswerMatch bool         `json:"does_answer_match"`
	IncorrectFiles  []EditorFile `json:"incorrect_files"`
	Checked         bool         `json:"checked"`
	ReadOnly        bool         `json:"read_only"`
	Solution        []EditorFile `json:"solution,omitempty"`
}
