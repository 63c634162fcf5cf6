package dto

// LatestSubmissionResponse points to the grader log stream of the newest submission.
type LatestSubmissionResponse struct {
	LogstreamID string `json:"logstream_id"`
}
