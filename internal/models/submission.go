package models

import "time"

// Submission records a grader run for a learner repository.
type Submission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RepoName    string    `gorm:"size:255;not null;index:idx_submissions_repo_created,priority:1" json:"repo_name"`
	LogstreamID string    `gorm:"size:255;not null" json:"logstream_id"`
	CreatedAt   time.Time `gorm:"index:idx_submissions_repo_created,priority:2" json:"created_at"`
}
