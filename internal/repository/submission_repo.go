package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sajjad-mugdho/frontend/internal/models"
)

// SubmissionRepository exposes grader submission lookups.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	LatestByRepo(ctx context.Context, repoName string) (models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository constructs a submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) LatestByRepo(ctx context.Context, repoName string) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Where("repo_name = ?", repoName).
		Order("created_at DESC").
		Order("id DESC").
		First(&submission).Error
	return submission, err
}
