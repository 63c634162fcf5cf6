package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sajjad-mugdho/frontend/internal/dto"
	"github.com/sajjad-mugdho/frontend/internal/repository"
)

var (
	// ErrRepoNameRequired indicates the repository name query parameter is missing.
	ErrRepoNameRequired = errors.New("repo_name parameter is required")
	// ErrSubmissionNotFound indicates no submission exists for the repository.
	ErrSubmissionNotFound = errors.New("no submission found for the given repository")
)

// SubmissionService answers grader submission lookups.
type SubmissionService interface {
	Latest(ctx context.Context, repoName string) (dto.LatestSubmissionResponse, error)
}

type submissionService struct {
	repo   repository.SubmissionRepository
	logger zerolog.Logger
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(repo repository.SubmissionRepository, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		repo:   repo,
		logger: logger.With().Str("component", "submission_service").Logger(),
	}
}

func (s *submissionService) Latest(ctx context.Context, repoName string) (dto.LatestSubmissionResponse, error) {
	repoName = strings.TrimSpace(repoName)
	if repoName == "" {
		return dto.LatestSubmissionResponse{}, ErrRepoNameRequired
	}

	submission, err := s.repo.LatestByRepo(ctx, repoName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LatestSubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.LatestSubmissionResponse{}, err
	}

	return dto.LatestSubmissionResponse{LogstreamID: submission.LogstreamID}, nil
}
