package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/repository"
	"github.com/prompt-arena/arena-api/internal/scoring"
)

// ProgressService derives a team's round-unlock state from its history.
type ProgressService interface {
	Get(ctx context.Context, teamID uint) (dto.ProgressResponse, error)
}

type progressService struct {
	submissions repository.SubmissionRepository
	teams       repository.TeamRepository
	logger      zerolog.Logger
}

// NewProgressService constructs the progress service.
func NewProgressService(submissionRepo repository.SubmissionRepository, teamRepo repository.TeamRepository, logger zerolog.Logger) ProgressService {
	return &progressService{
		submissions: submissionRepo,
		teams:       teamRepo,
		logger:      logger.With().Str("component", "progress_service").Logger(),
	}
}

func (s *progressService) Get(ctx context.Context, teamID uint) (dto.ProgressResponse, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProgressResponse{}, ErrTeamNotFound
		}
		return dto.ProgressResponse{}, err
	}

	history, err := s.submissions.List(ctx, repository.SubmissionFilter{TeamID: &teamID})
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	attempts := make([]scoring.Attempt, 0, len(history))
	for _, submission := range history {
		attempts = append(attempts, scoring.Attempt{Round: submission.Round, Score: submission.Score})
	}

	return dto.ProgressResponse{
		TeamID:     team.ID,
		TotalScore: team.TotalScore,
		Rounds:     scoring.ComputeProgress(attempts),
	}, nil
}
