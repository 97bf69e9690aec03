package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/middleware"
	"github.com/prompt-arena/arena-api/internal/models"
	"github.com/prompt-arena/arena-api/internal/repository"
)

// TeamService exposes team registration and authentication.
type TeamService interface {
	Register(ctx context.Context, payload dto.TeamRegisterRequest) (dto.TeamResponse, error)
	Login(ctx context.Context, payload dto.TeamLoginRequest) (dto.TeamLoginResponse, error)
	Get(ctx context.Context, id uint) (dto.TeamResponse, error)
}

// ErrTeamNameTaken indicates a team with the same name already exists.
var ErrTeamNameTaken = errors.New("team name already taken")

// ErrInvalidAccessCode indicates the supplied access code matches no team.
var ErrInvalidAccessCode = errors.New("invalid access code")

// TeamConfig carries token issuing configuration.
type TeamConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type teamService struct {
	teams     repository.TeamRepository
	validator *validator.Validate
	logger    zerolog.Logger
	config    TeamConfig
}

// NewTeamService constructs the team service.
func NewTeamService(teamRepo repository.TeamRepository, validate *validator.Validate, logger zerolog.Logger, cfg TeamConfig) TeamService {
	return &teamService{
		teams:     teamRepo,
		validator: validate,
		logger:    logger.With().Str("component", "team_service").Logger(),
		config:    cfg,
	}
}

func (s *teamService) Register(ctx context.Context, payload dto.TeamRegisterRequest) (dto.TeamResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeamResponse{}, err
	}

	team := models.Team{
		Name:       strings.TrimSpace(payload.Name),
		AccessCode: uuid.NewString(),
	}

	if err := s.teams.Create(ctx, &team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.TeamResponse{}, ErrTeamNameTaken
		}
		return dto.TeamResponse{}, err
	}

	s.logger.Info().Uint("team_id", team.ID).Str("name", team.Name).Msg("team registered")

	// The access code is shown exactly once, at registration.
	return dto.NewTeamResponse(team, true), nil
}

func (s *teamService) Login(ctx context.Context, payload dto.TeamLoginRequest) (dto.TeamLoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeamLoginResponse{}, err
	}

	team, err := s.teams.GetByAccessCode(ctx, strings.TrimSpace(payload.AccessCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamLoginResponse{}, ErrInvalidAccessCode
		}
		return dto.TeamLoginResponse{}, err
	}

	token, err := middleware.IssueTeamToken(s.config.JWTSecret, team.ID, s.config.TokenTTL)
	if err != nil {
		return dto.TeamLoginResponse{}, err
	}

	return dto.TeamLoginResponse{
		Token: token,
		Team:  dto.NewTeamResponse(team, false),
	}, nil
}

func (s *teamService) Get(ctx context.Context, id uint) (dto.TeamResponse, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamResponse{}, ErrTeamNotFound
		}
		return dto.TeamResponse{}, err
	}
	return dto.NewTeamResponse(team, false), nil
}
