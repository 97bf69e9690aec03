package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/models"
	"github.com/prompt-arena/arena-api/internal/repository"
)

// ChallengeService manages the challenge catalog.
type ChallengeService interface {
	Create(ctx context.Context, payload dto.ChallengeCreateRequest) (dto.ChallengeResponse, error)
	Update(ctx context.Context, id uint, payload dto.ChallengeUpdateRequest) (dto.ChallengeResponse, error)
	Get(ctx context.Context, id uint) (dto.ChallengeResponse, error)
	List(ctx context.Context) ([]dto.ChallengeResponse, error)
}

// ErrInvalidCriteria indicates the criteria payload failed schema validation.
var ErrInvalidCriteria = errors.New("invalid criteria")

// criteriaSchema rejects structurally broken criteria payloads up front.
// Unknown keys are allowed through: the scorer skips anything it does not
// recognise, which keeps old catalogs working as the rubric grows.
const criteriaSchema = `{
	"type": "object",
	"properties": {
		"exact_words": {"type": "integer", "minimum": 1},
		"max_words": {"type": "integer", "minimum": 1},
		"require_price": {"type": "boolean"},
		"required_elements": {"type": "array", "items": {"type": "string"}},
		"forbidden_words": {"type": "array", "items": {"type": "string"}},
		"sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]}
	}
}`

type challengeService struct {
	challenges repository.ChallengeRepository
	validator  *validator.Validate
	schema     *jsonschema.Schema
	logger     zerolog.Logger
}

// NewChallengeService constructs the challenge service.
func NewChallengeService(challengeRepo repository.ChallengeRepository, validate *validator.Validate, logger zerolog.Logger) (ChallengeService, error) {
	schema, err := jsonschema.CompileString("criteria.schema.json", criteriaSchema)
	if err != nil {
		return nil, fmt.Errorf("compile criteria schema: %w", err)
	}

	return &challengeService{
		challenges: challengeRepo,
		validator:  validate,
		schema:     schema,
		logger:     logger.With().Str("component", "challenge_service").Logger(),
	}, nil
}

func (s *challengeService) Create(ctx context.Context, payload dto.ChallengeCreateRequest) (dto.ChallengeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChallengeResponse{}, err
	}

	if err := s.validateCriteria(payload.Criteria); err != nil {
		return dto.ChallengeResponse{}, err
	}

	challenge := models.Challenge{
		Round:       payload.Round,
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
		TaskType:    payload.TaskType,
		Criteria:    datatypes.JSONMap(payload.Criteria),
		Active:      true,
	}
	if payload.Active != nil {
		challenge.Active = *payload.Active
	}

	if err := s.challenges.Create(ctx, &challenge); err != nil {
		return dto.ChallengeResponse{}, err
	}

	return dto.NewChallengeResponse(challenge), nil
}

func (s *challengeService) Update(ctx context.Context, id uint, payload dto.ChallengeUpdateRequest) (dto.ChallengeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChallengeResponse{}, err
	}

	challenge, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ChallengeResponse{}, ErrChallengeNotFound
		}
		return dto.ChallengeResponse{}, err
	}

	if payload.Title != nil {
		challenge.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		challenge.Description = *payload.Description
	}
	if payload.Criteria != nil {
		if err := s.validateCriteria(payload.Criteria); err != nil {
			return dto.ChallengeResponse{}, err
		}
		challenge.Criteria = datatypes.JSONMap(payload.Criteria)
	}
	if payload.Active != nil {
		challenge.Active = *payload.Active
	}

	if err := s.challenges.Update(ctx, &challenge); err != nil {
		return dto.ChallengeResponse{}, err
	}

	return dto.NewChallengeResponse(challenge), nil
}

func (s *challengeService) Get(ctx context.Context, id uint) (dto.ChallengeResponse, error) {
	challenge, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ChallengeResponse{}, ErrChallengeNotFound
		}
		return dto.ChallengeResponse{}, err
	}
	return dto.NewChallengeResponse(challenge), nil
}

func (s *challengeService) List(ctx context.Context) ([]dto.ChallengeResponse, error) {
	challenges, err := s.challenges.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChallengeResponse, 0, len(challenges))
	for _, challenge := range challenges {
		responses = append(responses, dto.NewChallengeResponse(challenge))
	}
	return responses, nil
}

func (s *challengeService) validateCriteria(criteria map[string]interface{}) error {
	if criteria == nil {
		return nil
	}
	if err := s.schema.Validate(map[string]interface{}(criteria)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCriteria, err)
	}
	return nil
}
