package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/models"
	"github.com/prompt-arena/arena-api/internal/observability"
	"github.com/prompt-arena/arena-api/internal/repository"
	"github.com/prompt-arena/arena-api/internal/scoring"
	"github.com/prompt-arena/arena-api/pkg/generation"
)

// ScoringService runs the full submit-and-score flow for team submissions.
type ScoringService interface {
	Submit(ctx context.Context, teamID uint, payload dto.SubmitRequest) (dto.SubmissionResponse, error)
	List(ctx context.Context, teamID uint, round *int) ([]dto.SubmissionResponse, error)
}

// ErrTeamNotFound indicates the submitting team cannot be located.
var ErrTeamNotFound = errors.New("team not found")

// ErrChallengeNotFound indicates no active challenge exists for the round.
var ErrChallengeNotFound = errors.New("challenge not found")

// ErrRoundLocked indicates the team has not unlocked the requested round, or
// has progressed past it.
var ErrRoundLocked = errors.New("round is not accessible")

// ErrEmptyPrompt indicates the prompt was empty after sanitisation.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// ErrGenerationUnavailable indicates the LLM backend failed; the attempt is
// not scored as an empty output.
var ErrGenerationUnavailable = errors.New("generation service unavailable")

// ScoredEventSubject is the NATS subject scored submissions are announced on.
const ScoredEventSubject = "arena.submissions.scored"

// ScoredEvent is the message published after every scored attempt.
type ScoredEvent struct {
	SubmissionID uint      `json:"submission_id"`
	TeamID       uint      `json:"team_id"`
	Round        int       `json:"round"`
	Score        float64   `json:"score"`
	Passed       bool      `json:"passed"`
	ScoredAt     time.Time `json:"scored_at"`
}

// ScoringConfig carries the generation knobs used per submission.
type ScoringConfig struct {
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

type scoringService struct {
	submissions repository.SubmissionRepository
	teams       repository.TeamRepository
	challenges  repository.ChallengeRepository
	generator   generation.Generator
	events      *nats.Conn
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	config      ScoringConfig
}

// NewScoringService constructs the scoring service. The events connection is
// optional; without it scored events are simply not announced.
func NewScoringService(
	submissionRepo repository.SubmissionRepository,
	teamRepo repository.TeamRepository,
	challengeRepo repository.ChallengeRepository,
	generator generation.Generator,
	events *nats.Conn,
	validate *validator.Validate,
	logger zerolog.Logger,
	cfg ScoringConfig,
) ScoringService {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = "You are a helpful assistant taking part in a prompt-engineering competition. Follow the user's instructions exactly."
	}

	return &scoringService{
		submissions: submissionRepo,
		teams:       teamRepo,
		challenges:  challengeRepo,
		generator:   generator,
		events:      events,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "scoring_service").Logger(),
		config:      cfg,
	}
}

func (s *scoringService) Submit(ctx context.Context, teamID uint, payload dto.SubmitRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	prompt := strings.TrimSpace(s.sanitizer.Sanitize(payload.Prompt))
	if prompt == "" {
		return dto.SubmissionResponse{}, ErrEmptyPrompt
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrTeamNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if err := s.checkRoundAccess(ctx, team.ID, payload.Round); err != nil {
		return dto.SubmissionResponse{}, err
	}

	challenge, err := s.challenges.GetActiveByRound(ctx, payload.Round)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrChallengeNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	criteria := s.criteriaFromCatalog(challenge.Criteria).Merge(payload.Criteria.ToCriteria())

	var output string
	var tokensUsed int
	if challenge.TaskType != models.TaskTypeReverseEngineering {
		generated, err := s.generator.Generate(ctx, generation.Request{
			System:      s.config.SystemPrompt,
			Prompt:      prompt,
			Temperature: s.config.Temperature,
			MaxTokens:   s.config.MaxTokens,
		})
		if err != nil {
			s.logger.Error().Err(err).Uint("team_id", team.ID).Int("round", payload.Round).Msg("generation failed")
			return dto.SubmissionResponse{}, fmt.Errorf("%w: %s", ErrGenerationUnavailable, err)
		}
		output = generated.Text
		tokensUsed = generated.TokensUsed
	}

	result, passed := scoring.ScoreSubmission(prompt, output, payload.Round, criteria)

	submission := models.Submission{
		TeamID:          team.ID,
		ChallengeID:     challenge.ID,
		Round:           payload.Round,
		Prompt:          prompt,
		GeneratedOutput: output,
		Score:           result.Score,
		Passed:          passed,
		TokensUsed:      tokensUsed,
		Violations:      strings.Join(result.Violations, models.ViolationSeparator),
		Feedback:        result.Feedback,
	}

	// Every attempt is recorded; only passing attempts raise the team total.
	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if passed {
		if err := s.teams.AddScore(ctx, team.ID, result.Score); err != nil {
			// The submission record exists but the total was not raised. This
			// is recoverable by re-deriving totals from submissions, so alert
			// loudly instead of failing the request.
			s.logger.Error().Err(err).
				Uint("team_id", team.ID).
				Uint("submission_id", submission.ID).
				Float64("score", result.Score).
				Msg("team total not updated after passing submission")
		}
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	roundLabel := strconv.Itoa(payload.Round)
	observability.Submissions().WithLabelValues(roundLabel, outcome).Inc()
	observability.SubmissionScores().WithLabelValues(roundLabel).Observe(result.Score)

	s.publishScored(submission)

	return dto.NewSubmissionResponse(submission), nil
}

func (s *scoringService) List(ctx context.Context, teamID uint, round *int) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{TeamID: &teamID, Round: round})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, dto.NewSubmissionResponse(submission))
	}
	return responses, nil
}

// checkRoundAccess enforces the forward-progressing funnel: a round can only
// be attempted while it is accessible. Rounds outside the funnel fall through
// to the permissive scoring default and are not gated.
func (s *scoringService) checkRoundAccess(ctx context.Context, teamID uint, round int) error {
	if round < 1 || round > scoring.RoundCount {
		return nil
	}

	history, err := s.submissions.List(ctx, repository.SubmissionFilter{TeamID: &teamID})
	if err != nil {
		return err
	}

	attempts := make([]scoring.Attempt, 0, len(history))
	for _, submission := range history {
		attempts = append(attempts, scoring.Attempt{Round: submission.Round, Score: submission.Score})
	}

	for _, progress := range scoring.ComputeProgress(attempts) {
		if progress.Round == round {
			if !progress.Accessible {
				return ErrRoundLocked
			}
			return nil
		}
	}
	return nil
}

// criteriaFromCatalog decodes the challenge's stored criteria. Malformed
// fields are skipped with a warning so a partially valid rubric still
// produces actionable feedback.
func (s *scoringService) criteriaFromCatalog(raw datatypes.JSONMap) scoring.Criteria {
	var criteria scoring.Criteria
	if len(raw) == 0 {
		return criteria
	}

	if value, ok := raw["exact_words"]; ok {
		if parsed, ok := toInt(value); ok {
			criteria.ExactWords = &parsed
		} else {
			s.logger.Warn().Interface("value", value).Msg("ignoring malformed exact_words criterion")
		}
	}
	if value, ok := raw["max_words"]; ok {
		if parsed, ok := toInt(value); ok {
			criteria.MaxWords = &parsed
		} else {
			s.logger.Warn().Interface("value", value).Msg("ignoring malformed max_words criterion")
		}
	}
	if value, ok := raw["require_price"]; ok {
		if parsed, ok := value.(bool); ok {
			criteria.RequirePrice = &parsed
		} else {
			s.logger.Warn().Interface("value", value).Msg("ignoring malformed require_price criterion")
		}
	}
	if value, ok := raw["required_elements"]; ok {
		if parsed, ok := toStringSlice(value); ok {
			criteria.RequiredElements = parsed
		} else {
			s.logger.Warn().Interface("value", value).Msg("ignoring malformed required_elements criterion")
		}
	}
	if value, ok := raw["forbidden_words"]; ok {
		if parsed, ok := toStringSlice(value); ok {
			criteria.ForbiddenWords = parsed
		} else {
			s.logger.Warn().Interface("value", value).Msg("ignoring malformed forbidden_words criterion")
		}
	}
	if value, ok := raw["sentiment"]; ok {
		if parsed, ok := value.(string); ok {
			switch sentiment := scoring.Sentiment(strings.ToLower(parsed)); sentiment {
			case scoring.SentimentPositive, scoring.SentimentNegative, scoring.SentimentNeutral:
				criteria.Sentiment = &sentiment
			default:
				s.logger.Warn().Str("value", parsed).Msg("ignoring unknown sentiment criterion")
			}
		} else {
			s.logger.Warn().Interface("value", value).Msg("ignoring malformed sentiment criterion")
		}
	}

	return criteria
}

func (s *scoringService) publishScored(submission models.Submission) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(ScoredEvent{
		SubmissionID: submission.ID,
		TeamID:       submission.TeamID,
		Round:        submission.Round,
		Score:        submission.Score,
		Passed:       submission.Passed,
		ScoredAt:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode scored event")
		return
	}

	if err := s.events.Publish(ScoredEventSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish scored event")
	}
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	default:
		return 0, false
	}
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, str)
		}
		return result, true
	default:
		return nil, false
	}
}
