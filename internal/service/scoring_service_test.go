package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/models"
	"github.com/prompt-arena/arena-api/internal/repository"
	"github.com/prompt-arena/arena-api/pkg/generation"
)

type stubSubmissionRepo struct {
	stored  []models.Submission
	created *models.Submission
	err     error
}

func (s *stubSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	if s.err != nil {
		return s.err
	}
	if submission.ID == 0 {
		submission.ID = uint(len(s.stored) + 1)
	}
	clone := *submission
	s.created = &clone
	s.stored = append(s.stored, clone)
	return nil
}

func (s *stubSubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	for _, submission := range s.stored {
		if submission.ID == id {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (s *stubSubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	if s.err != nil {
		return nil, s.err
	}
	var result []models.Submission
	for _, submission := range s.stored {
		if filter.TeamID != nil && submission.TeamID != *filter.TeamID {
			continue
		}
		if filter.Round != nil && submission.Round != *filter.Round {
			continue
		}
		if filter.Passed != nil && submission.Passed != *filter.Passed {
			continue
		}
		result = append(result, submission)
	}
	return result, nil
}

func (s *stubSubmissionRepo) CountByTeam(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	for _, submission := range s.stored {
		if submission.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

type stubTeamRepo struct {
	team        models.Team
	listTeams   []models.Team
	scoreAdded  float64
	addScoreErr error
	err         error
}

func (s *stubTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if s.err != nil {
		return s.err
	}
	if team.ID == 0 {
		team.ID = 1
	}
	s.team = *team
	return nil
}

func (s *stubTeamRepo) GetByID(ctx context.Context, id uint) (models.Team, error) {
	if s.err != nil {
		return models.Team{}, s.err
	}
	if s.team.ID == 0 || s.team.ID != id {
		return models.Team{}, gorm.ErrRecordNotFound
	}
	return s.team, nil
}

func (s *stubTeamRepo) GetByAccessCode(ctx context.Context, code string) (models.Team, error) {
	if s.team.AccessCode != code {
		return models.Team{}, gorm.ErrRecordNotFound
	}
	return s.team, nil
}

func (s *stubTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.listTeams != nil {
		return s.listTeams, nil
	}
	return []models.Team{s.team}, nil
}

func (s *stubTeamRepo) AddScore(ctx context.Context, id uint, delta float64) error {
	if s.addScoreErr != nil {
		return s.addScoreErr
	}
	s.scoreAdded += delta
	s.team.TotalScore += delta
	return nil
}

type stubChallengeRepo struct {
	challenge models.Challenge
	err       error
}

func (s *stubChallengeRepo) Create(ctx context.Context, challenge *models.Challenge) error {
	if s.err != nil {
		return s.err
	}
	if challenge.ID == 0 {
		challenge.ID = 1
	}
	s.challenge = *challenge
	return nil
}

func (s *stubChallengeRepo) Update(ctx context.Context, challenge *models.Challenge) error {
	if s.err != nil {
		return s.err
	}
	s.challenge = *challenge
	return nil
}

func (s *stubChallengeRepo) GetByID(ctx context.Context, id uint) (models.Challenge, error) {
	if s.challenge.ID == 0 {
		return models.Challenge{}, gorm.ErrRecordNotFound
	}
	return s.challenge, nil
}

func (s *stubChallengeRepo) GetActiveByRound(ctx context.Context, round int) (models.Challenge, error) {
	if s.err != nil {
		return models.Challenge{}, s.err
	}
	if s.challenge.ID == 0 || s.challenge.Round != round {
		return models.Challenge{}, gorm.ErrRecordNotFound
	}
	return s.challenge, nil
}

func (s *stubChallengeRepo) List(ctx context.Context) ([]models.Challenge, error) {
	return []models.Challenge{s.challenge}, nil
}

type stubGenerator struct {
	response generation.Response
	err      error
	called   bool
}

func (s *stubGenerator) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	s.called = true
	if s.err != nil {
		return generation.Response{}, s.err
	}
	return s.response, nil
}

func newScoringFixture(generator generation.Generator) (*stubSubmissionRepo, *stubTeamRepo, *stubChallengeRepo, ScoringService) {
	submissionRepo := &stubSubmissionRepo{}
	teamRepo := &stubTeamRepo{team: models.Team{ID: 1, Name: "Alpha", AccessCode: "code"}}
	challengeRepo := &stubChallengeRepo{challenge: models.Challenge{
		ID:       1,
		Round:    1,
		Title:    "Product blurb",
		TaskType: models.TaskTypeGeneration,
		Active:   true,
	}}
	svc := NewScoringService(submissionRepo, teamRepo, challengeRepo, generator, nil,
		validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop(), ScoringConfig{})
	return submissionRepo, teamRepo, challengeRepo, svc
}

const passingOutput = "This flagship phone delivers outstanding performance across every category we tested, from the display to the cameras and beyond expectations overall."

const marketingPrompt = "Write a detailed marketing plan for our brand new smartphone aimed at students on a tight budget"

func TestScoringServicePassingSubmissionRaisesTeamTotal(t *testing.T) {
	generator := &stubGenerator{response: generation.Response{Text: passingOutput, TokensUsed: 42}}
	submissionRepo, teamRepo, _, svc := newScoringFixture(generator)

	resp, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: marketingPrompt})
	require.NoError(t, err)
	require.True(t, generator.called)
	require.True(t, resp.Passed)
	require.Equal(t, 81.2, resp.Score)
	require.Equal(t, 42, resp.TokensUsed)
	require.NotNil(t, submissionRepo.created)
	require.InDelta(t, 81.2, teamRepo.scoreAdded, 0.001, "passing submissions raise the total by the final score")
}

func TestScoringServiceFailedSubmissionIsRecordedButNotTotalled(t *testing.T) {
	generator := &stubGenerator{response: generation.Response{Text: "too short"}}
	submissionRepo, teamRepo, _, svc := newScoringFixture(generator)

	resp, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: "make words"})
	require.NoError(t, err)
	require.False(t, resp.Passed)
	require.NotNil(t, submissionRepo.created, "failed attempts are still persisted")
	require.Zero(t, teamRepo.scoreAdded, "failed attempts never raise the total")
}

func TestScoringServiceGenerationFailureIsNotScored(t *testing.T) {
	generator := &stubGenerator{err: errors.New("upstream timeout")}
	submissionRepo, _, _, svc := newScoringFixture(generator)

	_, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: marketingPrompt})
	require.ErrorIs(t, err, ErrGenerationUnavailable)
	require.Nil(t, submissionRepo.created, "an infrastructure failure must not be scored as empty output")
}

func TestScoringServiceRejectsMissingPrompt(t *testing.T) {
	_, _, _, svc := newScoringFixture(&stubGenerator{})

	_, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: ""})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestScoringServiceRejectsLockedRound(t *testing.T) {
	generator := &stubGenerator{response: generation.Response{Text: passingOutput}}
	submissionRepo, _, challengeRepo, svc := newScoringFixture(generator)
	challengeRepo.challenge.Round = 2
	challengeRepo.challenge.TaskType = models.TaskTypeReverseEngineering

	// No round-one history, so round two is still locked.
	_, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 2, Prompt: "reconstruct the prompt"})
	require.ErrorIs(t, err, ErrRoundLocked)
	require.Nil(t, submissionRepo.created)
}

func TestScoringServiceRoundTwoSkipsGeneration(t *testing.T) {
	generator := &stubGenerator{}
	submissionRepo, _, challengeRepo, svc := newScoringFixture(generator)
	challengeRepo.challenge.Round = 2
	challengeRepo.challenge.TaskType = models.TaskTypeReverseEngineering

	// Round one already completed, so round two is accessible.
	submissionRepo.stored = append(submissionRepo.stored, models.Submission{ID: 99, TeamID: 1, Round: 1, Score: 80, Passed: true})

	prompt := "The prompt likely asked to write a recipe because the structure and level of detail suggests step by step cooking instructions."
	resp, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 2, Prompt: prompt})
	require.NoError(t, err)
	require.False(t, generator.called, "reverse-engineering rounds judge the prompt directly")
	require.Empty(t, resp.GeneratedOutput)
	require.Equal(t, 165.0, resp.Score)
	require.True(t, resp.Passed)
}

func TestScoringServiceAppliesCatalogCriteriaWithOverride(t *testing.T) {
	generator := &stubGenerator{response: generation.Response{Text: passingOutput}}
	_, _, challengeRepo, svc := newScoringFixture(generator)
	challengeRepo.challenge.Criteria = datatypes.JSONMap{
		"forbidden_words":   []interface{}{"outstanding"},
		"required_elements": []interface{}{"display"},
	}

	resp, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: marketingPrompt})
	require.NoError(t, err)
	require.Contains(t, resp.Violations, "forbidden_words:outstanding")

	// Caller override replaces the catalog's forbidden list field-by-field.
	override, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{
		Round:    1,
		Prompt:   marketingPrompt,
		Criteria: &dto.CriteriaPayload{ForbiddenWords: []string{"flagship"}},
	})
	require.NoError(t, err)
	require.Contains(t, override.Violations, "forbidden_words:flagship")
	require.NotContains(t, override.Violations, "forbidden_words:outstanding")
}

func TestScoringServiceSkipsMalformedCatalogCriteria(t *testing.T) {
	generator := &stubGenerator{response: generation.Response{Text: passingOutput}}
	_, _, challengeRepo, svc := newScoringFixture(generator)
	challengeRepo.challenge.Criteria = datatypes.JSONMap{
		"max_words":       "not-a-number",
		"forbidden_words": []interface{}{"outstanding"},
	}

	resp, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: marketingPrompt})
	require.NoError(t, err, "a malformed field degrades to a skipped check")
	require.Contains(t, resp.Violations, "forbidden_words:outstanding", "well-formed fields still apply")
}

func TestScoringServiceSurvivesTotalUpdateFailure(t *testing.T) {
	generator := &stubGenerator{response: generation.Response{Text: passingOutput}}
	submissionRepo, teamRepo, _, svc := newScoringFixture(generator)
	teamRepo.addScoreErr = errors.New("connection reset")

	resp, err := svc.Submit(context.Background(), 1, dto.SubmitRequest{Round: 1, Prompt: marketingPrompt})
	require.NoError(t, err, "the scored attempt is returned even when the total update fails")
	require.True(t, resp.Passed)
	require.NotNil(t, submissionRepo.created)
}

func TestScoringServiceListFiltersByRound(t *testing.T) {
	submissionRepo, _, _, svc := newScoringFixture(&stubGenerator{})
	submissionRepo.stored = []models.Submission{
		{ID: 1, TeamID: 1, Round: 1, Score: 70, Violations: "too_short"},
		{ID: 2, TeamID: 1, Round: 2, Score: 90},
		{ID: 3, TeamID: 2, Round: 1, Score: 50},
	}

	round := 1
	responses, err := svc.List(context.Background(), 1, &round)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, uint(1), responses[0].ID)
	require.Equal(t, []string{"too_short"}, responses[0].Violations)
}
