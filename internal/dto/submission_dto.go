package dto

import (
	"strings"

	"github.com/prompt-arena/arena-api/internal/models"
	"github.com/prompt-arena/arena-api/internal/scoring"
)

// SubmitRequest is the payload for scoring one prompt submission.
type SubmitRequest struct {
	Round    int              `json:"round" validate:"required,gt=0"`
	Prompt   string           `json:"prompt" validate:"required,min=1"`
	Criteria *CriteriaPayload `json:"criteria,omitempty"`
}

// CriteriaPayload is the caller-supplied criteria override. Supplied fields
// take precedence field-by-field over the challenge catalog's criteria.
type CriteriaPayload struct {
	ExactWords       *int     `json:"exact_words,omitempty"`
	MaxWords         *int     `json:"max_words,omitempty"`
	RequirePrice     *bool    `json:"require_price,omitempty"`
	RequiredElements []string `json:"required_elements,omitempty"`
	ForbiddenWords   []string `json:"forbidden_words,omitempty"`
	Sentiment        *string  `json:"sentiment,omitempty"`
}

// ToCriteria converts the payload into the scoring rubric, dropping any
// sentiment value outside the known classes rather than failing.
func (p *CriteriaPayload) ToCriteria() scoring.Criteria {
	if p == nil {
		return scoring.Criteria{}
	}
	criteria := scoring.Criteria{
		ExactWords:       p.ExactWords,
		MaxWords:         p.MaxWords,
		RequirePrice:     p.RequirePrice,
		RequiredElements: p.RequiredElements,
		ForbiddenWords:   p.ForbiddenWords,
	}
	if p.Sentiment != nil {
		switch s := scoring.Sentiment(strings.ToLower(*p.Sentiment)); s {
		case scoring.SentimentPositive, scoring.SentimentNegative, scoring.SentimentNeutral:
			criteria.Sentiment = &s
		}
	}
	return criteria
}

// SubmissionResponse is the scored attempt returned to the caller.
type SubmissionResponse struct {
	ID              uint     `json:"id"`
	TeamID          uint     `json:"team_id"`
	ChallengeID     uint     `json:"challenge_id"`
	Round           int      `json:"round"`
	Prompt          string   `json:"prompt"`
	GeneratedOutput string   `json:"generated_output"`
	Score           float64  `json:"score"`
	Passed          bool     `json:"passed"`
	TokensUsed      int      `json:"tokens_used"`
	Violations      []string `json:"violations"`
	Feedback        string   `json:"feedback"`
}

// NewSubmissionResponse builds a response DTO from a stored submission.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	var violations []string
	if submission.Violations != "" {
		violations = strings.Split(submission.Violations, models.ViolationSeparator)
	}

	return SubmissionResponse{
		ID:              submission.ID,
		TeamID:          submission.TeamID,
		ChallengeID:     submission.ChallengeID,
		Round:           submission.Round,
		Prompt:          submission.Prompt,
		GeneratedOutput: submission.GeneratedOutput,
		Score:           submission.Score,
		Passed:          submission.Passed,
		TokensUsed:      submission.TokensUsed,
		Violations:      violations,
		Feedback:        submission.Feedback,
	}
}
