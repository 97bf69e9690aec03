package dto

import "github.com/prompt-arena/arena-api/internal/models"

// ChallengeCreateRequest is the payload for adding a catalog entry.
type ChallengeCreateRequest struct {
	Round       int                    `json:"round" validate:"required,gt=0"`
	Title       string                 `json:"title" validate:"required,min=3,max=255"`
	Description string                 `json:"description"`
	TaskType    string                 `json:"task_type" validate:"required,oneof=generation reverse_engineering"`
	Criteria    map[string]interface{} `json:"criteria,omitempty"`
	Active      *bool                  `json:"active,omitempty"`
}

// ChallengeUpdateRequest carries partial catalog updates.
type ChallengeUpdateRequest struct {
	Title       *string                `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description *string                `json:"description,omitempty"`
	Criteria    map[string]interface{} `json:"criteria,omitempty"`
	Active      *bool                  `json:"active,omitempty"`
}

// ChallengeResponse represents a catalog entry to API consumers.
type ChallengeResponse struct {
	ID          uint                   `json:"id"`
	Round       int                    `json:"round"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	TaskType    string                 `json:"task_type"`
	Criteria    map[string]interface{} `json:"criteria"`
	Active      bool                   `json:"active"`
}

// NewChallengeResponse builds a response DTO from a challenge model.
func NewChallengeResponse(challenge models.Challenge) ChallengeResponse {
	criteria := map[string]interface{}(nil)
	if challenge.Criteria != nil {
		criteria = map[string]interface{}(challenge.Criteria)
	}

	return ChallengeResponse{
		ID:          challenge.ID,
		Round:       challenge.Round,
		Title:       challenge.Title,
		Description: challenge.Description,
		TaskType:    challenge.TaskType,
		Criteria:    criteria,
		Active:      challenge.Active,
	}
}
