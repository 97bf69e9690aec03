package dto

import "github.com/prompt-arena/arena-api/internal/models"

// TeamRegisterRequest is the payload for registering a new team.
type TeamRegisterRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

// TeamLoginRequest authenticates a team by its access code.
type TeamLoginRequest struct {
	AccessCode string `json:"access_code" validate:"required"`
}

// TeamResponse represents a team to API consumers. The access code is only
// included on registration.
type TeamResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	TotalScore float64 `json:"total_score"`
	AccessCode string  `json:"access_code,omitempty"`
}

// TeamLoginResponse carries the issued token alongside the team.
type TeamLoginResponse struct {
	Token string       `json:"token"`
	Team  TeamResponse `json:"team"`
}

// NewTeamResponse builds a response DTO from a team model.
func NewTeamResponse(team models.Team, includeAccessCode bool) TeamResponse {
	response := TeamResponse{
		ID:         team.ID,
		Name:       team.Name,
		TotalScore: team.TotalScore,
	}
	if includeAccessCode {
		response.AccessCode = team.AccessCode
	}
	return response
}
