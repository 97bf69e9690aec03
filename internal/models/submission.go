package models

import "time"

// Submission records one scored attempt by a team, pass or fail. Every
// attempt is persisted; only passing attempts contribute to the team total.
type Submission struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TeamID          uint      `gorm:"not null;index" json:"team_id"`
	ChallengeID     uint      `gorm:"not null" json:"challenge_id"`
	Round           int       `gorm:"not null;index" json:"round"`
	Prompt          string    `gorm:"type:text;not null" json:"prompt"`
	GeneratedOutput string    `gorm:"type:text" json:"generated_output"`
	Score           float64   `gorm:"not null" json:"score"`
	Passed          bool      `gorm:"not null" json:"passed"`
	TokensUsed      int       `json:"tokens_used"`
	Violations      string    `gorm:"type:text" json:"violations"`
	Feedback        string    `gorm:"type:text" json:"feedback"`
	CreatedAt       time.Time `json:"created_at"`
	Team            Team      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Challenge       Challenge `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// ViolationSeparator joins violation codes for storage in a single column.
const ViolationSeparator = ";"
