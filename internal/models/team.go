package models

import "time"

// Team is a competing team. The access code is its only credential and is
// returned exactly once, at registration.
type Team struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:128;not null;uniqueIndex" json:"name"`
	AccessCode string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	TotalScore float64   `gorm:"not null;default:0" json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
