package models

import (
	"time"

	"gorm.io/datatypes"
)

// Task types supported by the challenge catalog.
const (
	TaskTypeGeneration         = "generation"
	TaskTypeReverseEngineering = "reverse_engineering"
)

// Challenge is one catalog entry: the task teams attempt in a given round,
// plus the scoring criteria stored as free-form JSON.
type Challenge struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Round       int               `gorm:"not null;index" json:"round"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	TaskType    string            `gorm:"size:32;not null" json:"task_type"`
	Criteria    datatypes.JSONMap `json:"criteria"`
	Active      bool              `gorm:"not null;default:true;index" json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
