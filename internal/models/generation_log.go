package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationLog is one append-only audit row per generation attempt. Rows are
// written once and never updated; the quota window is derived from them.
type GenerationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey;default:(gen_random_uuid())" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Success      bool      `gorm:"not null" json:"success"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}
