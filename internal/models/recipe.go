package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/types"
)

// IngredientList is a custom type for storing structured ingredients in JSONB
type IngredientList []types.RecipeIngredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// InstructionList is a custom type for storing structured steps in JSONB
type InstructionList []types.RecipeInstruction

// Value implements the driver.Valuer interface
func (l InstructionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *InstructionList) Scan(value interface{}) error {
	if value == nil {
		*l = InstructionList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

type Recipe struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:(gen_random_uuid())" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
	Title           string          `gorm:"size:100;not null" json:"title"`
	Ingredients     IngredientList  `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions    InstructionList `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	Calories        int             `json:"calories"`
	DietLabel       string          `gorm:"size:50" json:"diet_label"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
}
