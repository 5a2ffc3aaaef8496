package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile holds the dietary onboarding data for a user. DietID is empty
// until the user picks a diet during onboarding.
type UserProfile struct {
	ID              uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DisplayName     string         `gorm:"size:100;not null" json:"display_name"`
	DietID          string         `gorm:"size:50" json:"diet_id"`
	TermsAcceptedAt *time.Time     `json:"terms_accepted_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// ProfileAllergen links a user to an allergen from the catalog.
type ProfileAllergen struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AllergenID string    `gorm:"size:50;primaryKey" json:"allergen_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ProfileAllergen) TableName() string {
	return "profile_allergens"
}

// ProfileDislike links a user to a disliked ingredient from the catalog.
type ProfileDislike struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	IngredientID string    `gorm:"size:50;primaryKey" json:"ingredient_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ProfileDislike) TableName() string {
	return "profile_dislikes"
}
