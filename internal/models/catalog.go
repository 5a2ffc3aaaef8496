package models

import "time"

// Diet is a reference diet the onboarding wizard offers. IDs are stable
// slugs ("Vegan", "Low-Carb") and double as prompt vocabulary.
type Diet struct {
	ID          string    `gorm:"size:50;primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Diet) TableName() string {
	return "diets"
}

// Allergen is a reference allergen users can exclude.
type Allergen struct {
	ID        string    `gorm:"size:50;primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Allergen) TableName() string {
	return "allergens"
}

// Ingredient is a reference ingredient users can mark as disliked.
type Ingredient struct {
	ID        string    `gorm:"size:50;primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
