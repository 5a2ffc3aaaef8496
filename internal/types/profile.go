package types

import (
	"time"

	"github.com/google/uuid"
)

// ProfileConstraints is the read-only dietary view of a user profile consumed
// by the generation pipeline. A nil *ProfileConstraints means "no profile
// yet" and results in an unconstrained prompt.
type ProfileConstraints struct {
	DietID    string   `json:"diet_id"`
	Allergens []string `json:"allergens"`
	Dislikes  []string `json:"dislikes"`
}

// ProfileDTO is the full profile view returned by the profile endpoints.
type ProfileDTO struct {
	UserID          uuid.UUID  `json:"user_id"`
	DisplayName     string     `json:"display_name"`
	DietID          string     `json:"diet_id"`
	Allergens       []string   `json:"allergens"`
	Dislikes        []string   `json:"dislikes"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at"`
}
