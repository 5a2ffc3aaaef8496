package types

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GenerateRecipeRequest is the payload for POST /recipes/generate
type GenerateRecipeRequest struct {
	OriginalText string `json:"original_text" binding:"required,min=3,max=1000"`
}

// UpsertProfileRequest is the payload for PUT /profile. Allergen and dislike
// identifiers replace the stored sets wholesale.
type UpsertProfileRequest struct {
	DisplayName string   `json:"display_name" binding:"required"`
	DietID      string   `json:"diet_id"`
	AllergenIDs []string `json:"allergen_ids"`
	DislikeIDs  []string `json:"dislike_ids"`
	AcceptTerms bool     `json:"accept_terms"`
}
