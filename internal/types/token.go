package types

import "github.com/google/uuid"

// TokenClaims represents the JWT claims extracted from a validated token
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
}
