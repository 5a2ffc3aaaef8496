package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// OpenRouterClient is the slice of the gateway the recipe service needs.
type OpenRouterClient interface {
	CreateStructuredResponse(ctx context.Context, input StructuredResponseInput) (map[string]interface{}, error)
}

// ProfileReader loads the dietary constraints used when building prompts.
type ProfileReader interface {
	GetConstraints(ctx context.Context, userID uuid.UUID) (*types.ProfileConstraints, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, displayName string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileDTO, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*types.ProfileDTO, error)
	GetConstraints(ctx context.Context, userID uuid.UUID) (*types.ProfileConstraints, error)
}

// IRecipeService defines the interface for recipe generation and access.
type IRecipeService interface {
	GenerateRecipe(ctx context.Context, userID uuid.UUID, originalText string) (*models.Recipe, types.UsageQuota, error)
	GetDailyUsage(ctx context.Context, userID uuid.UUID) (types.UsageQuota, error)
	GetRecipe(ctx context.Context, id, userID uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, search, dietLabel string) ([]models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error
}

// ICatalogService defines the interface for the reference catalogs.
type ICatalogService interface {
	ListDiets(ctx context.Context) ([]models.Diet, error)
	ListAllergens(ctx context.Context) ([]models.Allergen, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
}
