package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// ErrDailyLimitReached is returned when a user has exhausted their
// generation quota for the trailing 24 hours.
var ErrDailyLimitReached = errors.New("daily generation limit reached")

// ErrRecipeNotFound is returned when a recipe does not exist or belongs to
// another user.
var ErrRecipeNotFound = errors.New("recipe not found")

const recipeSchemaName = "recipe_generation"

// unlimitedQuotaValue is reported for both remaining and limit when the
// development override is on.
const unlimitedQuotaValue = 999

// RecipeService owns recipe generation, quota accounting and recipe access.
type RecipeService struct {
	db         *gorm.DB
	gateway    OpenRouterClient
	profiles   ProfileReader
	dailyLimit int
	unlimited  bool
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(db *gorm.DB, gateway OpenRouterClient, profiles ProfileReader, dailyLimit int, unlimited bool) *RecipeService {
	if dailyLimit <= 0 {
		dailyLimit = 3
	}
	return &RecipeService{
		db:         db,
		gateway:    gateway,
		profiles:   profiles,
		dailyLimit: dailyLimit,
		unlimited:  unlimited,
	}
}

// GetDailyUsage reports how many generations the user has left in the
// trailing 24-hour window. Both successful and failed attempts count.
func (s *RecipeService) GetDailyUsage(ctx context.Context, userID uuid.UUID) (types.UsageQuota, error) {
	if s.unlimited {
		return types.UsageQuota{Remaining: unlimitedQuotaValue, Limit: unlimitedQuotaValue}, nil
	}

	windowStart := time.Now().Add(-24 * time.Hour)
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.GenerationLog{}).
		Where("user_id = ? AND created_at >= ?", userID, windowStart).
		Count(&count).Error; err != nil {
		return types.UsageQuota{}, fmt.Errorf("failed to count generation attempts: %w", err)
	}

	remaining := s.dailyLimit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return types.UsageQuota{Remaining: remaining, Limit: s.dailyLimit}, nil
}

// CheckDailyLimit returns ErrDailyLimitReached when no generations remain.
func (s *RecipeService) CheckDailyLimit(ctx context.Context, userID uuid.UUID) error {
	usage, err := s.GetDailyUsage(ctx, userID)
	if err != nil {
		return err
	}
	if usage.Remaining <= 0 {
		return ErrDailyLimitReached
	}
	return nil
}

// LogGenerationAttempt appends one audit row. The write is best-effort; a
// failure here must not mask the generation outcome.
func (s *RecipeService) LogGenerationAttempt(ctx context.Context, userID uuid.UUID, success bool, errorMessage string) {
	entry := models.GenerationLog{
		ID:           uuid.New(),
		UserID:       userID,
		Success:      success,
		ErrorMessage: errorMessage,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("failed to record generation attempt for user %s: %v", userID, err)
	}
}

// GenerateRecipe runs the full pipeline: quota check, profile load, model
// call, normalization, persistence, audit log, usage recompute. A quota
// rejection writes no log row. Every failure past the quota check writes
// exactly one failure row and returns the original error unchanged.
func (s *RecipeService) GenerateRecipe(ctx context.Context, userID uuid.UUID, originalText string) (*models.Recipe, types.UsageQuota, error) {
	if err := s.CheckDailyLimit(ctx, userID); err != nil {
		return nil, types.UsageQuota{}, err
	}

	profile, err := s.profiles.GetConstraints(ctx, userID)
	if err != nil {
		s.LogGenerationAttempt(ctx, userID, false, err.Error())
		return nil, types.UsageQuota{}, err
	}

	candidate, err := s.gateway.CreateStructuredResponse(ctx, StructuredResponseInput{
		SchemaName: recipeSchemaName,
		Schema:     buildRecipeSchema(),
		Messages: []Message{
			{Role: "system", Content: buildSystemPrompt(profile)},
			{Role: "user", Content: "Modify the recipe based on the user's preferences and recipe request: " + originalText},
		},
	})
	if err != nil {
		s.LogGenerationAttempt(ctx, userID, false, err.Error())
		return nil, types.UsageQuota{}, err
	}

	generated, err := NormalizeRecipe(candidate)
	if err != nil {
		s.LogGenerationAttempt(ctx, userID, false, err.Error())
		return nil, types.UsageQuota{}, err
	}

	recipe := &models.Recipe{
		ID:              uuid.New(),
		Title:           generated.Title,
		Ingredients:     models.IngredientList(generated.Ingredients),
		Instructions:    models.InstructionList(generated.Instructions),
		PrepTimeMinutes: generated.PrepTimeMinutes,
		Calories:        generated.Calories,
		DietLabel:       generated.DietLabel,
		UserID:          userID,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		err = fmt.Errorf("failed to save recipe: %w", err)
		s.LogGenerationAttempt(ctx, userID, false, err.Error())
		return nil, types.UsageQuota{}, err
	}

	s.LogGenerationAttempt(ctx, userID, true, "")

	usage, err := s.GetDailyUsage(ctx, userID)
	if err != nil {
		// The recipe is saved; report it with a zeroed quota rather than
		// failing the whole request.
		log.Printf("failed to recompute usage for user %s: %v", userID, err)
		return recipe, types.UsageQuota{Remaining: 0, Limit: s.dailyLimit}, nil
	}

	return recipe, usage, nil
}

// GetRecipe returns one of the user's recipes.
func (s *RecipeService) GetRecipe(ctx context.Context, id, userID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes returns the user's recipes, newest first, optionally filtered
// by a title search and an exact diet label.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, search, dietLabel string) ([]models.Recipe, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if dietLabel = strings.TrimSpace(dietLabel); dietLabel != "" {
		q = q.Where("diet_label = ?", dietLabel)
	}

	var recipes []models.Recipe
	if err := q.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// DeleteRecipe removes one of the user's recipes.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// buildSystemPrompt renders the chef persona plus the user's dietary
// constraints. A nil profile produces no constraint lines. The allergen line
// is a hard exclusion; dislikes are soft.
func buildSystemPrompt(profile *types.ProfileConstraints) string {
	var constraints strings.Builder
	if profile != nil {
		if profile.DietID != "" {
			constraints.WriteString("\n- Follow the " + profile.DietID + " diet rules.")
		}
		if len(profile.Allergens) > 0 {
			constraints.WriteString("\n- STRICTLY EXCLUDE these allergens: " + strings.Join(profile.Allergens, ", ") + ".")
		}
		if len(profile.Dislikes) > 0 {
			constraints.WriteString("\n- Avoid these ingredients if possible: " + strings.Join(profile.Dislikes, ", ") + ".")
		}
	}

	return "You are a professional chef and nutritionist. " +
		"Generate a single recipe as a JSON object matching the provided schema.\n" +
		"Constraints:" + constraints.String() + "\n" +
		"Keep instructions clear and numbered. Use realistic amounts and units."
}

func buildRecipeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{"type": "string"},
			"ingredients": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"item":   map[string]interface{}{"type": "string"},
						"amount": map[string]interface{}{"type": "number"},
						"unit":   map[string]interface{}{"type": "string"},
					},
					"required":             []string{"item", "amount", "unit"},
					"additionalProperties": false,
				},
			},
			"instructions": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"step": map[string]interface{}{"type": "integer"},
						"text": map[string]interface{}{"type": "string"},
					},
					"required":             []string{"step", "text"},
					"additionalProperties": false,
				},
			},
			"prep_time_minutes": map[string]interface{}{"type": "integer"},
			"calories":          map[string]interface{}{"type": "integer"},
			"diet_label":        map[string]interface{}{"type": "string"},
		},
		"required":             []string{"title", "ingredients", "instructions", "prep_time_minutes", "calories", "diet_label"},
		"additionalProperties": false,
	}
}
