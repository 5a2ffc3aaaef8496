package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// RecipeHandler serves recipe generation, usage and recipe access.
type RecipeHandler struct {
	recipes service.IRecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// GenerateRecipe handles POST /recipes/generate
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "original_text must be between 3 and 1000 characters"})
		return
	}

	recipe, usage, err := h.recipes.GenerateRecipe(c.Request.Context(), userID, req.OriginalText)
	if err != nil {
		status, message := generationErrorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe": gin.H{
			"id":                recipe.ID,
			"title":             recipe.Title,
			"ingredients":       recipe.Ingredients,
			"instructions":      recipe.Instructions,
			"prep_time_minutes": recipe.PrepTimeMinutes,
			"calories":          recipe.Calories,
			"diet_label":        recipe.DietLabel,
		},
		"usage": usage,
	})
}

// GetUsage handles GET /usage
func (h *RecipeHandler) GetUsage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	usage, err := h.recipes.GetDailyUsage(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load usage"})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// ListRecipes handles GET /recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, c.Query("search"), c.Query("diet"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

// generationErrorResponse maps pipeline errors onto HTTP. Quota is the
// caller's fault, provider and malformed-output errors are a bad gateway,
// everything else is internal.
func generationErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDailyLimitReached):
		return http.StatusTooManyRequests, "daily generation limit reached"
	case errors.Is(err, service.ErrMissingRequiredFields),
		errors.Is(err, service.ErrSchemaValidation):
		return http.StatusBadGateway, "the generated recipe was malformed"
	}

	var orErr *service.OpenRouterError
	if errors.As(err, &orErr) {
		return http.StatusBadGateway, "failed to generate recipe"
	}

	return http.StatusInternalServerError, "internal server error"
}
