package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/plateful/backend/internal/types"
)

var (
	// ErrMissingRequiredFields means the candidate object lacks the basic
	// shape of a recipe (title string, ingredients array, instructions
	// array) and coercion was never attempted.
	ErrMissingRequiredFields = errors.New("invalid recipe structure: missing required fields")

	// ErrSchemaValidation means the coerced recipe failed field-level
	// validation (empty title, no ingredients, negative amounts).
	ErrSchemaValidation = errors.New("invalid recipe structure: schema validation failed")
)

const (
	maxTitleLength         = 100
	defaultPrepTimeMinutes = 15
	defaultDietLabel       = "Balanced"
)

var recipeValidator = validator.New()

// NormalizeRecipe turns a loosely-typed candidate object from the model into
// a validated GeneratedRecipe. Two distinct failure modes: the candidate is
// missing required top-level fields, or the coerced result fails schema
// validation. Individual malformed values inside lists are coerced with
// defaults rather than rejected.
func NormalizeRecipe(candidate map[string]interface{}) (*types.GeneratedRecipe, error) {
	if candidate == nil {
		return nil, ErrMissingRequiredFields
	}

	title, titleOK := candidate["title"].(string)
	rawIngredients, ingredientsOK := candidate["ingredients"].([]interface{})
	rawInstructions, instructionsOK := candidate["instructions"].([]interface{})
	if !titleOK || !ingredientsOK || !instructionsOK {
		return nil, ErrMissingRequiredFields
	}

	ingredients := make([]types.RecipeIngredient, 0, len(rawIngredients))
	for _, raw := range rawIngredients {
		obj, _ := raw.(map[string]interface{})
		ingredients = append(ingredients, types.RecipeIngredient{
			Item:   stringField(obj["item"]),
			Amount: numberField(obj["amount"], 0),
			Unit:   stringField(obj["unit"]),
		})
	}

	instructions := make([]types.RecipeInstruction, 0, len(rawInstructions))
	for _, raw := range rawInstructions {
		obj, _ := raw.(map[string]interface{})
		instructions = append(instructions, types.RecipeInstruction{
			Step: intField(obj["step"], 0),
			Text: stringField(obj["text"]),
		})
	}

	dietLabel := stringField(candidate["diet_label"])
	if dietLabel == "" {
		dietLabel = defaultDietLabel
	}

	recipe := &types.GeneratedRecipe{
		Title:           truncate(strings.TrimSpace(title), maxTitleLength),
		Ingredients:     ingredients,
		Instructions:    instructions,
		PrepTimeMinutes: intField(candidate["prep_time_minutes"], defaultPrepTimeMinutes),
		Calories:        intField(candidate["calories"], 0),
		DietLabel:       dietLabel,
	}

	if err := recipeValidator.Struct(recipe); err != nil {
		return nil, ErrSchemaValidation
	}

	return recipe, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func stringField(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

func numberField(v interface{}, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return fallback
}

func intField(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(f)
		}
	}
	return fallback
}
