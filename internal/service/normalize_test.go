package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedCandidate() map[string]interface{} {
	return map[string]interface{}{
		"title": "Tomato Soup",
		"ingredients": []interface{}{
			map[string]interface{}{"item": "tomato", "amount": 4.0, "unit": "pcs"},
		},
		"instructions": []interface{}{
			map[string]interface{}{"step": 1.0, "text": "Chop the tomatoes."},
		},
		"prep_time_minutes": 20.0,
		"calories":          180.0,
		"diet_label":        "Vegan",
	}
}

func TestNormalizeRecipe_WellFormedPassesUnchanged(t *testing.T) {
	recipe, err := NormalizeRecipe(wellFormedCandidate())
	require.NoError(t, err)

	assert.Equal(t, "Tomato Soup", recipe.Title)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "tomato", recipe.Ingredients[0].Item)
	assert.Equal(t, 4.0, recipe.Ingredients[0].Amount)
	assert.Equal(t, "pcs", recipe.Ingredients[0].Unit)
	require.Len(t, recipe.Instructions, 1)
	assert.Equal(t, 1, recipe.Instructions[0].Step)
	assert.Equal(t, "Chop the tomatoes.", recipe.Instructions[0].Text)
	assert.Equal(t, 20, recipe.PrepTimeMinutes)
	assert.Equal(t, 180, recipe.Calories)
	assert.Equal(t, "Vegan", recipe.DietLabel)
}

func TestNormalizeRecipe_TitleTruncatedTo100(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["title"] = strings.Repeat("x", 150)

	recipe, err := NormalizeRecipe(candidate)
	require.NoError(t, err)
	assert.Len(t, recipe.Title, 100)
	assert.Equal(t, strings.Repeat("x", 100), recipe.Title)
}

func TestNormalizeRecipe_CoercesStringAmountAndTrimsUnit(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["ingredients"] = []interface{}{
		map[string]interface{}{"item": "pomidor", "amount": "2", "unit": " szt "},
	}

	recipe, err := NormalizeRecipe(candidate)
	require.NoError(t, err)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "pomidor", recipe.Ingredients[0].Item)
	assert.Equal(t, 2.0, recipe.Ingredients[0].Amount)
	assert.Equal(t, "szt", recipe.Ingredients[0].Unit)
}

func TestNormalizeRecipe_UnparsableAmountDefaultsToZero(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["ingredients"] = []interface{}{
		map[string]interface{}{"item": "salt", "amount": "a pinch", "unit": "tsp"},
	}

	recipe, err := NormalizeRecipe(candidate)
	require.NoError(t, err)
	assert.Equal(t, 0.0, recipe.Ingredients[0].Amount)
}

func TestNormalizeRecipe_MissingOptionalFieldsGetDefaults(t *testing.T) {
	candidate := wellFormedCandidate()
	delete(candidate, "prep_time_minutes")
	delete(candidate, "calories")
	delete(candidate, "diet_label")

	recipe, err := NormalizeRecipe(candidate)
	require.NoError(t, err)
	assert.Equal(t, 15, recipe.PrepTimeMinutes)
	assert.Equal(t, 0, recipe.Calories)
	assert.Equal(t, "Balanced", recipe.DietLabel)
}

func TestNormalizeRecipe_ExplicitZeroPrepTimeKept(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["prep_time_minutes"] = 0.0

	recipe, err := NormalizeRecipe(candidate)
	require.NoError(t, err)
	assert.Equal(t, 0, recipe.PrepTimeMinutes)
}

func TestNormalizeRecipe_MissingTitleIsStructuralError(t *testing.T) {
	candidate := wellFormedCandidate()
	delete(candidate, "title")

	_, err := NormalizeRecipe(candidate)
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
}

func TestNormalizeRecipe_IngredientsNotArrayIsStructuralError(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["ingredients"] = "tomatoes and water"

	_, err := NormalizeRecipe(candidate)
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
}

func TestNormalizeRecipe_NilCandidateIsStructuralError(t *testing.T) {
	_, err := NormalizeRecipe(nil)
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
}

func TestNormalizeRecipe_EmptyIngredientsFailsValidation(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["ingredients"] = []interface{}{}

	_, err := NormalizeRecipe(candidate)
	assert.ErrorIs(t, err, ErrSchemaValidation)
}

func TestNormalizeRecipe_BlankTitleFailsValidation(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["title"] = "   "

	_, err := NormalizeRecipe(candidate)
	assert.ErrorIs(t, err, ErrSchemaValidation)
}

func TestNormalizeRecipe_NegativeAmountFailsValidation(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["ingredients"] = []interface{}{
		map[string]interface{}{"item": "flour", "amount": -2.0, "unit": "cups"},
	}

	_, err := NormalizeRecipe(candidate)
	assert.ErrorIs(t, err, ErrSchemaValidation)
}

func TestNormalizeRecipe_MalformedListEntriesCoerced(t *testing.T) {
	candidate := wellFormedCandidate()
	candidate["instructions"] = []interface{}{
		map[string]interface{}{"step": "3", "text": 42.0},
	}

	recipe, err := NormalizeRecipe(candidate)
	require.NoError(t, err)
	assert.Equal(t, 3, recipe.Instructions[0].Step)
	assert.Equal(t, "42", recipe.Instructions[0].Text)
}
