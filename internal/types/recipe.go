package types

// RecipeIngredient is one entry of a generated recipe's ingredient list.
type RecipeIngredient struct {
	Item   string  `json:"item" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
	Unit   string  `json:"unit"`
}

// RecipeInstruction is one ordered step of a generated recipe.
type RecipeInstruction struct {
	Step int    `json:"step" validate:"gte=0"`
	Text string `json:"text" validate:"required"`
}

// GeneratedRecipe is the canonical, validated shape produced by the
// normalization pipeline. Either every field is present and in range or the
// whole object is rejected; partial recipes never leave the service layer.
type GeneratedRecipe struct {
	Title           string              `json:"title" validate:"required,max=100"`
	Ingredients     []RecipeIngredient  `json:"ingredients" validate:"min=1,dive"`
	Instructions    []RecipeInstruction `json:"instructions" validate:"min=1,dive"`
	PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"gte=0"`
	Calories        int                 `json:"calories" validate:"gte=0"`
	DietLabel       string              `json:"diet_label" validate:"required"`
}

// UsageQuota is the derived daily generation allowance for a user.
type UsageQuota struct {
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}
