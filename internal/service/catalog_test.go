package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
)

func TestCatalogService_ListsWithoutCache(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Diet{ID: "Vegan", Name: "Vegan"}).Error)
	require.NoError(t, db.Create(&models.Diet{ID: "Keto", Name: "Keto"}).Error)
	require.NoError(t, db.Create(&models.Allergen{ID: "gluten", Name: "Gluten"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{ID: "cebula", Name: "Onion"}).Error)

	svc := NewCatalogService(db, nil)

	diets, err := svc.ListDiets(context.Background())
	require.NoError(t, err)
	require.Len(t, diets, 2)
	assert.Equal(t, "Keto", diets[0].ID)

	allergens, err := svc.ListAllergens(context.Background())
	require.NoError(t, err)
	assert.Len(t, allergens, 1)

	ingredients, err := svc.ListIngredients(context.Background())
	require.NoError(t, err)
	assert.Len(t, ingredients, 1)
}
