package main

import (
	"log"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/models"
	"gorm.io/gorm/clause"
)

var diets = []models.Diet{
	{ID: "Balanced", Name: "Balanced", Description: "No particular restriction, balanced macros."},
	{ID: "Vegan", Name: "Vegan", Description: "No animal products of any kind."},
	{ID: "Vegetarian", Name: "Vegetarian", Description: "No meat or fish."},
	{ID: "Keto", Name: "Keto", Description: "Very low carbohydrate, high fat."},
	{ID: "Low-Carb", Name: "Low-Carb", Description: "Reduced carbohydrate intake."},
	{ID: "Paleo", Name: "Paleo", Description: "Whole foods, no grains or processed sugar."},
}

var allergens = []models.Allergen{
	{ID: "gluten", Name: "Gluten"},
	{ID: "laktoza", Name: "Lactose"},
	{ID: "orzechy", Name: "Nuts"},
	{ID: "jaja", Name: "Eggs"},
	{ID: "soja", Name: "Soy"},
	{ID: "ryby", Name: "Fish"},
	{ID: "skorupiaki", Name: "Shellfish"},
	{ID: "sezam", Name: "Sesame"},
}

var ingredients = []models.Ingredient{
	{ID: "cebula", Name: "Onion"},
	{ID: "czosnek", Name: "Garlic"},
	{ID: "pomidor", Name: "Tomato"},
	{ID: "papryka", Name: "Bell pepper"},
	{ID: "grzyby", Name: "Mushrooms"},
	{ID: "kolendra", Name: "Cilantro"},
	{ID: "seler", Name: "Celery"},
	{ID: "oliwki", Name: "Olives"},
}

// Seeds the reference catalogs. Safe to re-run; existing rows are left alone.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	onConflict := clause.OnConflict{DoNothing: true}

	if err := db.Clauses(onConflict).Create(&diets).Error; err != nil {
		log.Fatalf("Failed to seed diets: %v", err)
	}
	if err := db.Clauses(onConflict).Create(&allergens).Error; err != nil {
		log.Fatalf("Failed to seed allergens: %v", err)
	}
	if err := db.Clauses(onConflict).Create(&ingredients).Error; err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}

	log.Printf("Seeded %d diets, %d allergens, %d ingredients", len(diets), len(allergens), len(ingredients))
}
