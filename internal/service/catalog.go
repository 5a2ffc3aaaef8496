package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

const catalogCacheTTL = time.Hour

// CatalogService serves the diet, allergen and ingredient reference lists.
// Lists are cached in redis for an hour; cache failures degrade to the
// database.
type CatalogService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewCatalogService creates a new catalog service. A nil redis client
// disables caching.
func NewCatalogService(db *gorm.DB, redisClient *redis.Client) *CatalogService {
	return &CatalogService{db: db, redis: redisClient}
}

// ListDiets returns all diets ordered by name.
func (s *CatalogService) ListDiets(ctx context.Context) ([]models.Diet, error) {
	return listCatalog[models.Diet](ctx, s, "catalog:diets")
}

// ListAllergens returns all allergens ordered by name.
func (s *CatalogService) ListAllergens(ctx context.Context) ([]models.Allergen, error) {
	return listCatalog[models.Allergen](ctx, s, "catalog:allergens")
}

// ListIngredients returns all ingredients ordered by name.
func (s *CatalogService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return listCatalog[models.Ingredient](ctx, s, "catalog:ingredients")
}

func listCatalog[T any](ctx context.Context, s *CatalogService, cacheKey string) ([]T, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var items []T
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		} else if err != redis.Nil {
			log.Printf("catalog cache read failed for %s: %v", cacheKey, err)
		}
	}

	var items []T
	if err := s.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cacheKey, err)
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(items); err == nil {
			if err := s.redis.Set(ctx, cacheKey, encoded, catalogCacheTTL).Err(); err != nil {
				log.Printf("catalog cache write failed for %s: %v", cacheKey, err)
			}
		}
	}

	return items, nil
}
