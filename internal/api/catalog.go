package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

// CatalogHandler serves the reference lists consumed by onboarding.
type CatalogHandler struct {
	catalog service.ICatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.ICatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListDiets handles GET /diets
func (h *CatalogHandler) ListDiets(c *gin.Context) {
	diets, err := h.catalog.ListDiets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diets"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, gin.H{"diets": diets})
}

// ListAllergens handles GET /allergens
func (h *CatalogHandler) ListAllergens(c *gin.Context) {
	allergens, err := h.catalog.ListAllergens(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load allergens"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, gin.H{"allergens": allergens})
}

// ListIngredients handles GET /ingredients
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.catalog.ListIngredients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ingredients"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
