package router

import (
	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth    *api.AuthHandler
	Profile *api.ProfileHandler
	Recipe  *api.RecipeHandler
	Catalog *api.CatalogHandler
}

// SetupRouter configures the application routes. authLimiter may be nil when
// redis is unavailable (tests, local runs without a cache).
func SetupRouter(h Handlers, authService service.IAuthService, authLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	if authLimiter != nil {
		auth.Use(authLimiter.Middleware())
	}
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Public reference catalogs
	v1.GET("/diets", h.Catalog.ListDiets)
	v1.GET("/allergens", h.Catalog.ListAllergens)
	v1.GET("/ingredients", h.Catalog.ListIngredients)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", h.Recipe.ListRecipes)
			recipes.GET("/:id", h.Recipe.GetRecipe)
			recipes.DELETE("/:id", h.Recipe.DeleteRecipe)
			recipes.POST("/generate", h.Recipe.GenerateRecipe)
		}

		protected.GET("/usage", h.Recipe.GetUsage)
	}

	return router
}
