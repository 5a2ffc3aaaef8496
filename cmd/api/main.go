package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/router"
	"github.com/plateful/backend/internal/server"
	"github.com/plateful/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the auth rate limiter and the catalog cache; both degrade
	// without it, so a miss is not fatal outside production.
	var authLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		if config.GetEnvironment() == config.Production {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
	} else {
		authLimiter = middleware.NewAuthRateLimiter(redisClient)
	}

	gateway, err := service.NewOpenRouterService(cfg.OpenRouter)
	if err != nil {
		log.Fatalf("Failed to initialize gateway client: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db, gateway, profileService, cfg.GenerationDailyLimit, cfg.UnlimitedQuota)
	catalogService := service.NewCatalogService(db, redisClient)

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(profileService),
		Recipe:  api.NewRecipeHandler(recipeService),
		Catalog: api.NewCatalogHandler(catalogService),
	}, authService, authLimiter)

	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
