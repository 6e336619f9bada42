package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petmarket-backend/internal/shared/middleware"
	"petmarket-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupPetRoutes(v1, c)
		setupFavoriteRoutes(v1, c)
		setupContactRoutes(v1, c)
	}

	return router
}

// ========================================
// PET ROUTES
// ========================================
func setupPetRoutes(v1 *gin.RouterGroup, c *container.Container) {
	pets := v1.Group("/pets")
	{
		// Public read endpoints
		pets.GET("", c.PetHandler.ListPets)
		pets.GET("/price-range", c.PetHandler.GetPriceRange)
		pets.GET("/:id", c.PetHandler.GetPet)
	}

	// Mutations and owner views require a verified principal
	owned := v1.Group("/pets")
	owned.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		owned.GET("/mine", c.PetHandler.ListMyPets)
		owned.POST("", c.PetHandler.CreatePet)
		owned.PUT("/:id", c.PetHandler.UpdatePet)
		owned.PATCH("/:id", c.PetHandler.PatchPet)
		owned.DELETE("/:id", c.PetHandler.DeletePet)
		owned.POST("/:id/status", c.PetHandler.ChangeStatus)
	}
}

// ========================================
// FAVORITE ROUTES
// ========================================
func setupFavoriteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	favorites := v1.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		favorites.GET("", c.FavoriteHandler.ListFavorites)
		favorites.POST("/:pet_id", c.FavoriteHandler.AddFavorite)
		favorites.DELETE("/:pet_id", c.FavoriteHandler.RemoveFavorite)
	}
}

// ========================================
// CONTACT ROUTES
// ========================================
func setupContactRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/contact", c.ContactHandler.SubmitMessage)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnv("APP_VERSION", "1.0.0"),
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
