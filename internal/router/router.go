// Package router wires handlers and middleware into the Gin engine.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bradleyburgess/diabeateeze/internal/api"
	"github.com/bradleyburgess/diabeateeze/internal/middleware"
	"github.com/bradleyburgess/diabeateeze/internal/service"
)

// Setup configures the application routes. redisClient may be nil, in which
// case write endpoints are not rate limited.
func Setup(db *gorm.DB, jwtSecret string, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	authService := service.NewAuthService(db, jwtSecret)
	glucoseService := service.NewGlucoseService(db)
	insulinService := service.NewInsulinService(db)
	mealService := service.NewMealService(db)
	scaleService := service.NewScaleService(db)
	activityService := service.NewActivityService(db)

	authHandler := api.NewAuthHandler(authService)
	glucoseHandler := api.NewGlucoseHandler(glucoseService)
	insulinHandler := api.NewInsulinHandler(insulinService)
	mealHandler := api.NewMealHandler(mealService)
	scaleHandler := api.NewScaleHandler(scaleService)
	activityHandler := api.NewActivityHandler(activityService, insulinService, scaleService)

	var write []gin.HandlerFunc
	if redisClient != nil {
		write = append(write, middleware.NewEntryWriteRateLimiter(redisClient).Middleware())
	}

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		activityHandler.RegisterRoutes(protected)
		glucoseHandler.RegisterRoutes(protected, write...)
		insulinHandler.RegisterRoutes(protected, write...)
		mealHandler.RegisterRoutes(protected, write...)
		scaleHandler.RegisterRoutes(protected)
	}

	return router
}
