package main

import (
	"github.com/redis/go-redis/v9"

	"github.com/bradleyburgess/diabeateeze/config"
	"github.com/bradleyburgess/diabeateeze/internal/database"
	"github.com/bradleyburgess/diabeateeze/internal/logger"
	"github.com/bradleyburgess/diabeateeze/internal/router"
	"github.com/bradleyburgess/diabeateeze/internal/server"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", "error", err)
			redisClient = nil
		}
	}

	engine := router.Setup(db, cfg.JWTSecret, redisClient)
	if err := server.New(engine).Start(cfg.ServerHost + ":" + cfg.ServerPort); err != nil {
		logger.Fatal("server error", "error", err)
	}
}
