package main

import (
	"github.com/bradleyburgess/diabeateeze/config"
	"github.com/bradleyburgess/diabeateeze/internal/database"
	"github.com/bradleyburgess/diabeateeze/internal/logger"
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
		logger.Fatal("migration failed", "error", err)
	}

	logger.Info("migrations applied")
}
