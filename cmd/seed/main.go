package main

import (
	"context"
	"time"

	"github.com/emlips/nc-news/internal/config"
	"github.com/emlips/nc-news/internal/database"
	"github.com/emlips/nc-news/internal/repository"
	"github.com/emlips/nc-news/internal/seed"
	"github.com/emlips/nc-news/pkg/logger"
)

const seedTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(config.LogConfig{Level: "info", Format: "json"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log)

	data, err := seed.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seed data")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := seed.New(repository.New(db), log).Run(ctx, data); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}
