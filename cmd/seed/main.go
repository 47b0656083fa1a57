package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/octofitlabs/octofit-backend/internal/seed"
	"github.com/octofitlabs/octofit-backend/pkg/config"
	"github.com/octofitlabs/octofit-backend/pkg/db"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
	"github.com/octofitlabs/octofit-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production database", nil)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	seeder := seed.New(dbClient.DB(), logg, cfg.Password, nil)
	summary, err := seeder.Run(ctx)
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"teams":       summary.Teams,
		"users":       summary.Users,
		"activities":  summary.Activities,
		"workouts":    summary.Workouts,
		"leaderboard": summary.Leaderboard,
	})
	logg.Info(ctx, "database seeded")
}
