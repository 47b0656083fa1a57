package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/octofitlabs/octofit-backend/api/routes"
	"github.com/octofitlabs/octofit-backend/internal/activities"
	"github.com/octofitlabs/octofit-backend/internal/leaderboard"
	"github.com/octofitlabs/octofit-backend/internal/teams"
	"github.com/octofitlabs/octofit-backend/internal/users"
	"github.com/octofitlabs/octofit-backend/internal/workouts"
	"github.com/octofitlabs/octofit-backend/pkg/config"
	"github.com/octofitlabs/octofit-backend/pkg/db"
	"github.com/octofitlabs/octofit-backend/pkg/logger"
	"github.com/octofitlabs/octofit-backend/pkg/metrics"
	"github.com/octofitlabs/octofit-backend/pkg/migrate"
	"github.com/octofitlabs/octofit-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis is optional; without it the leaderboard reads skip caching.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis url not set, leaderboard cache disabled")
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	teamsRepo := teams.NewRepository(dbClient.DB())

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	teamsService, err := teams.NewService(teamsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create teams service", err)
		os.Exit(1)
	}

	activitiesService, err := activities.NewService(activities.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create activities service", err)
		os.Exit(1)
	}

	leaderboardService, err := leaderboard.NewService(leaderboard.ServiceParams{
		Repo:       leaderboard.NewRepository(dbClient.DB()),
		Aggregator: activitiesService,
		Users:      usersRepo,
		Teams:      teamsRepo,
		Cache:      leaderboard.NewTopCache(redisClient, cfg.Leaderboard.TopCacheTTL),
		Metrics:    engineMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create leaderboard service", err)
		os.Exit(1)
	}

	workoutsService, err := workouts.NewService(workouts.NewRepository(dbClient.DB()), activitiesService)
	if err != nil {
		logg.Error(context.Background(), "failed to create workouts service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			usersService,
			teamsService,
			activitiesService,
			leaderboardService,
			workoutsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
