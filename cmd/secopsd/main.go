package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"secops/internal/config"
	"secops/internal/domain"
	"secops/internal/infra/db"
	httpserver "secops/internal/infra/http"
	"secops/internal/infra/ratelimit"
	"secops/internal/logging"
	"secops/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logging.New(cfg)

	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("open database")
		os.Exit(1)
	}
	if store.Available() {
		if err := store.Migrate(); err != nil {
			log.Error().Err(err).Msg("migrate database")
			os.Exit(1)
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set, resource routes will answer 503")
	}

	projectRepo := db.NewProjectRepo(store)
	projects := usecase.NewProjectService(projectRepo)
	tasks := usecase.NewTaskService(db.NewTaskRepo(store), projectRepo)
	vulns := usecase.NewVulnerabilityService(db.NewVulnerabilityRepo(store), projectRepo)

	var limiter domain.RateLimiter
	if cfg.RateLimitRequests > 0 {
		if cfg.RedisAddr != "" {
			limiter = ratelimit.NewRedisLimiter(redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}))
			log.Info().Str("addr", cfg.RedisAddr).Msg("rate limiting via redis")
		} else {
			limiter = ratelimit.NewMemoryLimiter()
			log.Info().Msg("rate limiting in memory")
		}
	}

	srv := httpserver.NewServer(cfg, log, projects, tasks, vulns, limiter)
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("http server stopped")
		os.Exit(1)
	}
}
