// Command seed loads the demo dataset into the configured database.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"secops/internal/config"
	"secops/internal/infra/db"
	"secops/internal/logging"
)

func main() {
	keep := flag.Bool("keep", false, "skip seeding if projects already exist instead of wiping")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logging.New(cfg)

	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("open database")
		os.Exit(1)
	}
	if !store.Available() {
		log.Error().Msg("DATABASE_URL is required for seeding")
		os.Exit(1)
	}
	if err := store.Migrate(); err != nil {
		log.Error().Err(err).Msg("migrate database")
		os.Exit(1)
	}

	if err := db.Seed(context.Background(), store, *keep); err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
	log.Info().Msg("seed complete")
}
