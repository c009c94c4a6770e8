package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/epartment/society-backend/internal/config"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating pgx pool")
	}
	defer pool.Close()

	sqlBytes, err := os.ReadFile("migrations/migrations.sql")
	if err != nil {
		logger.Fatal().Err(err).Msg("error reading migrations file")
	}

	execCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	logger.Info().Msg("applying migrations")
	if _, err := pool.Exec(execCtx, string(sqlBytes)); err != nil {
		logger.Fatal().Err(err).Msg("error applying migrations")
	}

	logger.Info().Msg("migrations applied")
}
