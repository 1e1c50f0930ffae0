package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/config"
	"github.com/rsud-harapan/roster-manager/backend/internal/repository"
	"github.com/rsud-harapan/roster-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}

	if cfg.Environment == "production" {
		logger.Error("refusing to seed a production database")
		return
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	seed.SeedDemoData(cfg, repo)
}
