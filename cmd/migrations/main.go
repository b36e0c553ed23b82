package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/dailyvote/internal/config"
	"github.com/vncsmyrnk/dailyvote/internal/logger"
)

// Usage: migrations <name>|all
//
// <name> is the end of a migration file name without ".sql", for example
// "create_tables.up" or "seed_parties.down".
func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name is required.")
	}
	migrationName := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	defer logg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Postgres.ConnString(), 1)
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if migrationName == "all" {
		if err := postgres.Migrate(ctx, db); err != nil {
			logg.Fatal("failed to apply migrations", zap.Error(err))
		}
		logg.Info("all up migrations applied")
		return
	}

	fileName, err := postgres.ApplyMigration(ctx, db, migrationName)
	if err != nil {
		logg.Fatal("failed to apply migration", zap.String("name", migrationName), zap.Error(err))
	}
	logg.Info("migration file executed successfully", zap.String("file", fileName))
}
