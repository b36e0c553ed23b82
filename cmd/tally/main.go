package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/dailyvote/internal/config"
	"github.com/vncsmyrnk/dailyvote/internal/core/services"
	"github.com/vncsmyrnk/dailyvote/internal/logger"
)

type report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Total       int64           `json:"total"`
	Tally       json.RawMessage `json:"tally"`
}

// Prints the current tally as JSON on stdout.
func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", time.Minute, "Time limit for the whole job")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	defer logg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Postgres.ConnString(), 1)
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	tallySvc := services.NewTallyService(postgres.NewTallyRepository(db), logg)

	tally, err := tallySvc.Tally(ctx)
	if err != nil {
		logg.Fatal("failed to compute tally", zap.Error(err))
	}

	counts, err := json.Marshal(tally)
	if err != nil {
		logg.Fatal("failed to encode tally", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report{GeneratedAt: time.Now().UTC(), Total: tally.Total(), Tally: counts}); err != nil {
		logg.Fatal("failed to write report", zap.Error(err))
	}
}
