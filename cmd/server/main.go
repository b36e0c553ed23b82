package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/dailyvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/dailyvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/dailyvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/dailyvote/internal/adapters/security"
	"github.com/vncsmyrnk/dailyvote/internal/config"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
	"github.com/vncsmyrnk/dailyvote/internal/core/services"
	"github.com/vncsmyrnk/dailyvote/internal/logger"
)

type repositories struct {
	parties ports.PartyRepository
	users   ports.UserRepository
	votes   ports.VoteRepository
	tally   ports.TallyRepository
}

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("failed to open store", zap.Error(err))
	}
	defer closeStore()

	partySvc := services.NewPartyService(repos.parties, logg)
	accountSvc := services.NewAccountService(repos.users, security.NewBcryptHasher(cfg.BcryptCost), logg)
	voteSvc := services.NewVoteService(repos.votes, logg)
	tallySvc := services.NewTallyService(repos.tally, logg)

	handler := http.NewHandler(
		http.NewPartyHandler(partySvc),
		http.NewTallyHandler(tallySvc),
		http.NewVoteHandler(voteSvc),
		http.NewAccountHandler(accountSvc, logg),
		logg,
		http.RouterConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RequestTimeout: cfg.HTTP.RequestTimeout,
		},
	)
	server := &stdhttp.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		logg.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown failed", zap.Error(err))
	}
}

// openStore returns the repositories for the configured driver and a function
// releasing the underlying handle.
func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (repositories, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logg.Warn("using in-memory store, data is lost on exit")
		store := memory.NewStore(memory.DefaultParties())
		return repositories{parties: store, users: store, votes: store, tally: store}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.Postgres.ConnString(), cfg.Postgres.MaxOpenConns)
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, nil, err
		}
		logg.Info("database schema ready")
	}

	repos := repositories{
		parties: postgres.NewPartyRepository(db),
		users:   postgres.NewUserRepository(db),
		votes:   postgres.NewVoteRepository(db),
		tally:   postgres.NewTallyRepository(db),
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logg.Error("failed to close database", zap.Error(err))
		}
	}
	return repos, closeDB, nil
}
