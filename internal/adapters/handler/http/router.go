package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const greeting = "Hello! This is a response from the daily vote API."

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewHandler(
	partyHandler *PartyHandler,
	tallyHandler *TallyHandler,
	voteHandler *VoteHandler,
	accountHandler *AccountHandler,
	logger *zap.Logger,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})
		r.Get("/message", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, messageResponse{Message: greeting})
		})

		r.Get("/parties", partyHandler.ListParties)
		r.Get("/tally", tallyHandler.GetTally)

		r.Post("/vote", voteHandler.CastVote)
		r.Get("/vote/{userID}", voteHandler.GetCurrentVote)

		r.Post("/register", accountHandler.Register)
		r.Post("/login", accountHandler.Login)
	})

	return r
}
