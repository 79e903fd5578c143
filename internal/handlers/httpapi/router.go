// Package httpapi exposes the draft over a JSON HTTP API
package httpapi

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/lightthelamp/internal/services/draft"
	"github.com/KirkDiggler/lightthelamp/internal/services/roster"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds configuration for the HTTP API
type Config struct {
	DraftService  draft.Service
	RosterService roster.Service

	// DraftSocket serves websocket draft subscriptions. Optional.
	DraftSocket http.HandlerFunc

	// AllowedOrigins defaults to every origin
	AllowedOrigins []string
}

// Handler serves the HTTP API
type Handler struct {
	draftService  draft.Service
	rosterService roster.Service
}

// NewRouter builds the HTTP API
func NewRouter(cfg *Config) (http.Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DraftService == nil {
		return nil, ErrNilDraftService
	}
	if cfg.RosterService == nil {
		return nil, ErrNilRosterService
	}

	h := &Handler{
		draftService:  cfg.DraftService,
		rosterService: cfg.RosterService,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(withLogging)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/games/current", h.GetCurrentGame)
		r.Get("/games/{gameID}/roster", h.GetRoster)

		r.Route("/leagues/{leagueID}", func(r chi.Router) {
			r.Get("/members", h.ListMembers)
			r.Post("/members", h.JoinLeague)
			r.Delete("/members/{userID}", h.LeaveLeague)

			r.Route("/games/{gameID}", func(r chi.Router) {
				r.Get("/draft", h.GetDraft)
				r.Get("/picks", h.ListPicks)
				r.Post("/picks", h.MakePick)
				if cfg.DraftSocket != nil {
					r.Get("/ws", cfg.DraftSocket)
				}
			})
		})
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedOrigins: origins,
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(r), nil
}

// withLogging logs each request with a request scoped zerolog logger
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		logger := log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(wrapped, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	})
}

func requestLogger(r *http.Request) *zerolog.Logger {
	return zerolog.Ctx(r.Context())
}
