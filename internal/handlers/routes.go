package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/auth"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
)

// RouterConfig collects everything mounted on the HTTP server.
type RouterConfig struct {
	API               *APIHandlers
	Auth              auth.Provider
	CommissionerGroup string
	// Health serves /healthz and /readyz. Health and WS are optional.
	Health http.Handler
	WS     http.Handler
}

// NewRouter builds the HTTP surface of the draft assistant.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	if cfg.Health != nil {
		r.Handle("/healthz", cfg.Health)
		r.Handle("/readyz", cfg.Health)
	}
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Draft Assistant API", "/openapi.json", "/docs"))

	r.Get("/auth/login", cfg.Auth.LoginHandler)
	r.Get("/auth/callback", cfg.Auth.CallbackHandler)
	r.Get("/auth/logout", cfg.Auth.LogoutHandler)

	api := cfg.API
	// Raw reducer access, over HTTP or the socket, is commissioner only.
	// Everyone else drafts through /pick and /undo and watches /api/events.
	commissioner := chi.Chain(cfg.Auth.Middleware, auth.RequireGroup(cfg.CommissionerGroup))

	if cfg.WS != nil {
		r.With(commissioner...).Handle("/ws", cfg.WS)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/draft", func(r chi.Router) {
			r.Get("/state", api.GetDraftState)
			r.With(commissioner...).Post("/actions", api.Dispatch)
			r.Post("/pick", api.DraftPick)
			r.Post("/undo", api.Undo)
			r.With(commissioner...).Post("/reset", api.ResetDraft)
		})

		r.Get("/players", api.ListPlayers)
		r.Get("/players/{id}/news", api.PlayerNews)
		r.Get("/injuries", api.Injuries)

		r.Get("/teams", api.ListTeams)
		r.Get("/teams/on-the-clock", api.OnTheClock)
		r.Get("/teams/{id}", api.GetTeam)

		r.Get("/rankings", api.Rankings)
		r.With(commissioner...).Post("/rankings/cache/clear", api.ClearRankingsCache)

		r.Get("/events", api.EventsSSE)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}
