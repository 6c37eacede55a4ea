package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dgrantpete/scoreboard-sim/config"
	"github.com/dgrantpete/scoreboard-sim/metrics"
	mw "github.com/dgrantpete/scoreboard-sim/middleware"
	"github.com/dgrantpete/scoreboard-sim/openapi"
	"github.com/dgrantpete/scoreboard-sim/simulation"
)

// NewRouter assembles the full HTTP surface: spec §6's four routes plus
// the auth token endpoint, health check, metrics, and OpenAPI document
// (spec_full.md A4).
func NewRouter(cfg *config.Config, repo *simulation.GameRepository, auth *mw.AuthMiddleware, m *metrics.Metrics, doc *openapi.Document) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw.SecurityMiddleware)
	r.Use(mw.RequestID)
	r.Use(mw.RateLimit(cfg.RateLimit.RequestsPerMinute))

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/openapi.json", doc.Handler()).Methods(http.MethodGet)

	authHandler := NewAuthHandler(auth)
	r.Handle("/api/auth/token", m.InstrumentHTTP("/api/auth/token", http.HandlerFunc(authHandler.IssueToken))).Methods(http.MethodPost)

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.RequireAuth)
	api.Use(func(next http.Handler) http.Handler {
		return m.InstrumentHTTP("/api/mock/games", next)
	})

	gameHandler := NewGameHandler(repo)
	createThrottle := mw.NewCreateThrottle(cfg.RateLimit.CreateGamesPerMinute)
	gameHandler.Register(api, createThrottle.Middleware)

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
