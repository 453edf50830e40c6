package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Scout/internal/config"
	"github.com/MikeSquared-Agency/Scout/internal/hermes"
	"github.com/MikeSquared-Agency/Scout/internal/search"
	"github.com/MikeSquared-Agency/Scout/internal/store"
)

func NewRouter(svc *search.Service, s store.Store, h hermes.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))
	r.Use(RequestTimeout(cfg.RequestTimeout()))

	searches := NewSearchHandler(svc, logger)
	candidates := NewCandidatesHandler(s, h, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", searches.Search)
		r.Post("/rank", searches.Rank)

		r.Get("/candidates", candidates.List)
		r.Get("/candidates/{id}", candidates.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Put("/candidates/{id}", candidates.Put)
		})
	})

	return r
}

// NewMetricsRouter serves health and Prometheus metrics on the side port.
// h may be nil when running without the event bus.
func NewMetricsRouter(h hermes.Client) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		bus := "disabled"
		if h != nil {
			bus = "disconnected"
			if h.Connected() {
				bus = "connected"
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "hermes": bus})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
