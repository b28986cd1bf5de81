package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pawnest/pawsearch/internal/api"
	"github.com/pawnest/pawsearch/internal/api/handlers"
	"github.com/pawnest/pawsearch/internal/api/middleware"
	"github.com/pawnest/pawsearch/internal/metrics"
)

type RouterConfig struct {
	Logger        *zap.Logger
	SearchHandler *handlers.SearchHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.Identity)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/search", func(r chi.Router) {
		r.Get("/", cfg.SearchHandler.Search)
		r.Post("/", cfg.SearchHandler.Search)
		r.Get("/suggestions", cfg.SearchHandler.Suggestions)
		r.Post("/voice", cfg.SearchHandler.VoiceSearch)
		r.Post("/visual", cfg.SearchHandler.VisualSearch)
	})

	return r
}
