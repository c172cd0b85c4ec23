package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"epipulse/internal/config"
	apierrors "epipulse/internal/errors"
	"epipulse/internal/middleware"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Service     DashboardService
	Logger      *slog.Logger
	ServerCfg   config.ServerConfig
	MetricsPath string
	// Metrics serves the Prometheus scrape endpoint; nil disables it.
	Metrics http.Handler
}

// NewRouter assembles the full route tree with the middleware stack.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(deps.ServerCfg.RateLimit))

	errorHandler := apierrors.NewErrorHandler(logger)
	dashboard := NewDashboardHandler(deps.Service, logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", NewHealthHandler(deps.Service.Result(context.Background())))
		r.Mount("/", dashboard.Routes())
	})

	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, deps.Metrics)
	}

	return r
}
