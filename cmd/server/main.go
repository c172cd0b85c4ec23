// Command server runs the dashboard API: one pipeline pass at startup,
// then the snapshot is served read-only until the process restarts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"epipulse/internal/config"
	"epipulse/internal/geo"
	"epipulse/internal/infrastructure"
	"epipulse/internal/pipeline"
	"epipulse/internal/services"
	transporthttp "epipulse/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogger()

	telemetry, err := infrastructure.NewTelemetry(cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg, logger, geo.NewTableClassifier(), telemetry)
	result, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	service := services.NewDashboardService(result, cfg.Pipeline, logger)
	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Service:     service,
		Logger:      logger,
		ServerCfg:   cfg.Server,
		MetricsPath: cfg.Telemetry.MetricsPath,
		Metrics:     telemetry.PrometheusHTTP,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("dashboard server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("run_id", result.RunID),
			slog.Int("records", len(result.Records)))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown failed", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
