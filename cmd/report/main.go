// Command report runs the pipeline once and writes the full report set
// (cleaned records, aggregates, summary) to the configured reports directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"epipulse/internal/config"
	"epipulse/internal/exporter"
	"epipulse/internal/geo"
	"epipulse/internal/infrastructure"
	"epipulse/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		slog.Error("report generation failed", "error", err)
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

	writer := exporter.NewReportWriter(cfg.Paths.ReportsDir, logger)
	if err := writer.WriteAll(result, cfg.Pipeline.DefaultTopN, cfg.Pipeline.BaselineYear, cfg.Pipeline.ComparisonYear); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	logger.Info("reports written",
		slog.String("run_id", result.RunID),
		slog.String("dir", cfg.Paths.ReportsDir),
		slog.Int("records", len(result.Records)))
	return nil
}
