package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"epipulse/internal/config"
	"epipulse/internal/dataset"
	"epipulse/internal/geo"
	"epipulse/internal/infrastructure"
)

// Metric names used across the pipeline.
const (
	MetricIncidence  = "incidence"
	MetricUrbanPct   = "urban_pct"
	MetricPopulation = "population"
)

// Runner executes one full load→reshape→join→clean pass over the three
// source files and returns an immutable Result snapshot. Every run
// recomputes from scratch; nothing is cached between runs.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier geo.Classifier
	telemetry  *infrastructure.Telemetry
}

// NewRunner creates a pipeline runner. telemetry may be nil.
func NewRunner(cfg *config.Config, logger *slog.Logger, classifier geo.Classifier, telemetry *infrastructure.Telemetry) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "pipeline")),
		classifier: classifier,
		telemetry:  telemetry,
	}
}

// Run executes the pipeline.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	started := time.Now()
	logger := r.logger.With(slog.String("run_id", runID))

	incidencePath, urbanPath, populationPath := r.cfg.SourceFiles()

	incidence, err := r.loadAndReshape(ctx, logger, incidencePath, MetricIncidence)
	if err != nil {
		return nil, err
	}
	urban, err := r.loadAndReshape(ctx, logger, urbanPath, MetricUrbanPct)
	if err != nil {
		return nil, err
	}
	population, err := r.loadAndReshape(ctx, logger, populationPath, MetricPopulation)
	if err != nil {
		return nil, err
	}

	joined, joinStats := Join(incidence, urban, population, r.classifier)
	logger.InfoContext(ctx, "join complete",
		slog.Int("joined", joinStats.Joined),
		slog.Int("incidence_unmatched", joinStats.IncidenceUnmatched),
		slog.Int("urban_unmatched", joinStats.UrbanUnmatched),
		slog.Int("population_unmatched", joinStats.PopulationUnmatched),
		slog.Int("unclassified_countries", joinStats.UnclassifiedCountries))

	cleaned, cleanStats := Clean(joined, r.cfg.Pipeline.ExcludedYear)
	logger.InfoContext(ctx, "clean complete",
		slog.Int("output", cleanStats.Output),
		slog.Int("dropped_null_incidence", cleanStats.DroppedNullIncidence),
		slog.Int("dropped_unclassified", cleanStats.DroppedUnclassified),
		slog.Int("dropped_excluded_year", cleanStats.DroppedExcludedYear))

	duration := time.Since(started)
	r.recordTelemetry(ctx, joinStats, cleanStats, duration)

	logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("records", len(cleaned)),
		slog.Duration("duration", duration))

	return &Result{
		RunID:       runID,
		GeneratedAt: started,
		Records:     cleaned,
		JoinStats:   joinStats,
		CleanStats:  cleanStats,
	}, nil
}

func (r *Runner) loadAndReshape(ctx context.Context, logger *slog.Logger, path, metric string) ([]dataset.Observation, error) {
	table, err := dataset.LoadTable(path, metric)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load source table",
			slog.String("metric", metric),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	observations := dataset.Reshape(table)
	logger.InfoContext(ctx, "source table loaded",
		slog.String("metric", metric),
		slog.Int("countries", len(table.Rows)),
		slog.Int("year_columns", len(table.YearColumns)),
		slog.Int("observations", len(observations)))

	return observations, nil
}

func (r *Runner) recordTelemetry(ctx context.Context, joinStats JoinStats, cleanStats CleanStats, duration time.Duration) {
	if r.telemetry == nil {
		return
	}
	r.telemetry.RecordRun(ctx, duration)
	r.telemetry.RecordDroppedRows(ctx, "join", "incidence_unmatched", joinStats.IncidenceUnmatched)
	r.telemetry.RecordDroppedRows(ctx, "join", "urban_unmatched", joinStats.UrbanUnmatched)
	r.telemetry.RecordDroppedRows(ctx, "join", "population_unmatched", joinStats.PopulationUnmatched)
	r.telemetry.RecordKeptRows(ctx, "join", joinStats.Joined)
	r.telemetry.RecordDroppedRows(ctx, "clean", "null_incidence", cleanStats.DroppedNullIncidence)
	r.telemetry.RecordDroppedRows(ctx, "clean", "unclassified_country", cleanStats.DroppedUnclassified)
	r.telemetry.RecordDroppedRows(ctx, "clean", "excluded_year", cleanStats.DroppedExcludedYear)
	r.telemetry.RecordKeptRows(ctx, "clean", cleanStats.Output)
}
