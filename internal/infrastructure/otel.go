package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"epipulse/internal/config"
)

const (
	ServiceName    = "epipulse"
	ServiceVersion = "1.0.0"
	MeterName      = "epipulse"
)

// Telemetry holds the metrics provider and the pipeline instruments.
// The dropped-row counters exist because the join and clean stages
// discard rows silently; the counts are the only audit trail.
type Telemetry struct {
	MeterProvider *sdkmetric.MeterProvider
	Meter         metric.Meter
	// PrometheusHTTP serves the scrape endpoint; nil when disabled.
	PrometheusHTTP http.Handler

	runsTotal   metric.Int64Counter
	runDuration metric.Float64Histogram
	rowsDropped metric.Int64Counter
	rowsKept    metric.Int64Counter

	logger *slog.Logger
}

// NewTelemetry initializes an OpenTelemetry meter backed by a Prometheus
// exporter. When disabled, instruments are created against a reader-less
// provider and every recording is a no-op.
func NewTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var provider *sdkmetric.MeterProvider
	var promHandler http.Handler

	if cfg.Enabled {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		))
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}

		provider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		promHandler = promhttp.Handler()
	} else {
		provider = sdkmetric.NewMeterProvider()
	}

	otel.SetMeterProvider(provider)
	meter := provider.Meter(MeterName)

	t := &Telemetry{
		MeterProvider:  provider,
		Meter:          meter,
		PrometheusHTTP: promHandler,
		logger:         logger,
	}

	var err error
	if t.runsTotal, err = meter.Int64Counter("pipeline_runs_total",
		metric.WithDescription("Number of completed pipeline runs")); err != nil {
		return nil, err
	}
	if t.runDuration, err = meter.Float64Histogram("pipeline_run_duration_seconds",
		metric.WithDescription("Wall-clock duration of a full pipeline run"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if t.rowsDropped, err = meter.Int64Counter("pipeline_rows_dropped_total",
		metric.WithDescription("Rows discarded, labeled by stage and reason")); err != nil {
		return nil, err
	}
	if t.rowsKept, err = meter.Int64Counter("pipeline_rows_kept_total",
		metric.WithDescription("Rows surviving each stage")); err != nil {
		return nil, err
	}

	return t, nil
}

// RecordRun records one completed pipeline run.
func (t *Telemetry) RecordRun(ctx context.Context, duration time.Duration) {
	t.runsTotal.Add(ctx, 1)
	t.runDuration.Record(ctx, duration.Seconds())
}

// RecordDroppedRows records rows discarded by a stage for a given reason.
func (t *Telemetry) RecordDroppedRows(ctx context.Context, stage, reason string, count int) {
	if count <= 0 {
		return
	}
	t.rowsDropped.Add(ctx, int64(count),
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("reason", reason),
		))
}

// RecordKeptRows records the row count surviving a stage.
func (t *Telemetry) RecordKeptRows(ctx context.Context, stage string, count int) {
	t.rowsKept.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("stage", stage)))
}

// Shutdown flushes and stops the meter provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.MeterProvider == nil {
		return nil
	}
	return t.MeterProvider.Shutdown(ctx)
}
