// Package services bridges the pipeline snapshot and the analytics
// queries for the transport layer.
package services

import (
	"context"
	"log/slog"

	"epipulse/internal/analytics"
	"epipulse/internal/config"
	"epipulse/internal/pipeline"
)

// DashboardService serves analytics queries over one immutable pipeline
// result. The snapshot never mutates after construction, so the service
// is safe for concurrent request handling without locking.
type DashboardService struct {
	result *pipeline.Result
	cfg    config.PipelineConfig
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service over a pipeline result.
func NewDashboardService(result *pipeline.Result, cfg config.PipelineConfig, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		result: result,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// Result returns the underlying pipeline snapshot.
func (s *DashboardService) Result(ctx context.Context) *pipeline.Result {
	return s.result
}

// Summary returns the headline dashboard values.
func (s *DashboardService) Summary(ctx context.Context) (analytics.Summary, error) {
	return analytics.BuildSummary(s.result.Records, s.cfg.BaselineYear, s.cfg.ComparisonYear)
}

// YearlyTotals returns the incidence sum per year.
func (s *DashboardService) YearlyTotals(ctx context.Context) []analytics.YearTotal {
	return analytics.YearlyTotals(s.result.Records)
}

// TopCountries returns the n countries with the highest max incidence.
func (s *DashboardService) TopCountries(ctx context.Context, n int) ([]analytics.CountryMax, error) {
	if n <= 0 {
		n = s.cfg.DefaultTopN
	}
	return analytics.TopNByMax(s.result.Records, n)
}

// MaxByContinent returns the peak record per continent.
func (s *DashboardService) MaxByContinent(ctx context.Context) ([]analytics.ContinentMax, error) {
	return analytics.MaxByContinent(s.result.Records)
}

// ContinentMeans returns mean incidence and urban percentage per
// continent, optionally split by year.
func (s *DashboardService) ContinentMeans(ctx context.Context, byYear bool) ([]analytics.MeanGroup, error) {
	dims := []analytics.Dimension{analytics.DimContinent}
	if byYear {
		dims = append(dims, analytics.DimYear)
	}
	return analytics.MeanBy(s.result.Records, dims...)
}

// PctChange returns the per-country change between the configured
// baseline and comparison years.
func (s *DashboardService) PctChange(ctx context.Context) ([]analytics.CountryChange, error) {
	return analytics.PctChangeBetween(s.result.Records, s.cfg.BaselineYear, s.cfg.ComparisonYear)
}

// Decline returns the total-incidence decline between two years.
func (s *DashboardService) Decline(ctx context.Context, fromYear, toYear int) (float64, error) {
	return analytics.DeclinePct(s.result.Records, fromYear, toYear)
}

// Correlation returns the Pearson coefficient between two record fields.
func (s *DashboardService) Correlation(ctx context.Context, x, y analytics.Field) (float64, error) {
	return analytics.Correlation(s.result.Records, x, y)
}
