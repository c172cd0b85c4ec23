// Package http exposes the dashboard analytics as a JSON API.
package http

import (
	"context"

	"epipulse/internal/analytics"
	"epipulse/internal/pipeline"
)

// DashboardService is the contract the handlers depend on. The concrete
// implementation lives in internal/services; tests substitute fakes.
type DashboardService interface {
	Result(ctx context.Context) *pipeline.Result
	Summary(ctx context.Context) (analytics.Summary, error)
	YearlyTotals(ctx context.Context) []analytics.YearTotal
	TopCountries(ctx context.Context, n int) ([]analytics.CountryMax, error)
	MaxByContinent(ctx context.Context) ([]analytics.ContinentMax, error)
	ContinentMeans(ctx context.Context, byYear bool) ([]analytics.MeanGroup, error)
	PctChange(ctx context.Context) ([]analytics.CountryChange, error)
	Decline(ctx context.Context, fromYear, toYear int) (float64, error)
	Correlation(ctx context.Context, x, y analytics.Field) (float64, error)
}
