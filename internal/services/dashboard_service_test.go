package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epipulse/internal/analytics"
	"epipulse/internal/config"
	"epipulse/internal/geo"
	"epipulse/internal/pipeline"
)

func testService() *DashboardService {
	result := &pipeline.Result{
		RunID: "svc-test",
		Records: []pipeline.CleanedRecord{
			{Country: "Kenya", Year: 1990, Incidence: 100, Continent: geo.Africa},
			{Country: "Kenya", Year: 2005, Incidence: 60, Continent: geo.Africa},
			{Country: "Mali", Year: 1990, Incidence: 250, Continent: geo.Africa},
			{Country: "Mali", Year: 2005, Incidence: 200, Continent: geo.Africa},
			{Country: "India", Year: 1990, Incidence: 50, Continent: geo.Asia},
		},
	}
	cfg := config.PipelineConfig{
		ExcludedYear:   2006,
		BaselineYear:   1990,
		ComparisonYear: 2005,
		DefaultTopN:    2,
	}
	return NewDashboardService(result, cfg, nil)
}

func TestTopCountries_DefaultN(t *testing.T) {
	s := testService()

	top, err := s.TopCountries(context.Background(), 0)
	require.NoError(t, err)
	// Falls back to the configured default of 2.
	require.Len(t, top, 2)
	assert.Equal(t, "Mali", top[0].Country)
	assert.Equal(t, "Kenya", top[1].Country)
}

func TestPctChange_UsesConfiguredYears(t *testing.T) {
	s := testService()

	changes, err := s.PctChange(context.Background())
	require.NoError(t, err)
	// India has no 2005 record and is excluded.
	require.Len(t, changes, 2)
	assert.Equal(t, "Kenya", changes[0].Country)
	assert.InDelta(t, -40.0, changes[0].ChangePct, 1e-9)
}

func TestContinentMeans_ByYearToggle(t *testing.T) {
	s := testService()

	flat, err := s.ContinentMeans(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, flat, 2)

	byYear, err := s.ContinentMeans(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, byYear, 3)
}

func TestCorrelation_Delegates(t *testing.T) {
	s := testService()

	_, err := s.Correlation(context.Background(), analytics.FieldIncidence, analytics.FieldUrbanPct)
	// All urban cells are null in this fixture.
	require.Error(t, err)
}
