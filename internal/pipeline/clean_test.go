package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epipulse/internal/dataset"
	"epipulse/internal/geo"
)

func joinedRecord(country string, year int, incidence *float64, continent geo.Continent) JoinedRecord {
	return JoinedRecord{Country: country, Year: year, Incidence: incidence, Continent: continent}
}

func TestClean_DropRules(t *testing.T) {
	records := []JoinedRecord{
		joinedRecord("Kenya", 1990, dataset.Float(120), geo.Africa),
		joinedRecord("Kenya", 2006, dataset.Float(90), geo.Africa),     // excluded year
		joinedRecord("India", 1990, nil, geo.Asia),                     // null incidence
		joinedRecord("Atlantis", 1990, dataset.Float(5), geo.ContinentUnknown), // unresolved
	}

	cleaned, stats := Clean(records, 2006)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "Kenya", cleaned[0].Country)
	assert.Equal(t, 120.0, cleaned[0].Incidence)

	assert.Equal(t, 4, stats.Input)
	assert.Equal(t, 1, stats.DroppedNullIncidence)
	assert.Equal(t, 1, stats.DroppedUnclassified)
	assert.Equal(t, 1, stats.DroppedExcludedYear)
	assert.Equal(t, 1, stats.Output)
}

func TestClean_NeverEmitsExcludedYear(t *testing.T) {
	var records []JoinedRecord
	for year := 1990; year <= 2006; year++ {
		records = append(records, joinedRecord("Kenya", year, dataset.Float(float64(year)), geo.Africa))
	}

	cleaned, _ := Clean(records, 2006)

	require.Len(t, cleaned, 16)
	for _, r := range cleaned {
		assert.NotEqual(t, 2006, r.Year)
	}
}

func TestClean_NullUrbanAndPopulationKept(t *testing.T) {
	records := []JoinedRecord{{
		Country:   "Kenya",
		Year:      1995,
		Incidence: dataset.Float(100),
		Continent: geo.Africa,
		// UrbanPct and Population left nil on purpose.
	}}

	cleaned, stats := Clean(records, 2006)

	require.Len(t, cleaned, 1)
	assert.Nil(t, cleaned[0].UrbanPct)
	assert.Nil(t, cleaned[0].Population)
	assert.Equal(t, 1, stats.Output)
}

func TestClean_Empty(t *testing.T) {
	cleaned, stats := Clean(nil, 2006)
	assert.Empty(t, cleaned)
	assert.Equal(t, 0, stats.Input)
	assert.Equal(t, 0, stats.Output)
}
