// Package analytics exposes the descriptive queries the dashboard
// consumes, as pure functions over the cleaned record set.
package analytics

import (
	"epipulse/internal/geo"
	"epipulse/internal/pipeline"
)

// YearTotal is the incidence sum across all countries for one year.
type YearTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// CountryMax is a country's maximum incidence over the observed years.
type CountryMax struct {
	Country   string        `json:"country"`
	Continent geo.Continent `json:"continent"`
	Incidence float64       `json:"malaria_incidence_per_100k"`
}

// ContinentMax is the record attaining the maximum incidence within a
// continent.
type ContinentMax struct {
	Continent geo.Continent          `json:"continent"`
	Record    pipeline.CleanedRecord `json:"record"`
}

// Dimension is a grouping key for MeanBy.
type Dimension string

const (
	DimContinent Dimension = "continent"
	DimYear      Dimension = "year"
	DimCountry   Dimension = "country"
)

// MeanGroup is one group's arithmetic means. Key fields not named in
// the grouping dimensions stay at their zero values. UrbanN counts the
// records contributing to MeanUrbanPct, which skips null urban cells.
type MeanGroup struct {
	Continent     geo.Continent `json:"continent,omitempty"`
	Country       string        `json:"country,omitempty"`
	Year          int           `json:"year,omitempty"`
	MeanIncidence float64       `json:"mean_incidence"`
	MeanUrbanPct  float64       `json:"mean_urban_percent"`
	UrbanN        int           `json:"urban_n"`
	N             int           `json:"n"`
}

// CountryChange is a country's incidence percentage change between the
// baseline and comparison years.
type CountryChange struct {
	Country   string        `json:"country"`
	Continent geo.Continent `json:"continent"`
	Baseline  float64       `json:"baseline"`
	Latest    float64       `json:"latest"`
	ChangePct float64       `json:"change_pct"`
}

// Field selects a numeric field of a cleaned record for correlation.
type Field string

const (
	FieldIncidence  Field = "incidence"
	FieldUrbanPct   Field = "urban_pct"
	FieldPopulation Field = "population"
)

// value returns the field's value for r, nil when missing.
func (f Field) value(r pipeline.CleanedRecord) *float64 {
	switch f {
	case FieldIncidence:
		v := r.Incidence
		return &v
	case FieldUrbanPct:
		return r.UrbanPct
	case FieldPopulation:
		return r.Population
	default:
		return nil
	}
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	switch f {
	case FieldIncidence, FieldUrbanPct, FieldPopulation:
		return true
	}
	return false
}

// Tier is the coarse urbanization bucket.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// Summary bundles the headline values shown on the dashboard.
type Summary struct {
	Records        int                    `json:"records"`
	Countries      int                    `json:"countries"`
	Years          [2]int                 `json:"year_range"`
	PeakYear       YearTotal              `json:"peak_year"`
	GlobalMax      pipeline.CleanedRecord `json:"global_max"`
	DeclinePct     *float64               `json:"decline_pct,omitempty"`
	BaselineYear   int                    `json:"baseline_year"`
	ComparisonYear int                    `json:"comparison_year"`
}
