// Package pipeline joins the three tidy observation streams, cleans the
// result, and orchestrates full dataset runs.
package pipeline

import (
	"time"

	"epipulse/internal/geo"
)

// JoinedRecord is one (country, year) pair present in all three source
// tables, with the continent attached. Urban percentage and population
// may still be null here.
type JoinedRecord struct {
	Country    string        `json:"country"`
	Year       int           `json:"year"`
	Incidence  *float64      `json:"malaria_incidence_per_100k"`
	UrbanPct   *float64      `json:"urban_percent"`
	Population *float64      `json:"population"`
	Continent  geo.Continent `json:"continent"`
}

// CleanedRecord is a joined record that survived cleaning: incidence is
// numeric, the continent resolved, and the year is not the excluded
// trailing year. Consumers needing urban percentage or population must
// still check for null.
type CleanedRecord struct {
	Country    string        `json:"country"`
	Year       int           `json:"year"`
	Incidence  float64       `json:"malaria_incidence_per_100k"`
	UrbanPct   *float64      `json:"urban_percent,omitempty"`
	Population *float64      `json:"population,omitempty"`
	Continent  geo.Continent `json:"continent"`
}

// JoinStats counts rows discarded by the inner joins. The joins drop
// silently, so these counts are the audit trail for data-completeness
// review.
type JoinStats struct {
	UrbanRows        int `json:"urban_rows"`
	PopulationRows   int `json:"population_rows"`
	IncidenceRows    int `json:"incidence_rows"`
	UrbanUnmatched   int `json:"urban_unmatched"`
	PopulationUnmatched int `json:"population_unmatched"`
	IncidenceUnmatched  int `json:"incidence_unmatched"`
	UnclassifiedCountries int `json:"unclassified_countries"`
	Joined           int `json:"joined"`
}

// CleanStats counts rows discarded by each cleaning rule.
type CleanStats struct {
	Input                int `json:"input"`
	DroppedNullIncidence int `json:"dropped_null_incidence"`
	DroppedUnclassified  int `json:"dropped_unclassified"`
	DroppedExcludedYear  int `json:"dropped_excluded_year"`
	Output               int `json:"output"`
}

// Result is the immutable snapshot produced by one pipeline run.
type Result struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Records     []CleanedRecord `json:"records"`
	JoinStats   JoinStats       `json:"join_stats"`
	CleanStats  CleanStats      `json:"clean_stats"`
}
