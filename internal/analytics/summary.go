package analytics

import (
	"epipulse/internal/pipeline"
)

// BuildSummary assembles the headline dashboard values from one cleaned
// record set. The baseline→comparison decline is omitted (left nil)
// when its denominator is zero; every other computation failing means
// the record set itself is empty.
func BuildSummary(records []pipeline.CleanedRecord, baselineYear, comparisonYear int) (Summary, error) {
	peak, err := PeakYear(records)
	if err != nil {
		return Summary{}, err
	}
	globalMax, err := GlobalMax(records)
	if err != nil {
		return Summary{}, err
	}

	countries := make(map[string]bool)
	minYear, maxYear := records[0].Year, records[0].Year
	for _, r := range records {
		countries[r.Country] = true
		if r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}

	summary := Summary{
		Records:        len(records),
		Countries:      len(countries),
		Years:          [2]int{minYear, maxYear},
		PeakYear:       peak,
		GlobalMax:      globalMax,
		BaselineYear:   baselineYear,
		ComparisonYear: comparisonYear,
	}

	if decline, err := DeclinePct(records, baselineYear, comparisonYear); err == nil {
		summary.DeclinePct = &decline
	}

	return summary, nil
}
