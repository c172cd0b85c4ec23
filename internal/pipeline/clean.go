package pipeline

// Clean filters joined records down to the rows the aggregator may use.
// A record is dropped when its incidence value is null, its continent
// is unresolved, or its year equals excludedYear (the known-incomplete
// trailing year in the source data). Null urban percentage or
// population is not a drop criterion.
func Clean(records []JoinedRecord, excludedYear int) ([]CleanedRecord, CleanStats) {
	stats := CleanStats{Input: len(records)}

	cleaned := make([]CleanedRecord, 0, len(records))
	for _, r := range records {
		switch {
		case r.Incidence == nil:
			stats.DroppedNullIncidence++
		case !r.Continent.Known():
			stats.DroppedUnclassified++
		case r.Year == excludedYear:
			stats.DroppedExcludedYear++
		default:
			cleaned = append(cleaned, CleanedRecord{
				Country:    r.Country,
				Year:       r.Year,
				Incidence:  *r.Incidence,
				UrbanPct:   r.UrbanPct,
				Population: r.Population,
				Continent:  r.Continent,
			})
		}
	}
	stats.Output = len(cleaned)

	return cleaned, stats
}
