package pipeline

import (
	"sort"

	"epipulse/internal/dataset"
	"epipulse/internal/geo"
)

type joinKey struct {
	country string
	year    int
}

// Join inner-joins the three tidy streams on (country, year): urban is
// joined against population first, then incidence against that result.
// Rows absent from any one stream are dropped, not null-filled; the
// returned stats count every drop. The continent is resolved once per
// distinct country; unresolved countries carry the unknown sentinel.
//
// Output is sorted by (country, year), so for fixed inputs and a
// deterministic classifier the result is identical across runs
// regardless of input ordering.
func Join(incidence, urban, population []dataset.Observation, classifier geo.Classifier) ([]JoinedRecord, JoinStats) {
	stats := JoinStats{
		IncidenceRows:  len(incidence),
		UrbanRows:      len(urban),
		PopulationRows: len(population),
	}

	popByKey := make(map[joinKey]*float64, len(population))
	for _, obs := range population {
		popByKey[joinKey{obs.Country, obs.Year}] = obs.Value
	}

	type urbanPop struct {
		urban      *float64
		population *float64
	}
	urbanPopByKey := make(map[joinKey]urbanPop, len(urban))
	for _, obs := range urban {
		key := joinKey{obs.Country, obs.Year}
		pop, ok := popByKey[key]
		if !ok {
			stats.UrbanUnmatched++
			continue
		}
		urbanPopByKey[key] = urbanPop{urban: obs.Value, population: pop}
	}
	stats.PopulationUnmatched = len(popByKey) - len(urbanPopByKey)

	continents := make(map[string]geo.Continent)
	continentOf := func(country string) geo.Continent {
		if c, ok := continents[country]; ok {
			return c
		}
		c := classifier.ContinentOf(country)
		continents[country] = c
		if !c.Known() {
			stats.UnclassifiedCountries++
		}
		return c
	}

	joined := make([]JoinedRecord, 0, len(incidence))
	for _, obs := range incidence {
		key := joinKey{obs.Country, obs.Year}
		up, ok := urbanPopByKey[key]
		if !ok {
			stats.IncidenceUnmatched++
			continue
		}
		joined = append(joined, JoinedRecord{
			Country:    obs.Country,
			Year:       obs.Year,
			Incidence:  obs.Value,
			UrbanPct:   up.urban,
			Population: up.population,
			Continent:  continentOf(obs.Country),
		})
	}
	stats.Joined = len(joined)

	sort.Slice(joined, func(i, j int) bool {
		if joined[i].Country != joined[j].Country {
			return joined[i].Country < joined[j].Country
		}
		return joined[i].Year < joined[j].Year
	})

	return joined, stats
}
