package analytics

import (
	"fmt"
	"sort"

	apperrors "epipulse/internal/errors"
	"epipulse/internal/geo"
	"epipulse/internal/pipeline"
)

// YearlyTotals sums incidence per year, ascending by year.
func YearlyTotals(records []pipeline.CleanedRecord) []YearTotal {
	totals := make(map[int]float64)
	for _, r := range records {
		totals[r.Year] += r.Incidence
	}

	out := make([]YearTotal, 0, len(totals))
	for year, total := range totals {
		out = append(out, YearTotal{Year: year, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// PeakYear returns the year whose incidence sum across all countries is
// largest. Ties resolve to the earliest year.
func PeakYear(records []pipeline.CleanedRecord) (YearTotal, error) {
	totals := YearlyTotals(records)
	if len(totals) == 0 {
		return YearTotal{}, apperrors.NewNoDataError("peak year")
	}

	peak := totals[0]
	for _, yt := range totals[1:] {
		if yt.Total > peak.Total {
			peak = yt
		}
	}
	return peak, nil
}

// GlobalMax returns the single record with the highest incidence. Ties
// resolve by ascending country name, then ascending year, so the result
// is deterministic.
func GlobalMax(records []pipeline.CleanedRecord) (pipeline.CleanedRecord, error) {
	if len(records) == 0 {
		return pipeline.CleanedRecord{}, apperrors.NewNoDataError("global max")
	}

	best := records[0]
	for _, r := range records[1:] {
		if beatsMax(r, best) {
			best = r
		}
	}
	return best, nil
}

// beatsMax reports whether candidate should replace current as the max
// record: strictly higher incidence, or equal incidence with an earlier
// (country, year) in the stable total order.
func beatsMax(candidate, current pipeline.CleanedRecord) bool {
	if candidate.Incidence != current.Incidence {
		return candidate.Incidence > current.Incidence
	}
	if candidate.Country != current.Country {
		return candidate.Country < current.Country
	}
	return candidate.Year < current.Year
}

// DeclinePct computes the percentage decline of total incidence from
// yearA to yearB: (sum(a) - sum(b)) / sum(a) * 100. A zero yearA sum is
// a DivisionByZero error, never a NaN.
func DeclinePct(records []pipeline.CleanedRecord, yearA, yearB int) (float64, error) {
	if len(records) == 0 {
		return 0, apperrors.NewNoDataError("decline pct")
	}

	var sumA, sumB float64
	for _, r := range records {
		switch r.Year {
		case yearA:
			sumA += r.Incidence
		case yearB:
			sumB += r.Incidence
		}
	}

	if sumA == 0 {
		return 0, apperrors.NewDivisionByZeroError("decline_pct").
			WithContext("year", yearA)
	}
	return (sumA - sumB) / sumA * 100, nil
}

// TopNByMax returns the n countries with the highest per-country maximum
// incidence, descending; ties break by ascending country name.
func TopNByMax(records []pipeline.CleanedRecord, n int) ([]CountryMax, error) {
	if n < 1 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("top-n count must be positive, got %d", n))
	}
	if len(records) == 0 {
		return nil, apperrors.NewNoDataError("top countries")
	}

	maxByCountry := make(map[string]CountryMax)
	for _, r := range records {
		current, seen := maxByCountry[r.Country]
		if !seen || r.Incidence > current.Incidence {
			maxByCountry[r.Country] = CountryMax{
				Country:   r.Country,
				Continent: r.Continent,
				Incidence: r.Incidence,
			}
		}
	}

	out := make([]CountryMax, 0, len(maxByCountry))
	for _, cm := range maxByCountry {
		out = append(out, cm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Incidence != out[j].Incidence {
			return out[i].Incidence > out[j].Incidence
		}
		return out[i].Country < out[j].Country
	})

	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// MaxByContinent returns, per continent present in the data, the record
// attaining the maximum incidence; ties break by ascending country
// name. Continents appear in display order.
func MaxByContinent(records []pipeline.CleanedRecord) ([]ContinentMax, error) {
	if len(records) == 0 {
		return nil, apperrors.NewNoDataError("max by continent")
	}

	best := make(map[geo.Continent]pipeline.CleanedRecord)
	for _, r := range records {
		current, seen := best[r.Continent]
		if !seen || beatsMax(r, current) {
			best[r.Continent] = r
		}
	}

	out := make([]ContinentMax, 0, len(best))
	for _, continent := range geo.Continents {
		if record, ok := best[continent]; ok {
			out = append(out, ContinentMax{Continent: continent, Record: record})
		}
	}
	return out, nil
}

// MeanBy computes arithmetic means of incidence (and urban percentage,
// over its non-null cells) grouped by the given dimensions. Groups with
// no contributing records are omitted, never zero-filled. Output is
// sorted by continent, country, year.
func MeanBy(records []pipeline.CleanedRecord, dims ...Dimension) ([]MeanGroup, error) {
	if len(dims) == 0 {
		return nil, apperrors.NewValidationError("at least one grouping dimension is required")
	}
	for _, d := range dims {
		switch d {
		case DimContinent, DimYear, DimCountry:
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown grouping dimension %q", d))
		}
	}
	if len(records) == 0 {
		return nil, apperrors.NewNoDataError("grouped means")
	}

	has := func(d Dimension) bool {
		for _, dim := range dims {
			if dim == d {
				return true
			}
		}
		return false
	}
	byContinent, byYear, byCountry := has(DimContinent), has(DimYear), has(DimCountry)

	type accum struct {
		group        MeanGroup
		incidenceSum float64
		urbanSum     float64
	}

	groups := make(map[MeanGroup]*accum)
	for _, r := range records {
		key := MeanGroup{}
		if byContinent {
			key.Continent = r.Continent
		}
		if byYear {
			key.Year = r.Year
		}
		if byCountry {
			key.Country = r.Country
		}

		a, ok := groups[key]
		if !ok {
			a = &accum{group: key}
			groups[key] = a
		}
		a.group.N++
		a.incidenceSum += r.Incidence
		if r.UrbanPct != nil {
			a.group.UrbanN++
			a.urbanSum += *r.UrbanPct
		}
	}

	out := make([]MeanGroup, 0, len(groups))
	for _, a := range groups {
		g := a.group
		g.MeanIncidence = a.incidenceSum / float64(g.N)
		if g.UrbanN > 0 {
			g.MeanUrbanPct = a.urbanSum / float64(g.UrbanN)
		}
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Continent != out[j].Continent {
			return out[i].Continent < out[j].Continent
		}
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Year < out[j].Year
	})
	return out, nil
}

// PctChangeBetween computes each country's incidence change between the
// baseline and comparison years, as a percentage of the baseline.
// Countries missing either year, or with a zero baseline, are excluded
// from the result rather than zero-filled. Output is sorted ascending
// by change (steepest decline first).
func PctChangeBetween(records []pipeline.CleanedRecord, baselineYear, comparisonYear int) ([]CountryChange, error) {
	if len(records) == 0 {
		return nil, apperrors.NewNoDataError("pct change")
	}

	type pair struct {
		baseline, latest *float64
		continent        geo.Continent
	}
	byCountry := make(map[string]*pair)
	for _, r := range records {
		if r.Year != baselineYear && r.Year != comparisonYear {
			continue
		}
		p, ok := byCountry[r.Country]
		if !ok {
			p = &pair{continent: r.Continent}
			byCountry[r.Country] = p
		}
		v := r.Incidence
		if r.Year == baselineYear {
			p.baseline = &v
		} else {
			p.latest = &v
		}
	}

	out := make([]CountryChange, 0, len(byCountry))
	for country, p := range byCountry {
		if p.baseline == nil || p.latest == nil || *p.baseline == 0 {
			continue
		}
		out = append(out, CountryChange{
			Country:   country,
			Continent: p.continent,
			Baseline:  *p.baseline,
			Latest:    *p.latest,
			ChangePct: (*p.latest - *p.baseline) / *p.baseline * 100,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ChangePct != out[j].ChangePct {
			return out[i].ChangePct < out[j].ChangePct
		}
		return out[i].Country < out[j].Country
	})
	return out, nil
}

// UrbanTier buckets an urban-population percentage: above 70 is High,
// below 30 is Low, everything else Medium. Total on all inputs.
func UrbanTier(pct float64) Tier {
	switch {
	case pct > 70:
		return TierHigh
	case pct < 30:
		return TierLow
	default:
		return TierMedium
	}
}
