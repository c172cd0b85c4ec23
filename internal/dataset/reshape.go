package dataset

import (
	"strconv"
	"strings"
)

// Reshape converts a wide table into tidy observations: one per
// (country, year-column) cell present in the table, including cells
// whose value is missing or unparseable. No rows are dropped at this
// stage; filtering belongs to the cleaner.
func Reshape(wide *WideTable) []Observation {
	if wide == nil {
		return nil
	}

	out := make([]Observation, 0, len(wide.Rows)*len(wide.YearColumns))
	for _, row := range wide.Rows {
		for i, col := range wide.YearColumns {
			year, err := strconv.Atoi(strings.TrimSpace(col))
			if err != nil {
				continue
			}
			var cell string
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			out = append(out, Observation{
				Country: row.Country,
				Year:    year,
				Metric:  wide.Metric,
				Value:   ParseCell(cell),
			})
		}
	}
	return out
}

// Widen reassembles a wide table from tidy observations, the inverse of
// Reshape for tables whose cells were already plain numbers. Countries
// appear in first-seen order; year columns ascend.
func Widen(metric string, observations []Observation) *WideTable {
	years := make([]int, 0)
	yearSeen := make(map[int]bool)
	countries := make([]string, 0)
	countrySeen := make(map[string]bool)
	cells := make(map[string]map[int]string)

	for _, obs := range observations {
		if !yearSeen[obs.Year] {
			yearSeen[obs.Year] = true
			years = insertSorted(years, obs.Year)
		}
		if !countrySeen[obs.Country] {
			countrySeen[obs.Country] = true
			countries = append(countries, obs.Country)
			cells[obs.Country] = make(map[int]string)
		}
		if obs.Value != nil {
			cells[obs.Country][obs.Year] = strconv.FormatFloat(*obs.Value, 'f', -1, 64)
		}
	}

	table := &WideTable{Metric: metric}
	for _, y := range years {
		table.YearColumns = append(table.YearColumns, strconv.Itoa(y))
	}
	for _, c := range countries {
		row := WideRow{Country: c, Cells: make([]string, len(years))}
		for i, y := range years {
			row.Cells[i] = cells[c][y]
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func insertSorted(years []int, y int) []int {
	i := 0
	for i < len(years) && years[i] < y {
		i++
	}
	years = append(years, 0)
	copy(years[i+1:], years[i:])
	years[i] = y
	return years
}
