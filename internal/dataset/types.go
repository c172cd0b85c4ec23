// Package dataset loads the wide-format source tables and reshapes them
// into tidy (country, year, value) observations.
package dataset

// WideTable is a raw source table: one row per country, one column per
// year, cell values kept as the strings found in the file.
type WideTable struct {
	// Metric names the measure the table carries, e.g. "incidence".
	Metric string
	// YearColumns holds the year column headers in file order.
	YearColumns []string
	Rows        []WideRow
}

// WideRow is a single country's row. Cells is parallel to the table's
// YearColumns; missing trailing cells are represented as "".
type WideRow struct {
	Country string
	Cells   []string
}

// Observation is one tidy record: a single metric value for a
// (country, year) pair. Value is nil when the source cell was empty or
// unparseable.
type Observation struct {
	Country string
	Year    int
	Metric  string
	Value   *float64
}

// Float returns a pointer to v, for building observations in literals.
func Float(v float64) *float64 {
	return &v
}
