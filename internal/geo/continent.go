// Package geo classifies country display names into continents.
package geo

// Continent is one of the fixed world-region labels attached to every
// joined record.
type Continent string

const (
	Africa  Continent = "Africa"
	Asia    Continent = "Asia"
	America Continent = "America"
	Europe  Continent = "Europe"
	Oceania Continent = "Oceania"
	// ContinentUnknown is the sentinel for countries the classifier
	// could not resolve. The cleaner drops such rows.
	ContinentUnknown Continent = ""
)

// Continents lists the known continents in display order.
var Continents = []Continent{Africa, Asia, America, Europe, Oceania}

// Known reports whether c is a resolved continent.
func (c Continent) Known() bool {
	return c != ContinentUnknown
}

// String returns the display label, or "Unknown" for the sentinel.
func (c Continent) String() string {
	if c == ContinentUnknown {
		return "Unknown"
	}
	return string(c)
}

// Classifier resolves a country display name to a continent. The
// pipeline depends only on this interface so the mapping source can be
// swapped without touching the join logic.
type Classifier interface {
	ContinentOf(country string) Continent
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(country string) Continent

// ContinentOf implements Classifier.
func (f ClassifierFunc) ContinentOf(country string) Continent {
	return f(country)
}
