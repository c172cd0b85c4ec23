package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableClassifier_CanonicalNames(t *testing.T) {
	c := NewTableClassifier()

	assert.Equal(t, Africa, c.ContinentOf("Kenya"))
	assert.Equal(t, Asia, c.ContinentOf("India"))
	assert.Equal(t, America, c.ContinentOf("Brazil"))
	assert.Equal(t, Europe, c.ContinentOf("France"))
	assert.Equal(t, Oceania, c.ContinentOf("Papua New Guinea"))
}

func TestTableClassifier_Normalization(t *testing.T) {
	c := NewTableClassifier()

	assert.Equal(t, Africa, c.ContinentOf("  kenya "))
	assert.Equal(t, Africa, c.ContinentOf("COTE D'IVOIRE"))
	assert.Equal(t, Africa, c.ContinentOf("Côte d'Ivoire"))
	assert.Equal(t, America, c.ContinentOf("saint kitts  and nevis"))
}

func TestTableClassifier_Aliases(t *testing.T) {
	c := NewTableClassifier()

	assert.Equal(t, Africa, c.ContinentOf("Congo, Dem. Rep."))
	assert.Equal(t, Africa, c.ContinentOf("Zaire"))
	assert.Equal(t, Africa, c.ContinentOf("Ivory Coast"))
	assert.Equal(t, Asia, c.ContinentOf("Viet Nam"))
	assert.Equal(t, Asia, c.ContinentOf("Burma"))
	assert.Equal(t, Europe, c.ContinentOf("Czech Republic"))
	assert.Equal(t, America, c.ContinentOf("St. Lucia"))
}

func TestTableClassifier_Unresolved(t *testing.T) {
	c := NewTableClassifier()

	got := c.ContinentOf("Atlantis")
	assert.Equal(t, ContinentUnknown, got)
	assert.False(t, got.Known())
	assert.Equal(t, "Unknown", got.String())
}

func TestClassifierFunc(t *testing.T) {
	fixed := ClassifierFunc(func(string) Continent { return Asia })
	assert.Equal(t, Asia, fixed.ContinentOf("anything"))
}
