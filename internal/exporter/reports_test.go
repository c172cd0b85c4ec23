package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epipulse/internal/dataset"
	"epipulse/internal/geo"
	"epipulse/internal/pipeline"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		RunID: "test-run",
		Records: []pipeline.CleanedRecord{
			{Country: "X", Year: 1990, Incidence: 100, UrbanPct: dataset.Float(20), Population: dataset.Float(1_000_000), Continent: geo.Asia},
			{Country: "X", Year: 2005, Incidence: 40, UrbanPct: dataset.Float(80), Population: dataset.Float(2_000_000), Continent: geo.Asia},
			{Country: "Y", Year: 1990, Incidence: 300, Continent: geo.Africa},
			{Country: "Y", Year: 2005, Incidence: 150, Continent: geo.Africa},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	err := w.WriteCSV("sub/out.csv", WriteOptions{
		Headers:   []string{"A", "B"},
		Records:   [][]string{{"1", "2"}, {"3", "4"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "sub", "out.csv"))
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"))
	assert.Contains(t, content, "A,B")
	assert.Contains(t, content, "3,4")
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWriter(dir, nil)

	require.NoError(t, w.WriteAll(sampleResult(), 5, 1990, 2005))

	for _, name := range []string{CleanedFile, YearlyTotalsFile, TopCountriesFile, ContinentMeansFile, PctChangeFile, SummaryFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	cleaned, err := os.ReadFile(filepath.Join(dir, CleanedFile))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "X,1990,100,20,1000000,Asia,Low")
	assert.Contains(t, string(cleaned), "X,2005,40,80,2000000,Asia,High")
	// Null urban/population cells stay empty, tier included.
	assert.Contains(t, string(cleaned), "Y,1990,300,,,Africa,")

	totals, err := os.ReadFile(filepath.Join(dir, YearlyTotalsFile))
	require.NoError(t, err)
	assert.Contains(t, string(totals), "1990,400")
	assert.Contains(t, string(totals), "2005,190")

	var payload struct {
		RunID   string `json:"run_id"`
		Summary struct {
			Records    int      `json:"records"`
			DeclinePct *float64 `json:"decline_pct"`
		} `json:"summary"`
	}
	summaryData, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(summaryData, &payload))
	assert.Equal(t, "test-run", payload.RunID)
	assert.Equal(t, 4, payload.Summary.Records)
	require.NotNil(t, payload.Summary.DeclinePct)
	assert.InDelta(t, 52.5, *payload.Summary.DeclinePct, 1e-9)
}

func TestWriteAll_EmptyResultFails(t *testing.T) {
	w := NewReportWriter(t.TempDir(), nil)
	err := w.WriteAll(&pipeline.Result{RunID: "empty"}, 5, 1990, 2005)
	require.Error(t, err)
}
