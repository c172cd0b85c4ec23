package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"epipulse/internal/analytics"
	"epipulse/internal/pipeline"
)

// Report file names written by WriteAll.
const (
	CleanedFile        = "cleaned_records.csv"
	YearlyTotalsFile   = "yearly_totals.csv"
	TopCountriesFile   = "top_countries.csv"
	ContinentMeansFile = "continent_year_means.csv"
	PctChangeFile      = "pct_change.csv"
	SummaryFile        = "summary.json"
)

// ReportWriter renders one pipeline result into the full report set.
type ReportWriter struct {
	csv    *CSVWriter
	dir    string
	logger *slog.Logger
}

// NewReportWriter creates a report writer targeting reportsDir.
func NewReportWriter(reportsDir string, logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		csv:    NewCSVWriter(reportsDir, logger),
		dir:    reportsDir,
		logger: logger,
	}
}

// WriteAll writes every report for the given result. topN controls the
// length of the top-countries table; baseline and comparison are the
// pct-change years.
func (w *ReportWriter) WriteAll(result *pipeline.Result, topN, baselineYear, comparisonYear int) error {
	if err := w.writeCleaned(result.Records); err != nil {
		return err
	}
	if err := w.writeYearlyTotals(result.Records); err != nil {
		return err
	}
	if err := w.writeTopCountries(result.Records, topN); err != nil {
		return err
	}
	if err := w.writeContinentMeans(result.Records); err != nil {
		return err
	}
	if err := w.writePctChange(result.Records, baselineYear, comparisonYear); err != nil {
		return err
	}
	return w.writeSummary(result, baselineYear, comparisonYear)
}

func (w *ReportWriter) writeCleaned(records []pipeline.CleanedRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Country,
			strconv.Itoa(r.Year),
			formatFloat(r.Incidence),
			formatOptional(r.UrbanPct),
			formatOptional(r.Population),
			r.Continent.String(),
			tierCell(r.UrbanPct),
		})
	}
	return w.csv.WriteCSV(CleanedFile, WriteOptions{
		Headers:   []string{"Country", "Year", "IncidencePer100k", "UrbanPercent", "Population", "Continent", "UrbanTier"},
		Records:   rows,
		BOMPrefix: true,
	})
}

func (w *ReportWriter) writeYearlyTotals(records []pipeline.CleanedRecord) error {
	totals := analytics.YearlyTotals(records)
	rows := make([][]string, 0, len(totals))
	for _, yt := range totals {
		rows = append(rows, []string{strconv.Itoa(yt.Year), formatFloat(yt.Total)})
	}
	return w.csv.WriteCSV(YearlyTotalsFile, WriteOptions{
		Headers: []string{"Year", "TotalIncidence"},
		Records: rows,
	})
}

func (w *ReportWriter) writeTopCountries(records []pipeline.CleanedRecord, topN int) error {
	top, err := analytics.TopNByMax(records, topN)
	if err != nil {
		return fmt.Errorf("top countries report: %w", err)
	}
	rows := make([][]string, 0, len(top))
	for _, cm := range top {
		rows = append(rows, []string{cm.Country, cm.Continent.String(), formatFloat(cm.Incidence)})
	}
	return w.csv.WriteCSV(TopCountriesFile, WriteOptions{
		Headers: []string{"Country", "Continent", "MaxIncidencePer100k"},
		Records: rows,
	})
}

func (w *ReportWriter) writeContinentMeans(records []pipeline.CleanedRecord) error {
	groups, err := analytics.MeanBy(records, analytics.DimContinent, analytics.DimYear)
	if err != nil {
		return fmt.Errorf("continent means report: %w", err)
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Continent.String(),
			strconv.Itoa(g.Year),
			formatFloat(g.MeanIncidence),
			formatFloat(g.MeanUrbanPct),
			strconv.Itoa(g.N),
		})
	}
	return w.csv.WriteCSV(ContinentMeansFile, WriteOptions{
		Headers: []string{"Continent", "Year", "MeanIncidence", "MeanUrbanPercent", "Countries"},
		Records: rows,
	})
}

func (w *ReportWriter) writePctChange(records []pipeline.CleanedRecord, baselineYear, comparisonYear int) error {
	changes, err := analytics.PctChangeBetween(records, baselineYear, comparisonYear)
	if err != nil {
		return fmt.Errorf("pct change report: %w", err)
	}
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Country,
			c.Continent.String(),
			formatFloat(c.Baseline),
			formatFloat(c.Latest),
			formatFloat(c.ChangePct),
		})
	}
	return w.csv.WriteCSV(PctChangeFile, WriteOptions{
		Headers: []string{"Country", "Continent", strconv.Itoa(baselineYear), strconv.Itoa(comparisonYear), "ChangePct"},
		Records: rows,
	})
}

func (w *ReportWriter) writeSummary(result *pipeline.Result, baselineYear, comparisonYear int) error {
	summary, err := analytics.BuildSummary(result.Records, baselineYear, comparisonYear)
	if err != nil {
		return fmt.Errorf("summary report: %w", err)
	}

	payload := struct {
		RunID      string              `json:"run_id"`
		Summary    analytics.Summary   `json:"summary"`
		JoinStats  pipeline.JoinStats  `json:"join_stats"`
		CleanStats pipeline.CleanStats `json:"clean_stats"`
	}{
		RunID:      result.RunID,
		Summary:    summary,
		JoinStats:  result.JoinStats,
		CleanStats: result.CleanStats,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	path := filepath.Join(w.dir, SummaryFile)
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	w.logger.Info("summary report written", slog.String("path", path))
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func tierCell(urbanPct *float64) string {
	if urbanPct == nil {
		return ""
	}
	return string(analytics.UrbanTier(*urbanPct))
}
