package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "epipulse/internal/errors"
)

// LoadTable reads a wide-format table from path, dispatching on the file
// extension: .xlsx via excelize, everything else as CSV.
func LoadTable(path, metric string) (*WideTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, metric)
	default:
		return LoadCSV(path, metric)
	}
}

// LoadCSV reads a wide-format CSV file. The first row is the header:
// a country column followed by year labels. A UTF-8 BOM is tolerated.
func LoadCSV(path, metric string) (*WideTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", path), err)
	}

	// Remove BOM if present
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse CSV %s", path), err)
	}

	return buildWideTable(rows, metric, path)
}

// LoadXLSX reads a wide-format table from the first sheet of an Excel
// workbook that carries a country header row.
func LoadXLSX(path, metric string) (*WideTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		if isCountryHeader(rows[0]) {
			return buildWideTable(rows, metric, path)
		}
	}

	return nil, apperrors.NewParsingError(
		fmt.Sprintf("no sheet with a country/year header found in %s", path), nil)
}

// buildWideTable assembles a WideTable from raw rows, validating the
// header shape.
func buildWideTable(rows [][]string, metric, source string) (*WideTable, error) {
	if len(rows) < 1 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s is empty", source), nil)
	}

	header := rows[0]
	if !isCountryHeader(header) {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("%s: first column must be country, got %q", source, firstCell(header)), nil)
	}

	table := &WideTable{Metric: metric, YearColumns: make([]string, 0, len(header)-1)}
	for _, col := range header[1:] {
		col = strings.TrimSpace(col)
		if _, err := strconv.Atoi(col); err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("%s: year column header %q is not an integer", source, col), nil)
		}
		table.YearColumns = append(table.YearColumns, col)
	}

	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		wr := WideRow{Country: strings.TrimSpace(row[0]), Cells: make([]string, len(table.YearColumns))}
		for i := range table.YearColumns {
			if i+1 < len(row) {
				wr.Cells[i] = strings.TrimSpace(row[i+1])
			}
		}
		table.Rows = append(table.Rows, wr)
	}

	return table, nil
}

func isCountryHeader(header []string) bool {
	if len(header) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(header[0]))
	return strings.Contains(first, "country") || strings.Contains(first, "entity")
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
