// Package importer reads surface lists from CSV and Excel files. It supports
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition, so lists exported from other tools
// load without manual reshaping.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/pattern"
	"github.com/piwi3910/TilePlan/internal/unit"
)

// Surface is one imported row: a named rectangular surface plus optional
// tile/gap overrides in millimeters.
type Surface struct {
	Label string
	Input layout.Input
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Surfaces []Surface
	Errors   []string
	Warnings []string
}

// Defaults supplies the tile size, gap, alignment, and pattern applied to
// rows that do not override them.
type Defaults struct {
	TileWidth  unit.MicroUnit
	TileHeight unit.MicroUnit
	Gap        unit.MicroUnit
	Pattern    pattern.Pattern
}

// columnMapping maps semantic column roles to their indices in the data.
// -1 marks an absent column.
type columnMapping struct {
	label      int
	width      int
	height     int
	tileWidth  int
	tileHeight int
	gap        int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"label":       {"label", "name", "surface", "room", "wall", "description", "desc"},
	"width":       {"width", "w", "area width", "x"},
	"height":      {"height", "h", "area height", "y"},
	"tile width":  {"tile width", "tile w", "tilewidth"},
	"tile height": {"tile height", "tile h", "tileheight"},
	"gap":         {"gap", "grout", "joint", "gap mm"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, rec := range records {
			if len(rec) == firstCols {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestDelimiter = delim
		}
	}
	return bestDelimiter
}

// mapHeaders resolves a header row to column indices using the alias table.
func mapHeaders(header []string) columnMapping {
	m := columnMapping{label: -1, width: -1, height: -1, tileWidth: -1, tileHeight: -1, gap: -1}
	assign := func(canonical string, idx int) {
		switch canonical {
		case "label":
			m.label = idx
		case "width":
			m.width = idx
		case "height":
			m.height = idx
		case "tile width":
			m.tileWidth = idx
		case "tile height":
			m.tileHeight = idx
		case "gap":
			m.gap = idx
		}
	}
	for idx, h := range header {
		cell := strings.ToLower(strings.TrimSpace(h))
		for canonical, aliases := range headerAliases {
			for _, alias := range aliases {
				if cell == alias {
					assign(canonical, idx)
				}
			}
		}
	}
	return m
}

// Import loads a surface list from path, dispatching on the file extension
// (.csv/.txt read as CSV, .xlsx as an Excel workbook).
func Import(path string, defaults Defaults) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ImportXLSX(path, defaults)
	default:
		return ImportCSV(path, defaults)
	}
}

// ImportCSV reads surfaces from a delimited text file.
func ImportCSV(path string, defaults Defaults) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read file: %v", err))
		return result
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse CSV: %v", err))
		return result
	}
	return parseRecords(records, defaults)
}

// ImportXLSX reads surfaces from the first sheet of an Excel workbook.
func ImportXLSX(path string, defaults Defaults) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open workbook: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Workbook contains no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read sheet %q: %v", sheets[0], err))
		return result
	}
	return parseRecords(rows, defaults)
}

// parseRecords converts raw rows into surfaces. The first row must be a
// header with at least width and height columns.
func parseRecords(records [][]string, defaults Defaults) ImportResult {
	result := ImportResult{}
	if len(records) < 2 {
		result.Errors = append(result.Errors, "File needs a header row and at least one data row")
		return result
	}

	m := mapHeaders(records[0])
	if m.width < 0 || m.height < 0 {
		result.Errors = append(result.Errors, "Header row is missing width/height columns")
		return result
	}

	for i, rec := range records[1:] {
		rowNum := i + 2
		w, err := parseMM(rec, m.width)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: bad width: %v", rowNum, err))
			continue
		}
		h, err := parseMM(rec, m.height)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: bad height: %v", rowNum, err))
			continue
		}

		in := layout.Input{
			AreaWidth:  w,
			AreaHeight: h,
			TileWidth:  defaults.TileWidth,
			TileHeight: defaults.TileHeight,
			Gap:        defaults.Gap,
			Horizontal: layout.AlignLeft,
			Vertical:   layout.AlignTop,
			Pattern:    defaults.Pattern,
		}
		if v, err := parseMM(rec, m.tileWidth); err == nil && v > 0 {
			in.TileWidth = v
		}
		if v, err := parseMM(rec, m.tileHeight); err == nil && v > 0 {
			in.TileHeight = v
		}
		if v, err := parseMM(rec, m.gap); err == nil && v >= 0 && m.gap >= 0 {
			in.Gap = v
		}

		label := fmt.Sprintf("Surface %d", rowNum-1)
		if m.label >= 0 && m.label < len(rec) && strings.TrimSpace(rec[m.label]) != "" {
			label = strings.TrimSpace(rec[m.label])
		}

		if err := in.Validate(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d (%s): %v", rowNum, label, err))
			continue
		}
		result.Surfaces = append(result.Surfaces, Surface{Label: label, Input: in})
	}

	if len(result.Surfaces) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No valid surfaces found")
	}
	return result
}

// parseMM reads a millimeter value (possibly fractional) from column idx and
// converts it to MicroUnits. Fractions finer than 0.001 mm are truncated.
func parseMM(rec []string, idx int) (unit.MicroUnit, error) {
	if idx < 0 || idx >= len(rec) {
		return 0, fmt.Errorf("column missing")
	}
	s := strings.TrimSpace(strings.ReplaceAll(rec[idx], ",", "."))
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return unit.MicroUnit(f * 1000), nil
}
