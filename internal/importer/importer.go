// Package importer provides CSV and Excel import functionality for part lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/StickCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Material  int
	Grain     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "part", "part name", "description", "desc", "piece", "item"},
	"length":    {"length", "len", "l", "x"},
	"width":     {"width", "w", "y"},
	"thickness": {"thickness", "thick", "t", "depth", "z", "height", "h"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"material":  {"material", "mat", "species", "wood"},
	"grain":     {"grain", "grain direction", "direction", "grain dir"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:      -1,
		Length:    -1,
		Width:     -1,
		Thickness: -1,
		Quantity:  -1,
		Material:  -1,
		Grain:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "name":
						if mapping.Name == -1 {
							mapping.Name = i
						}
					case "length":
						if mapping.Length == -1 {
							mapping.Length = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "thickness":
						if mapping.Thickness == -1 {
							mapping.Thickness = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "material":
						if mapping.Material == -1 {
							mapping.Material = i
						}
					case "grain":
						if mapping.Grain == -1 {
							mapping.Grain = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, Length, Width, Thickness, Quantity, Material, Grain
		return ColumnMapping{
			Name:      0,
			Length:    1,
			Width:     2,
			Thickness: 3,
			Quantity:  4,
			Material:  5,
			Grain:     6,
		}, false
	}

	return mapping, true
}

// parseGrain converts a grain column value to a grain-along-length flag.
// It returns the flag and a boolean indicating whether the string was recognized.
func parseGrain(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length", "along", "yes", "y", "true", "1":
		return true, true
	case "", "none", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDim parses a required positive dimension cell.
func parseDim(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// parseRow extracts a Part from a row using the given column mapping.
// Returns the part, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.Part, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", partCount+1)
	}

	length, errMsg := parseDim(row, mapping.Length, "length", rowLabel)
	if errMsg != "" {
		return model.Part{}, errMsg, ""
	}
	width, errMsg := parseDim(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return model.Part{}, errMsg, ""
	}
	thickness, errMsg := parseDim(row, mapping.Thickness, "thickness", rowLabel)
	if errMsg != "" {
		return model.Part{}, errMsg, ""
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if length <= 0 || width <= 0 || thickness <= 0 || qty <= 0 {
		return model.Part{}, fmt.Sprintf("%s: Length, width, thickness, and quantity must be positive", rowLabel), ""
	}

	part := model.NewPart(name, length, width, thickness, qty)
	part.Material = getCell(row, mapping.Material)

	// Optional grain direction
	var warning string
	grainStr := getCell(row, mapping.Grain)
	if grainStr != "" {
		along, ok := parseGrain(grainStr)
		if ok {
			part.GrainAlongLength = along
		} else {
			warning = fmt.Sprintf("%s: Unknown grain direction '%s', ignoring", rowLabel, grainStr)
		}
	}

	return part, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports parts from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports parts from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports parts from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into parts.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Thickness == -1 {
			missing = append(missing, "Thickness")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) >= 4 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				// First column after the name is not numeric - might be an unrecognized header
				// Skip it as a header but use positional mapping
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		part, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Parts))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Parts = append(result.Parts, part)
	}

	return result
}
