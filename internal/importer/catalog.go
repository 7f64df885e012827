package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roomfit/roomfit/internal/model"
)

// CatalogImport holds the results of a furniture list import.
type CatalogImport struct {
	Entries  []model.FurnitureSpec
	Errors   []string
	Warnings []string
}

// columnMapping maps semantic column roles to their indices in the data.
type columnMapping struct {
	Name  int
	Width int
	Depth int
	Seats int
	Price int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase). Venues send furniture lists with wildly different headings.
var headerAliases = map[string][]string{
	"name":  {"name", "label", "furniture", "item", "table", "description", "desc"},
	"width": {"width", "w", "table width", "length", "len"},
	"depth": {"depth", "d", "table depth", "height", "h"},
	"seats": {"seats", "seat", "seating", "capacity", "persons", "pax"},
	"price": {"price", "unit price", "cost", "rate", "price per unit"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe; the one producing the most consistent
// multi-column row shape wins.
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
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}
	return bestDelimiter
}

// detectColumns examines a header row and returns a columnMapping. Matching
// is case-insensitive against the known aliases. When no header is present
// it falls back to positional mapping: name, width, depth, seats, price.
func detectColumns(row []string) (columnMapping, bool) {
	mapping := columnMapping{Name: -1, Width: -1, Depth: -1, Seats: -1, Price: -1}

	assign := func(dst *int, i int) {
		if *dst == -1 {
			*dst = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					assign(&mapping.Name, i)
				case "width":
					assign(&mapping.Width, i)
				case "depth":
					assign(&mapping.Depth, i)
				case "seats":
					assign(&mapping.Seats, i)
				case "price":
					assign(&mapping.Price, i)
				}
			}
		}
	}

	if !isHeader {
		return columnMapping{Name: 0, Width: 1, Depth: 2, Seats: 3, Price: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a FurnitureSpec from one data row.
func parseRow(row []string, mapping columnMapping, rowLabel string, count int) (model.FurnitureSpec, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Furniture %d", count+1)
	}

	width, err := strconv.ParseFloat(getCell(row, mapping.Width), 64)
	if err != nil {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: invalid width %q", rowLabel, getCell(row, mapping.Width)), ""
	}
	depth, err := strconv.ParseFloat(getCell(row, mapping.Depth), 64)
	if err != nil {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: invalid depth %q", rowLabel, getCell(row, mapping.Depth)), ""
	}
	if width <= 0 || depth <= 0 {
		return model.FurnitureSpec{}, fmt.Sprintf("%s: width and depth must be positive", rowLabel), ""
	}

	seats := 0
	var warning string
	if s := getCell(row, mapping.Seats); s != "" {
		seats, err = strconv.Atoi(s)
		if err != nil || seats < 0 {
			warning = fmt.Sprintf("%s: unknown seat count %q, defaulting to 0", rowLabel, s)
			seats = 0
		}
	}

	price := 0.0
	if s := getCell(row, mapping.Price); s != "" {
		price, err = strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
		if err != nil || price < 0 {
			warning = fmt.Sprintf("%s: unknown price %q, defaulting to 0", rowLabel, s)
			price = 0
		}
	}

	return model.NewFurnitureSpec(name, width, depth, seats, price), "", warning
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// importRows converts raw rows (from either CSV or XLSX) into catalog
// entries, consuming an optional header row.
func importRows(rows [][]string, result *CatalogImport) {
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "file contains no rows")
		return
	}

	mapping, hasHeader := detectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("row %d", i+1)
		spec, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Entries))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Entries = append(result.Entries, spec)
	}

	if len(result.Entries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no furniture rows found")
	}
}

// ImportCatalogCSV imports furniture entries from a CSV file. The delimiter
// is auto-detected; columns are mapped by header aliases or position.
func ImportCatalogCSV(path string) CatalogImport {
	result := CatalogImport{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("CSV parse error: %v", err))
			return result
		}
		rows = append(rows, row)
	}

	importRows(rows, &result)
	return result
}

// ImportCatalogXLSX imports furniture entries from the first sheet of an
// Excel workbook.
func ImportCatalogXLSX(path string) CatalogImport {
	result := CatalogImport{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open workbook: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "workbook has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read sheet %q: %v", sheets[0], err))
		return result
	}

	importRows(rows, &result)
	return result
}
