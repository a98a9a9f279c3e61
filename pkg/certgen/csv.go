package certgen

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV reads and parses CSV data, returning the data as a slice of string slices.
// Each inner slice represents a row of the CSV.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	// Rows may be shorter or longer than the header, ParseCSVToMap pads and drops
	reader.FieldsPerRecord = -1

	// Column names are matched exactly, only values lose their leading spaces
	header, err := reader.Read()
	if err == io.EOF {
		return [][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error reading CSV header: %w", ErrParseFailure, err)
	}

	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: error reading CSV: %w", ErrParseFailure, err)
	}

	return append([][]string{header}, rows...), nil
}

// ReadXLSX reads the rows of a spreadsheet. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening spreadsheet: %w", ErrParseFailure, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: spreadsheet has no sheets", ErrParseFailure)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading sheet %q: %w", ErrParseFailure, sheet, err)
	}

	return rows, nil
}

// ReadTable picks the reader from the file extension of name, CSV is the default.
func ReadTable(name string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, "")
	default:
		return ReadCSV(r)
	}
}

// Converts parsed rows into a slice of maps.
// The first row is assumed to be the header, and its values are used as keys.
//
//	records, err := ReadCSV(file)
//	if err != nil {
//		return nil, err
//	}
//	rows, err := ParseCSVToMap(records)
func ParseCSVToMap(records [][]string) ([]map[string]string, error) {
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	headers := make([]string, len(records[0]))
	original := make(map[string]bool, len(headers))
	for i, header := range records[0] {
		headers[i] = strings.TrimPrefix(header, "\ufeff")
		original[headers[i]] = true
	}

	// Rename repeated headers to header_2, header_3, ... skipping names the header row already has
	used := make(map[string]bool, len(headers))
	next := make(map[string]int)
	for i, header := range headers {
		if !used[header] {
			used[header] = true
			continue
		}

		n := max(next[header], 2)
		name := fmt.Sprintf("%s_%d", header, n)
		for used[name] || original[name] {
			n++
			name = fmt.Sprintf("%s_%d", header, n)
		}
		next[header] = n + 1
		used[name] = true
		headers[i] = name
	}

	result := make([]map[string]string, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		row := make(map[string]string)
		// Fill the map with header keys and corresponding values
		for j := 0; j < len(headers); j++ {
			if j < len(records[i]) {
				row[headers[j]] = records[i][j]
			} else {
				// Handle missing values
				row[headers[j]] = ""
			}
		}
		result = append(result, row)
	}

	return result, nil
}

var sampleTable = [][]string{
	RequiredColumns,
	{"John Smith", "Advanced JavaScript", "Dr. Jane Doe", "2025-11-16", "Achievement"},
	{"Emily Johnson", "Web Development Fundamentals", "Prof. Robert Brown", "2025-11-16", "Completion"},
	{"Michael Chen", "React Masterclass", "Dr. Sarah Williams", "2025-11-16", "Excellence"},
}

const SampleFileName = "certificate_template.csv"

// SampleTable returns a copy of the illustrative input table, header included.
func SampleTable() [][]string {
	out := make([][]string, len(sampleTable))
	for i, row := range sampleTable {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// WriteSampleCSV writes the sample table with every cell quoted.
func WriteSampleCSV(w io.Writer) error {
	lines := make([]string, 0, len(sampleTable))
	for _, row := range sampleTable {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
