package certgen

import (
	"fmt"
	"io"
	"strings"
)

// Dataset holds the validated records of one batch job.
type Dataset struct {
	Records []CertificateRecord
	// Data rows (1-based) dropped because a required value was blank
	Skipped []int
}

// LoadRecords validates a parsed table (header row first).
//
// The column schema is checked before any row is looked at. Rows with blank
// required values are skipped, rows whose issue date does not parse are
// reported together, and a table left without records is ErrEmptyDataset.
func LoadRecords(table [][]string) (*Dataset, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: header row is required", ErrParseFailure)
	}

	if missing := missingColumns(table[0]); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	rows, err := ParseCSVToMap(table)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Records: make([]CertificateRecord, 0, len(rows))}
	var rowErrs []RowError

	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}

		if !IsValidRow(row) {
			ds.Skipped = append(ds.Skipped, i+1)
			continue
		}

		record := RecordFromRow(row)
		if _, err := ParseIssueDate(record.IssueDate); err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: fmt.Errorf("%w %q", ErrInvalidIssueDate, record.IssueDate)})
			continue
		}

		ds.Records = append(ds.Records, record)
	}

	if len(rowErrs) > 0 {
		return nil, &RowErrors{Rows: rowErrs}
	}

	if len(ds.Records) == 0 {
		return nil, ErrEmptyDataset
	}

	return ds, nil
}

// LoadRecordsFrom reads and validates a table in one step, see ReadTable.
func LoadRecordsFrom(name string, r io.Reader) (*Dataset, error) {
	table, err := ReadTable(name, r)
	if err != nil {
		return nil, err
	}
	return LoadRecords(table)
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimPrefix(h, "\ufeff")] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func isBlankRow(row map[string]string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
