package certgen

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLoadRecordsMissingColumns(t *testing.T) {
	for _, missing := range RequiredColumns {
		t.Run(missing, func(t *testing.T) {
			var header []string
			for _, col := range RequiredColumns {
				if col != missing {
					header = append(header, col)
				}
			}

			ds, err := LoadRecords([][]string{header, {"a", "b", "c", "d"}})
			if ds != nil {
				t.Errorf("expected no dataset, got %+v", ds)
			}
			if !errors.Is(err, ErrMissingColumns) {
				t.Fatalf("expected ErrMissingColumns, got %v", err)
			}

			var columnsErr *MissingColumnsError
			if !errors.As(err, &columnsErr) {
				t.Fatalf("expected *MissingColumnsError, got %T", err)
			}
			if !reflect.DeepEqual(columnsErr.Columns, []string{missing}) {
				t.Errorf("expected missing %v, got %v", []string{missing}, columnsErr.Columns)
			}
		})
	}
}

func TestLoadRecordsSeveralMissingColumns(t *testing.T) {
	_, err := LoadRecords([][]string{{"Student Name", "student name", "Issue date"}})

	var columnsErr *MissingColumnsError
	if !errors.As(err, &columnsErr) {
		t.Fatalf("expected *MissingColumnsError, got %v", err)
	}

	want := []string{ColumnCourseName, ColumnLecturerName, ColumnIssueDate, ColumnCertificateType}
	if !reflect.DeepEqual(columnsErr.Columns, want) {
		t.Errorf("expected %v, got %v", want, columnsErr.Columns)
	}
}

func TestLoadRecordsSkipsIncompleteRows(t *testing.T) {
	table := SampleTable()
	// Emily Johnson loses the issue date
	table[2][3] = " "

	ds, err := LoadRecords(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}
	if ds.Records[0].StudentName != "John Smith" || ds.Records[1].StudentName != "Michael Chen" {
		t.Errorf("unexpected records order: %+v", ds.Records)
	}
	if !reflect.DeepEqual(ds.Skipped, []int{2}) {
		t.Errorf("expected skipped rows [2], got %v", ds.Skipped)
	}
}

func TestLoadRecordsColumnOrderIrrelevant(t *testing.T) {
	table := [][]string{
		{"Certificate Type", "Issue Date", "Notes", "Lecturer Name", "Course Name", "Student Name"},
		{"Achievement", "2025-11-16", "ignored", "Dr. Jane Doe", "Advanced JavaScript", "John Smith"},
	}

	ds, err := LoadRecords(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ds.Records, []CertificateRecord{sampleRecord()}) {
		t.Errorf("expected %+v, got %+v", sampleRecord(), ds.Records)
	}
}

func TestLoadRecordsEmptyDataset(t *testing.T) {
	tests := []struct {
		name  string
		table [][]string
	}{
		{"Header only", [][]string{RequiredColumns}},
		{"Every row invalid", [][]string{
			RequiredColumns,
			{"John Smith", "", "Dr. Jane Doe", "2025-11-16", "Achievement"},
			{"Emily Johnson", "Web", "Prof. Robert Brown", "", "Completion"},
		}},
		{"Blank rows", [][]string{RequiredColumns, {"", "", "", "", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecords(tt.table)
			if !errors.Is(err, ErrEmptyDataset) {
				t.Errorf("expected ErrEmptyDataset, got %v", err)
			}
			if errors.Is(err, ErrMissingColumns) {
				t.Errorf("empty dataset must not be reported as missing columns")
			}
		})
	}
}

func TestLoadRecordsInvalidDates(t *testing.T) {
	table := SampleTable()
	table[1][3] = "16/11/2025"
	table[3][3] = "tomorrow"

	_, err := LoadRecords(table)
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}

	var rowErrs *RowErrors
	if !errors.As(err, &rowErrs) {
		t.Fatalf("expected *RowErrors, got %T", err)
	}

	var rows []int
	for _, r := range rowErrs.Rows {
		rows = append(rows, r.Row)
		if !errors.Is(r.Err, ErrInvalidIssueDate) {
			t.Errorf("row %d: expected ErrInvalidIssueDate, got %v", r.Row, r.Err)
		}
	}
	if !reflect.DeepEqual(rows, []int{1, 3}) {
		t.Errorf("expected rows [1 3], got %v", rows)
	}
}

func TestLoadRecordsNoHeader(t *testing.T) {
	if _, err := LoadRecords(nil); !errors.Is(err, ErrParseFailure) {
		t.Errorf("expected ErrParseFailure, got %v", err)
	}
}

func TestLoadRecordsFromCSV(t *testing.T) {
	input := `"Student Name","Course Name","Lecturer Name","Issue Date","Certificate Type"
"John Smith","Advanced JavaScript","Dr. Jane Doe","2025-11-16","Achievement"
`
	ds, err := LoadRecordsFrom("certificates.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ds.Records, []CertificateRecord{sampleRecord()}) {
		t.Errorf("expected %+v, got %+v", sampleRecord(), ds.Records)
	}
}

func TestLoadRecordsFromCSVHeaderNotTrimmed(t *testing.T) {
	input := "Student Name, Course Name,Lecturer Name,Issue Date,Certificate Type\n" +
		"John Smith, Advanced JavaScript, Dr. Jane Doe, 2025-11-16, Achievement\n"

	_, err := LoadRecordsFrom("certificates.csv", strings.NewReader(input))

	var columnsErr *MissingColumnsError
	if !errors.As(err, &columnsErr) {
		t.Fatalf("expected *MissingColumnsError, got %v", err)
	}
	if !reflect.DeepEqual(columnsErr.Columns, []string{ColumnCourseName}) {
		t.Errorf("expected %v, got %v", []string{ColumnCourseName}, columnsErr.Columns)
	}
}

func TestLoadRecordsFromCSVValuesTrimmed(t *testing.T) {
	input := "Student Name,Course Name,Lecturer Name,Issue Date,Certificate Type\n" +
		"John Smith, Advanced JavaScript, Dr. Jane Doe, 2025-11-16, Achievement\n"

	ds, err := LoadRecordsFrom("certificates.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ds.Records, []CertificateRecord{sampleRecord()}) {
		t.Errorf("expected %+v, got %+v", sampleRecord(), ds.Records)
	}
}
