package certgen

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Success", nil, "Certificates generated successfully"},
		{
			"Missing fields",
			&MissingFieldsError{Fields: []string{ColumnStudentName, ColumnIssueDate}},
			"Please fill in all required fields: Student Name, Issue Date",
		},
		{
			"Invalid issue date",
			fmt.Errorf("%w: %q", ErrInvalidIssueDate, "16/11/2025"),
			"Issue date must be a valid date (YYYY-MM-DD)",
		},
		{
			"Missing columns",
			&MissingColumnsError{Columns: []string{ColumnCourseName}},
			"Missing required columns: Course Name",
		},
		{"Empty dataset", ErrEmptyDataset, "No valid data found in the input file"},
		{
			"Row errors",
			&RowErrors{Rows: []RowError{{Row: 1, Err: ErrInvalidIssueDate}, {Row: 4, Err: ErrInvalidIssueDate}}},
			"Invalid data in rows: 1, 4",
		},
		{
			"Malformed input",
			fmt.Errorf("%w: error reading CSV: %w", ErrParseFailure, errors.New("bare quote")),
			"Error parsing the input file",
		},
		{
			"Record failure",
			&RecordError{Index: 1, FileName: "Go_Ada.pdf", Op: OpExport, Err: errors.New("disk full")},
			"Error generating certificates: certificate 2 (Go_Ada.pdf) failed to export",
		},
		{"Unknown", errors.New("boom"), "Error generating certificates: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusMessage(tt.err); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRecordErrorIs(t *testing.T) {
	cause := errors.New("boom")

	renderErr := fmt.Errorf("batch: %w", &RecordError{Op: OpRender, Err: cause})
	if !errors.Is(renderErr, ErrRenderFailure) {
		t.Error("expected render failure to match ErrRenderFailure")
	}
	if errors.Is(renderErr, ErrExportFailure) {
		t.Error("render failure must not match ErrExportFailure")
	}
	if !errors.Is(renderErr, cause) {
		t.Error("expected the cause to stay reachable")
	}

	exportErr := &RecordError{Op: OpExport, Err: cause}
	if !errors.Is(exportErr, ErrExportFailure) {
		t.Error("expected export failure to match ErrExportFailure")
	}
}

func TestMissingFieldsErrorIs(t *testing.T) {
	err := fmt.Errorf("single: %w", &MissingFieldsError{Fields: []string{ColumnCourseName}})
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Errorf("expected ErrMissingRequiredField, got %v", err)
	}
	if errors.Is(err, ErrMissingColumns) {
		t.Error("missing fields must not match ErrMissingColumns")
	}
}
