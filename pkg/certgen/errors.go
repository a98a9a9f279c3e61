package certgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMissingColumns       = errors.New("missing required columns")
	ErrEmptyDataset         = errors.New("no valid data found")
	ErrParseFailure         = errors.New("failed to parse tabular input")
	ErrRenderFailure        = errors.New("failed to render certificate")
	ErrExportFailure        = errors.New("failed to export certificate")
	ErrInvalidIssueDate     = errors.New("invalid issue date")
	ErrInvalidQRURLPattern  = errors.New("invalid QR URL pattern")
	ErrMergedNameCollision  = errors.New("merged file name collides with a certificate")
)

// MissingFieldsError is returned by the single record path when one or more fields are blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// MissingColumnsError lists the required columns absent from the header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

type RowError struct {
	// 1-based data row number, the header is not counted
	Row int
	Err error
}

// RowErrors aggregates per-row structural problems found before rendering.
type RowErrors struct {
	Rows []RowError
}

func (e *RowErrors) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		parts = append(parts, fmt.Sprintf("row %d: %v", r.Row, r.Err))
	}
	return fmt.Sprintf("%s: %s", ErrParseFailure, strings.Join(parts, "; "))
}

func (e *RowErrors) Is(target error) bool {
	return target == ErrParseFailure
}

type RecordOp string

const (
	OpRender RecordOp = "render"
	OpExport RecordOp = "export"
)

// RecordError wraps a failure of a single record inside a batch.
type RecordError struct {
	// 0-based position of the record in the batch
	Index    int
	FileName string
	Op       RecordOp
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("failed to %s certificate %d (%s): %v", e.Op, e.Index+1, e.FileName, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func (e *RecordError) Is(target error) bool {
	switch e.Op {
	case OpRender:
		return target == ErrRenderFailure
	case OpExport:
		return target == ErrExportFailure
	}
	return false
}

// StatusMessage turns a pipeline error into the single line shown to the user.
func StatusMessage(err error) string {
	if err == nil {
		return "Certificates generated successfully"
	}

	var (
		fieldsErr  *MissingFieldsError
		columnsErr *MissingColumnsError
		rowErrs    *RowErrors
		recordErr  *RecordError
	)

	switch {
	case errors.As(err, &fieldsErr):
		return fmt.Sprintf("Please fill in all required fields: %s", strings.Join(fieldsErr.Fields, ", "))
	case errors.Is(err, ErrInvalidIssueDate):
		return "Issue date must be a valid date (YYYY-MM-DD)"
	case errors.As(err, &columnsErr):
		return fmt.Sprintf("Missing required columns: %s", strings.Join(columnsErr.Columns, ", "))
	case errors.Is(err, ErrEmptyDataset):
		return "No valid data found in the input file"
	case errors.As(err, &rowErrs):
		rows := make([]string, 0, len(rowErrs.Rows))
		for _, r := range rowErrs.Rows {
			rows = append(rows, fmt.Sprintf("%d", r.Row))
		}
		return fmt.Sprintf("Invalid data in rows: %s", strings.Join(rows, ", "))
	case errors.Is(err, ErrParseFailure):
		return "Error parsing the input file"
	case errors.As(err, &recordErr):
		return fmt.Sprintf("Error generating certificates: certificate %d (%s) failed to %s", recordErr.Index+1, recordErr.FileName, recordErr.Op)
	case errors.Is(err, ErrRenderFailure), errors.Is(err, ErrExportFailure):
		return "Error generating certificate"
	}

	return fmt.Sprintf("Error generating certificates: %v", err)
}
