package certgen

import (
	"errors"
	"reflect"
	"testing"
)

func sampleRecord() CertificateRecord {
	return CertificateRecord{
		StudentName:     "John Smith",
		CourseName:      "Advanced JavaScript",
		LecturerName:    "Dr. Jane Doe",
		IssueDate:       "2025-11-16",
		CertificateType: "Achievement",
	}
}

func TestIsValidRow(t *testing.T) {
	full := map[string]string{
		ColumnStudentName:     "John Smith",
		ColumnCourseName:      "Advanced JavaScript",
		ColumnLecturerName:    "Dr. Jane Doe",
		ColumnIssueDate:       "2025-11-16",
		ColumnCertificateType: "Achievement",
	}

	without := func(col string) map[string]string {
		row := make(map[string]string, len(full))
		for k, v := range full {
			if k != col {
				row[k] = v
			}
		}
		return row
	}

	with := func(col, value string) map[string]string {
		row := without(col)
		row[col] = value
		return row
	}

	tests := []struct {
		name string
		row  map[string]string
		want bool
	}{
		{"All fields", full, true},
		{"Extra column", with("Notes", "x"), true},
		{"Missing issue date column", without(ColumnIssueDate), false},
		{"Empty issue date", with(ColumnIssueDate, ""), false},
		{"Whitespace student name", with(ColumnStudentName, "   "), false},
		{"Empty certificate type", with(ColumnCertificateType, "\t"), false},
		{"Empty row", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidRow(tt.row); got != tt.want {
				t.Errorf("IsValidRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordFromRowTrims(t *testing.T) {
	row := map[string]string{
		ColumnStudentName:     "  John Smith ",
		ColumnCourseName:      "Advanced JavaScript\t",
		ColumnLecturerName:    " Dr. Jane Doe",
		ColumnIssueDate:       "2025-11-16 ",
		ColumnCertificateType: " Achievement",
	}

	if got := RecordFromRow(row); !reflect.DeepEqual(got, sampleRecord()) {
		t.Errorf("expected %+v, got %+v", sampleRecord(), got)
	}
}

func TestRecordValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := sampleRecord().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Missing fields", func(t *testing.T) {
		r := sampleRecord()
		r.StudentName = " "
		r.IssueDate = ""

		err := r.Validate()
		if !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("expected ErrMissingRequiredField, got %v", err)
		}

		var fieldsErr *MissingFieldsError
		if !errors.As(err, &fieldsErr) {
			t.Fatalf("expected *MissingFieldsError, got %T", err)
		}
		want := []string{ColumnStudentName, ColumnIssueDate}
		if !reflect.DeepEqual(fieldsErr.Fields, want) {
			t.Errorf("expected fields %v, got %v", want, fieldsErr.Fields)
		}
	})

	t.Run("Invalid date", func(t *testing.T) {
		r := sampleRecord()
		r.IssueDate = "16/11/2025"

		if err := r.Validate(); !errors.Is(err, ErrInvalidIssueDate) {
			t.Errorf("expected ErrInvalidIssueDate, got %v", err)
		}
	})
}

func TestValidationError(t *testing.T) {
	if err := ValidationError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	// a validator built elsewhere reports the same fields by column name
	record := sampleRecord()
	record.LecturerName = ""
	var fieldsErr *MissingFieldsError
	if err := ValidationError(newValidator().Struct(record)); !errors.As(err, &fieldsErr) || !reflect.DeepEqual(fieldsErr.Fields, []string{ColumnLecturerName}) {
		t.Errorf("expected missing %s, got %v", ColumnLecturerName, err)
	}

	boom := errors.New("boom")
	if err := ValidationError(boom); err != boom {
		t.Errorf("expected the error unchanged, got %v", err)
	}
}

func TestRecordFileName(t *testing.T) {
	if got, want := sampleRecord().FileName(), "Advanced_JavaScript_John_Smith.pdf"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRecordID(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	if a.ID() != b.ID() {
		t.Errorf("expected identical records to share an id, got %s and %s", a.ID(), b.ID())
	}

	b.CertificateType = "Completion"
	if a.ID() == b.ID() {
		t.Errorf("expected different records to have different ids")
	}
}

func TestFormatIssueDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-11-16", "November 16, 2025", false},
		{"2024-02-29", "February 29, 2024", false},
		{"2025-01-05", "January 5, 2025", false},
		{" 2025-12-31 ", "December 31, 2025", false},
		{"2025-02-30", "", true},
		{"11/16/2025", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FormatIssueDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatIssueDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatIssueDate() = %q, want %q", got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidIssueDate) {
				t.Errorf("expected ErrInvalidIssueDate, got %v", err)
			}
		})
	}
}
