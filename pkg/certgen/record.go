package certgen

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Column names of the tabular input, matched exactly.
const (
	ColumnStudentName     = "Student Name"
	ColumnCourseName      = "Course Name"
	ColumnLecturerName    = "Lecturer Name"
	ColumnIssueDate       = "Issue Date"
	ColumnCertificateType = "Certificate Type"
)

var RequiredColumns = []string{
	ColumnStudentName,
	ColumnCourseName,
	ColumnLecturerName,
	ColumnIssueDate,
	ColumnCertificateType,
}

const IssueDateLayout = "2006-01-02"

// Namespace of the deterministic certificate ids.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("certgen/certificate"))

type CertificateRecord struct {
	StudentName     string `col:"Student Name" validate:"strNotEmpty"`
	CourseName      string `col:"Course Name" validate:"strNotEmpty"`
	LecturerName    string `col:"Lecturer Name" validate:"strNotEmpty"`
	IssueDate       string `col:"Issue Date" validate:"strNotEmpty,isoDate"`
	CertificateType string `col:"Certificate Type" validate:"strNotEmpty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("col"); name != "" {
			return name
		}
		return fld.Name
	})
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations adds the record tags (strNotEmpty, isoDate) to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("strNotEmpty", StrNotEmpty); err != nil {
		return err
	}
	return v.RegisterValidation("isoDate", IsoDate)
}

// check if string is empty, after trimming spaces
// Usage: `validate:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

// Usage: `validate:"isoDate"`, accepts YYYY-MM-DD
func IsoDate(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	_, err := ParseIssueDate(field.String())
	return err == nil
}

// IsValidRow reports whether every required column is present and non-blank.
func IsValidRow(row map[string]string) bool {
	for _, col := range RequiredColumns {
		value, ok := row[col]
		if !ok || strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}

// RecordFromRow builds a record from a parsed row, trimming every value.
func RecordFromRow(row map[string]string) CertificateRecord {
	return CertificateRecord{
		StudentName:     strings.TrimSpace(row[ColumnStudentName]),
		CourseName:      strings.TrimSpace(row[ColumnCourseName]),
		LecturerName:    strings.TrimSpace(row[ColumnLecturerName]),
		IssueDate:       strings.TrimSpace(row[ColumnIssueDate]),
		CertificateType: strings.TrimSpace(row[ColumnCertificateType]),
	}
}

// Validate checks the record of the single certificate path.
func (r CertificateRecord) Validate() error {
	return ValidationError(validate.Struct(r))
}

// ValidationError maps the result of validating a record into
// *MissingFieldsError or ErrInvalidIssueDate. Other errors pass through.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	var missing []string
	for _, fe := range ve {
		if fe.Tag() == "strNotEmpty" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	return ErrInvalidIssueDate
}

// FileName is the sanitized "<course>_<student>.pdf" name used by both export paths.
func (r CertificateRecord) FileName() string {
	return SanitizeFilename(r.CourseName + "_" + r.StudentName + ".pdf")
}

// ID is stable for identical records.
func (r CertificateRecord) ID() string {
	key := strings.Join([]string{r.StudentName, r.CourseName, r.LecturerName, r.IssueDate, r.CertificateType}, "\x1f")
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

// ParseIssueDate parses an ISO calendar date at local midnight.
func ParseIssueDate(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(IssueDateLayout, strings.TrimSpace(iso), time.Local)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidIssueDate, err)
	}
	return t, nil
}

// FormatIssueDate renders an ISO date as "January 2, 2006" (en-US).
func FormatIssueDate(iso string) (string, error) {
	t, err := ParseIssueDate(iso)
	if err != nil {
		return "", err
	}
	return t.Format("January 2, 2006"), nil
}
