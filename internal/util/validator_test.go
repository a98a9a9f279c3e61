package util

import (
	"errors"
	"reflect"
	"testing"

	"github.com/SeakMengs/certgen/pkg/certgen"
)

func TestGenerateErrorMessages(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}

	record := certgen.CertificateRecord{
		StudentName:     " ",
		CourseName:      "Advanced JavaScript",
		LecturerName:    "Dr. Jane Doe",
		IssueDate:       "16/11/2025",
		CertificateType: "Achievement",
	}

	got := GenerateErrorMessages(v.Struct(record), map[string]string{"Student Name": "--student"})
	expected := []ApiError{
		{Field: "--student", Message: "--student must not be empty or contain only whitespace charaters"},
		{Field: "Issue Date", Message: "Issue Date must be a valid date (YYYY-MM-DD)"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("GenerateErrorMessages() = %v, want %v", got, expected)
	}
}

func TestGenerateErrorMessagesPlainError(t *testing.T) {
	got := GenerateErrorMessages(errors.New("boom"), "input")
	expected := []ApiError{{Field: "input", Message: "boom"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("GenerateErrorMessages() = %v, want %v", got, expected)
	}
}
