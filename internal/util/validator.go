package util

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/SeakMengs/certgen/pkg/certgen"
	"github.com/go-playground/validator/v10"
)

// credit: https://github.com/go-playground/validator/issues/559#issuecomment-976459959

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidator returns a validator that knows the custom tags and reports
// record fields by their column name.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("col"); name != "" {
			return name
		}
		return fld.Name
	})

	if err := RegisterCustomValidations(v); err != nil {
		return nil, err
	}
	return v, nil
}

func RegisterCustomValidations(v *validator.Validate) error {
	return certgen.RegisterValidations(v)
}

func msgForTag(fe validator.FieldError, customField *map[string]string) string {
	// convert to custom field if exist
	field := fe.Field()
	if customField != nil {
		if name, ok := (*customField)[field]; ok {
			field = name
		}
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "min":
		return fmt.Sprintf("%v must be at least %v characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%v must be at most %v characters", field, fe.Param())
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be empty or contain only whitespace charaters", field)
	case "isoDate":
		return fmt.Sprintf("%v must be a valid date (YYYY-MM-DD)", field)
	}

	log.Printf("Unknown tag: %v with error: %v", fe.Tag(), fe.Error())
	return fe.Error() // default error
}

/*
GenerateErrorMessages extracts validation errors and returns them as an array of ApiError.
Each ApiError contains the field name and a descriptive error message.

Example output:

	[
	  {
		"field": "Student Name",
		"message": "Student Name must not be empty or contain only whitespace characters"
	  }
	]

If a customField map is provided, it will replace the field name with the corresponding custom field name.
Example usage:

	GenerateErrorMessages(err, map[string]string{"Student Name": "--student"})

Optional Parameters:
- customField (map[string]string): A map to override field names in the error messages.
- fieldName (string): A specific field name to field names in the error messages.
*/
func GenerateErrorMessages(err error, optionalParams ...interface{}) []ApiError {
	var customField map[string]string
	var fieldName string

	// Parse optional parameters
	for _, param := range optionalParams {
		switch v := param.(type) {
		case map[string]string:
			customField = v
		case string:
			fieldName = v
		}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ApiError, len(ve))
		for i, fe := range ve {
			field := fe.Field()
			// Use customField if specified and the field exists in the map
			if customField != nil {
				if customFieldName, ok := customField[field]; ok {
					field = customFieldName
				}
			}
			out[i] = ApiError{field, msgForTag(fe, &customField)}
		}
		return out
	}

	if fieldName == "" {
		fieldName = "Unknown"
	}

	return []ApiError{
		{
			Field:   fieldName,
			Message: err.Error(),
		},
	}
}
