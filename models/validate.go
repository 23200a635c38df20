package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation for non-empty trimmed strings
	_ = validate.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Report JSON field names so messages match the keys clients and models use.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidationError provides structured error information for one failed rule.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationResult contains the result of schema validation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ErrorSummary returns a single string summarizing all validation errors.
func (r ValidationResult) ErrorSummary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the fields that failed validation.
func (r ValidationResult) Fields() []string {
	fields := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// Validate checks v against its validate tags. Slices are validated as a
// non-empty list whose elements must each pass.
func Validate(v any) ValidationResult {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ValidationResult{Errors: []ValidationError{{Field: "value", Tag: "required", Message: "value is required"}}}
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Slice {
		return fromError(validate.Struct(rv.Interface()))
	}

	if rv.Len() == 0 {
		return ValidationResult{Errors: []ValidationError{{Field: "items", Tag: "min", Message: "items must have at least 1 items"}}}
	}
	result := ValidationResult{Valid: true}
	for i := 0; i < rv.Len(); i++ {
		item := fromError(validate.Struct(rv.Index(i).Interface()))
		for _, e := range item.Errors {
			e.Field = fmt.Sprintf("[%d].%s", i, e.Field)
			result.Errors = append(result.Errors, e)
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s any) error {
	result := Validate(s)
	if result.Valid {
		return nil
	}
	return errors.New(result.ErrorSummary())
}

func fromError(err error) ValidationResult {
	if err == nil {
		return ValidationResult{Valid: true}
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationResult{Errors: []ValidationError{{Field: "value", Tag: "invalid", Message: err.Error()}}}
	}
	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: formatValidationError(fe),
		})
	}
	return ValidationResult{Errors: out}
}

// fieldPath turns a namespace like "Requirements.RequirementsBody.goals"
// into "goals". The root type and embedded struct names are dropped; every
// other field reports its JSON name.
func fieldPath(fe validator.FieldError) string {
	segments := strings.Split(fe.Namespace(), ".")
	kept := make([]string, 0, len(segments))
	for _, seg := range segments[1:] {
		if seg != "" && seg[0] >= 'A' && seg[0] <= 'Z' {
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

// formatValidationError creates a human-readable error message
func formatValidationError(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "nonempty":
		return fmt.Sprintf("%s cannot be empty or whitespace", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
