package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

// newValidate reports fields by their env tag when they have one, so a
// configuration error names the variable the operator has to fix.
func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("env"), ","); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate validates a struct using go-playground/validator tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return &ValidationError{Errors: validationErrors}
		}
		return err
	}
	return nil
}

// ValidationError lists every setting that failed, one "NAME problem" entry each.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field()+" "+describe(fe))
	}
	return strings.Join(msgs, "; ")
}

func describe(fe validator.FieldError) string {
	got := fmt.Sprintf(" (got %v)", fe.Value())
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL" + got
	case "email":
		return "must be a valid email address" + got
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must list at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param()) + got
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param()) + got
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param()) + got
	case "gtefield":
		return fmt.Sprintf("must not be less than field %s", fe.Param()) + got
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param()) + got
	default:
		return fmt.Sprintf("failed %q check", fe.Tag()) + got
	}
}
