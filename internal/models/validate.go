// ABOUTME: Form validation and response shape checks built on go-playground/validator.
// ABOUTME: Converts validator failures into field-level FieldErrors keyed by JSON name.
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form rules live in `validate` tags. Server payloads are only held to the
// shape rules in `response` tags, so stored records that predate a form rule
// still decode.
var (
	validate = newValidator("validate")
	shape    = newValidator("response")
)

func newValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name[:1]) + f.Name[1:]
		}
		return name
	})
	v.RegisterCustomTypeFunc(timeValue, Date{}, time.Time{})
	return v
}

// timeValue lets `required` treat zero dates and timestamps as missing.
func timeValue(field reflect.Value) interface{} {
	switch t := field.Interface().(type) {
	case Date:
		return t.String()
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}
	return nil
}

// FieldError is a validation failure for one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned when a value fails client-side validation.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// For returns the message reported for field, if any.
func (e FieldErrors) For(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// AsFieldErrors unwraps err into FieldErrors.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func check(s interface{}) error {
	return collect(validate.Struct(s))
}

func checkShape(s interface{}) error {
	return collect(shape.Struct(s))
}

func collect(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "does not match " + strings.ToLower(fe.Param())
	default:
		return "is invalid"
	}
}
