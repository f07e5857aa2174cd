// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"reflect"
	"strconv"
	"strings"

	"gatekeeper/internal/errors"

	"github.com/go-playground/validator/v10"
)

// TagMaxBytes limits a string field by its length in bytes, e.g. `maxbytes=72`.
// The stock max rule counts runes.
const TagMaxBytes = "maxbytes"

// CustomValidator validates bound request DTOs through their `validate` tags.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}

		return name
	})
	if err := v.RegisterValidation(TagMaxBytes, maxBytes); err != nil {
		panic(errors.Wrap(err, "register "+TagMaxBytes))
	}

	return &CustomValidator{validate: v}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Fields maps each failing field to the rule it broke, e.g. {"email": "email"}.
// It returns nil when err carries no validation errors.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}

	return fields
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	return len(field.String()) <= limit
}
