package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks `validate` tags on every payload. Field names in errors
// are the JSON names clients send.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// validationError converts the first validator failure into a ValidationError.
func validationError(entity string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Entity: entity, Field: verrs[0].Field(), Reason: verrs[0].Tag()}
	}
	return err
}
