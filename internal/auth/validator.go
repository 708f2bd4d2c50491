package auth

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the request validator, reporting failures by JSON field
// name so error handling can reason about wire-level fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
