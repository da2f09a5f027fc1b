package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the request validator held by each service. Field
// names in errors are taken from json tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest validates req and maps the first failing field to its
// sentinel error, so callers can keep matching with errors.Is.
func checkRequest(v *validator.Validate, req any, sentinels map[string]error) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	field := verrs[0].Field()
	if sentinel, ok := sentinels[field]; ok {
		return sentinel
	}
	return fmt.Errorf("%s is invalid", field)
}
