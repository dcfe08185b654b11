package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type fieldErrors []fieldError

func (m fieldErrors) Error() string {
	var s []string
	for _, err := range m {
		s = append(s, err.Error())
	}
	return strings.Join(s, ", ")
}

type fieldError struct {
	Field string
	Msg   string
}

func (m fieldError) Error() string {
	return fmt.Sprintf("%s %s", m.Field, m.Msg)
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(in any) error {
	if err := validate.Struct(in); err != nil {

		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return err
		}

		var errs fieldErrors
		for _, valErr := range valErrs {
			errs = append(errs, buildFieldError(valErr))
		}
		return errs
	}
	return nil
}

func buildFieldError(f validator.FieldError) fieldError {
	switch f.Tag() {
	case "required":
		return fieldError{Field: f.Field(), Msg: "is required"}
	case "email":
		return fieldError{Field: f.Field(), Msg: "must be a valid email address"}
	case "min":
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("must be at least %s", f.Param())}
	case "max":
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("must be at most %s", f.Param())}
	case "oneof":
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("must be one of [%s]", f.Param())}
	default:
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("invalid value tag %s", f.Tag())}
	}
}
