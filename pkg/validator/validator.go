package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("provider_phone", matches(phonePattern))
	v.RegisterValidation("us_zip", matches(zipPattern))

	return &CustomValidator{
		validator: v,
	}
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors maps each violated field, keyed by its dotted JSON
// path below the root struct, to a human readable message.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, e := range validationErrors {
		field := fieldPath(e)
		switch e.Tag() {
		case "required":
			errs[field] = field + " is required"
		case "email":
			errs[field] = field + " must be a valid email address"
		case "min":
			errs[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			errs[field] = field + " must be at most " + e.Param() + " characters"
		case "gte":
			errs[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			errs[field] = field + " must be less than or equal to " + e.Param()
		case "alphanum":
			errs[field] = field + " must be alphanumeric"
		case "provider_phone":
			errs[field] = "Invalid phone number format"
		case "us_zip":
			errs[field] = "Invalid postal code"
		case "oneof":
			errs[field] = field + " must be one of: " + e.Param()
		default:
			errs[field] = field + " is invalid"
		}
	}

	return errs
}

func fieldPath(e validator.FieldError) string {
	parts := strings.SplitN(e.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return e.Field()
}
