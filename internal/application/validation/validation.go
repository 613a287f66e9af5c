// Package validation wraps the shared validator instance used for all
// inbound payloads.
package validation

import (
	"fmt"
	"regexp"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s and converts the first violation into a
// ValidationError with a caller-facing message.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errs.ValidationError{Msg: "invalid request"}
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errs.ValidationError{Msg: fmt.Sprintf("%s is required", fe.Field())}
	case "slug":
		return errs.ValidationError{Msg: fmt.Sprintf("%s can only contain lowercase letters, numbers, and hyphens", fe.Field())}
	case "max":
		return errs.ValidationError{Msg: fmt.Sprintf("%s is too long", fe.Field())}
	case "oneof":
		return errs.ValidationError{Msg: fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())}
	case "url":
		return errs.ValidationError{Msg: fmt.Sprintf("%s must be a valid URL", fe.Field())}
	case "uuid":
		return errs.ValidationError{Msg: fmt.Sprintf("%s must be a valid id", fe.Field())}
	default:
		return errs.ValidationError{Msg: fmt.Sprintf("%s is invalid", fe.Field())}
	}
}
