package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sirpyerre/people-registry/internal/core/domain"
)

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// personFields is the validator view of the mutable person fields. Field
// order matters: violations are reported in declaration order and the first
// one becomes the rejection reason.
type personFields struct {
	FirstName string  `validate:"notblank"`
	LastName  string  `validate:"notblank"`
	Phone     string  `validate:"notblank,phonedigits"`
	Balance   float64 `validate:"gt=0"`
}

// newPersonValidator returns a validator with the registry's custom rules:
// notblank (non-empty after trimming) and phonedigits (digit count in
// [phoneMinDigits, phoneMaxDigits], non-digits ignored).
func newPersonValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		n := digitCount(fl.Field().String())
		return n >= phoneMinDigits && n <= phoneMaxDigits
	})
	return v
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// checkFields validates the mutable fields and converts the first violation
// into a domain.ValidationError.
func checkFields(v *validator.Validate, f personFields) error {
	err := v.Struct(f)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &domain.ValidationError{Reason: fieldReason(ve[0])}
	}
	return err
}

// fieldReason converts a single ValidationError into a human-readable message.
func fieldReason(fe validator.FieldError) string {
	switch fe.Field() {
	case "FirstName":
		return "first name cannot be empty"
	case "LastName":
		return "last name cannot be empty"
	case "Phone":
		if fe.Tag() == "notblank" {
			return "phone cannot be empty"
		}
		return fmt.Sprintf("phone must contain between %d and %d digits", phoneMinDigits, phoneMaxDigits)
	case "Balance":
		return "balance must be greater than zero"
	default:
		return fmt.Sprintf("%s failed validation (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}
}
