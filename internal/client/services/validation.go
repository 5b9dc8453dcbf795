package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidIdentity = errors.New("invalid identity")

const minPhoneDigits = 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// registration only fails on an empty tag name
	_ = v.RegisterValidation("phonedigits", phoneDigits)
	return v
}

// phoneDigits accepts digits with the usual separators and requires at least
// minPhoneDigits digits.
func phoneDigits(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}

// ValidateIdentity checks the registration input. The returned error matches
// ErrInvalidIdentity and carries a message fit for the user.
func ValidateIdentity(id models.Identity) error {
	err := validate.Struct(id)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", ErrInvalidIdentity, validatorErrorToUser(verrs))
	}
	return fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
}

func validatorErrorToUser(verrs validator.ValidationErrors) string {
	var msgs []string
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s is not a valid email", e.Field()))
		case "phonedigits":
			msgs = append(msgs, fmt.Sprintf("%s must be a phone number with at least %d digits", e.Field(), minPhoneDigits))
		default:
			msgs = append(msgs, fmt.Sprintf("validation failed on field %s", e.Field()))
		}
	}
	return strings.Join(msgs, ". ")
}
