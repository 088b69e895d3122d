package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// local@domain.tld with no whitespace or extra @
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("candidate_email", CandidateEmail)
	_ = v.RegisterValidation("digits", Digits)
}

// CandidateEmail accepts the local@domain.tld shape. Empty values are left to required.
func CandidateEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return emailRegex.MatchString(val)
}

// Digits accepts strings made only of ASCII digits. Empty values are left to required.
func Digits(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return digitsRegex.MatchString(val)
}
