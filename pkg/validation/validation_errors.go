package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldMessages maps "Field.tag" to the message shown on the candidate form
var FieldMessages = map[string]string{
	"Name.required":         "Name is required.",
	"Email.required":        "Email is required.",
	"Email.candidate_email": "Email format is invalid.",
	"Phone.required":        "Phone number is required.",
	"Phone.digits":          "Phone number must be numeric.",
	"DesiredPositions.min":  "Please select a desired position.",
	"Location.required":     "Location is required.",
	"TechStack.min":         "At least one skill must be added.",
	"YearsExp.min":          "Years of experience cannot be negative.",
	"YearsExp.max":          "Years of experience must be at most 80.",
	"YearsInCompany.min":    "Years in company cannot be negative.",
	"YearsInCompany.max":    "Years in company must be at most 50.",
}

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":              "Name",
	"Email":             "Email",
	"Phone":             "Phone number",
	"YearsExp":          "Years of experience",
	"DesiredPositions":  "Desired position",
	"Location":          "Location",
	"TechStack":         "Tech stack",
	"YearsInCompany":    "Years in company",
	"LastCompany":       "Last company",
	"PositionInCompany": "Position in company",
	"Provider":          "Provider",
	"Model":             "Model",
	"Answer":            "Answer",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	tag := e.Tag()
	if msg, ok := FieldMessages[fieldName+"."+tag]; ok {
		return msg
	}

	label := getFieldLabel(fieldName)
	param := e.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters.", label, param)
		}
		return fmt.Sprintf("%s must be at least %s.", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters.", label, param)
		}
		return fmt.Sprintf("%s must be at most %s.", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(strings.Fields(param), ", "))
	case "candidate_email":
		return fmt.Sprintf("%s format is invalid.", label)
	case "digits":
		return fmt.Sprintf("%s must be numeric.", label)
	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s failed validation (%s).", label, tag)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
