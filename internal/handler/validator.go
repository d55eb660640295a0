package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance.
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator with the custom
// itemkind rule.
func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation("itemkind", validateItemKind)
	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance.
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ErrMsgValidationFailed
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be %s or more", e.Param())
		case "itemkind":
			errs[field] = "Unknown item kind"
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}

// validateItemKind accepts the four engine kinds plus custom tags,
// rejecting only blank values when the field is present.
func validateItemKind(fl validator.FieldLevel) bool {
	kind := fl.Field().String()
	if kind == "" {
		return true
	}
	return strings.TrimSpace(kind) != ""
}
