package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for calculator inputs
	_ = v.RegisterValidation("material", validateMaterial)
	_ = v.RegisterValidation("calcmode", validateCalcMode)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	// Check if it's a validator.ValidationErrors
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "material":
			errs[field] = "Unknown material type"
		case "calcmode":
			errs[field] = "Unknown calculation mode"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Custom validation function for material families
func validateMaterial(fl validator.FieldLevel) bool {
	mat := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if mat == "" {
		return true
	}
	return domain.MaterialType(strings.ToLower(mat)).IsValid()
}

// Custom validation function for calculation modes
func validateCalcMode(fl validator.FieldLevel) bool {
	mode := fl.Field().String()
	if mode == "" {
		return true
	}
	return domain.CalculationMode(strings.ToLower(mode)).IsValid()
}
