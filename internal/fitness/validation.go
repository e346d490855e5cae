package fitness

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ValidationError names the field that failed a constraint.
// Constructors return one per violated field, combined with multierr.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func requiredError(field string) *ValidationError {
	return newValidationError(field, "%s must not be empty", field)
}

func positiveError(field string) *ValidationError {
	return newValidationError(field, "%s must be positive", field)
}

// weightError checks a weight in kg: positive and finite.
func weightError(weight float64) *ValidationError {
	// also rejects NaN
	if !(weight > 0) {
		return positiveError("weight")
	}
	if math.IsInf(weight, 0) {
		return newValidationError("weight", "weight must be a finite number")
	}
	return nil
}

// FieldErrors lists every ValidationError contained in err.
func FieldErrors(err error) []*ValidationError {
	var fieldErrors []*ValidationError
	for _, e := range multierr.Errors(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			fieldErrors = append(fieldErrors, ve)
		}
	}
	return fieldErrors
}

// IsValidationError reports whether err carries at least one ValidationError.
func IsValidationError(err error) bool {
	return len(FieldErrors(err)) > 0
}
