// Package validation carries field-level validation failures from the domain
// layer to the HTTP layer, which reports them as {"error","field"}.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError describes the first offending field of a rejected payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errorf builds a FieldError for field.
func Errorf(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsFieldError unwraps err into a FieldError when it carries one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Errorf(field, "%s is required", field)
	}
	return nil
}

func MaxLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return Errorf(field, "%s must be at most %d characters", field, max)
	}
	return nil
}

// OneOf checks value against a set of allowed enum values.
func OneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Errorf(field, "%s must be one of: %s", field, strings.Join(allowed, ", "))
}

func Positive(field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return Errorf(field, "%s must be greater than 0", field)
	}
	return nil
}

func NonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return Errorf(field, "%s must not be negative", field)
	}
	return nil
}

// Between checks min <= value <= max.
func Between(field string, value, min, max decimal.Decimal) error {
	if value.LessThan(min) || value.GreaterThan(max) {
		return Errorf(field, "%s must be between %s and %s", field, min.String(), max.String())
	}
	return nil
}

// Scale rejects values with more fractional digits than places.
func Scale(field string, value decimal.Decimal, places int32) error {
	if !value.Equal(value.Truncate(places)) {
		return Errorf(field, "%s must have at most %d decimal places", field, places)
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
