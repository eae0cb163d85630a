package foundation

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
// Warnings never make a result invalid.
type ValidationResult struct {
	Valid    bool
	Errors   []FieldError
	Warnings []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// FieldErrors is a list of field errors usable as a single error value.
type FieldErrors []FieldError

// Error joins the individual messages, one per line.
func (fes FieldErrors) Error() string {
	messages := make([]string, 0, len(fes))
	for _, fe := range fes {
		messages = append(messages, fe.Error())
	}
	return strings.Join(messages, "\n")
}

// HasCode reports whether any error carries the given code.
func (fes FieldErrors) HasCode(code string) bool {
	for _, fe := range fes {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// Warn creates a valid result that carries warnings.
func Warn(warnings ...FieldError) ValidationResult {
	return ValidationResult{Valid: true, Warnings: warnings}
}

// NewValidationError creates a validation error.
func NewValidationError(field, code, message string) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

// WithValue returns a copy of the field error carrying the offending value.
func (fe FieldError) WithValue(v any) FieldError {
	fe.Value = v
	return fe
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	var out ValidationResult
	out.Valid = vr.Valid && other.Valid
	out.Errors = append(append(out.Errors, vr.Errors...), other.Errors...)
	out.Warnings = append(append(out.Warnings, vr.Warnings...), other.Warnings...)
	return out
}

// ToError converts a validation result to an error if invalid.
// The returned ClassifiedError wraps the FieldErrors so callers can inspect codes with errors.As.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}
	return errors.WrapError(FieldErrors(vr.Errors), errors.CategoryValidation, "configuration is invalid").
		Fatal().
		UserAction().
		WithContext("errors", len(vr.Errors)).
		Build()
}

// ValidatorChain allows chaining multiple validators.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()
	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}
	return result
}
