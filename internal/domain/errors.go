package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates engine failures for callers that map them to
// transport status codes.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindComputation ErrorKind = "computation"
)

// ValidationError reports malformed or out-of-range input. It is raised
// before any projection runs.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ComputationError reports a projection that produced a non-finite value.
type ComputationError struct {
	Operation string `json:"operation"`
	Message   string `json:"message"`
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Kind returns KindComputation.
func (e *ComputationError) Kind() ErrorKind { return KindComputation }

// NewComputationError creates a ComputationError with a formatted message.
func NewComputationError(operation, format string, args ...any) *ComputationError {
	return &ComputationError{Operation: operation, Message: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsComputation unwraps err into a *ComputationError when possible.
func AsComputation(err error) (*ComputationError, bool) {
	var ce *ComputationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	_, ok := AsValidation(err)
	return ok
}

// IsComputation reports whether err wraps a *ComputationError.
func IsComputation(err error) bool {
	_, ok := AsComputation(err)
	return ok
}
