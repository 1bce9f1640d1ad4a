package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a write lost a race against a concurrent write (e.g. an invoice number collision).
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when the root cause must not leak to the caller.
var ErrInternal = errors.New("internal error")

// ErrUnavailable indicates an optional collaborator (e.g. the market price source) is not usable.
var ErrUnavailable = errors.New("service unavailable")

// AppError carries an HTTP-ish code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a list of field problems. It matches ErrValidation with errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were collected.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// NewValidationError is a shorthand for a single-field ValidationErrors.
func NewValidationError(field, message string) error {
	return ValidationErrors{{Field: field, Message: message}}
}

// Details extracts the field errors from err, if any.
func Details(err error) []FieldError {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v
	}
	return nil
}
