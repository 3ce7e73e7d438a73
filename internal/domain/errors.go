package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrHSNNotFound         = errors.New("hsn code not found")
	ErrDuplicateHSN        = errors.New("hsn code already exists")
	ErrCustomerHasInvoices = errors.New("customer has invoices")
	ErrUnsupportedImport   = errors.New("unsupported import file type")
	ErrStorageDisabled     = errors.New("invoice archive storage is not configured")
	ErrCustomerNoEmail     = errors.New("customer has no email address")

	// ErrValidation marks bad caller input. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrLookupFailed marks a failed rate or customer lookup.
	ErrLookupFailed = errors.New("lookup failed")
	// ErrConflict marks a duplicate (series, number) pair. Retryable by the caller.
	ErrConflict = errors.New("invoice number conflict")
)

// ValidationError describes invalid input at a field path.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// LookupFailure wraps an error returned by a rate or customer lookup.
type LookupFailure struct {
	What string
	Key  string
	Err  error
}

func (e *LookupFailure) Error() string {
	return fmt.Sprintf("%s lookup for %q failed: %v", e.What, e.Key, e.Err)
}

func (e *LookupFailure) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLookupFailed) match.
func (e *LookupFailure) Is(target error) bool { return target == ErrLookupFailed }

// ConflictError reports that (Series, Number) is already taken.
type ConflictError struct {
	Series string
	Number int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("invoice %s/%d already exists", e.Series, e.Number)
}

// Is makes errors.Is(err, ErrConflict) match.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
