// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// Degenerate-computation conditions. These are defined outcomes of the
	// prediction engine, not store failures (see the dashboard query).
	ErrNoProgressBaseline = errors.New("no progress baseline: zero average hours with remaining work")
	ErrPredictionHorizon  = errors.New("prediction exceeds calendar horizon")

	// External store errors
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrConflict         = errors.New("uniqueness conflict")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "worklog", "holiday", "settings"
	Op      string // Operation that failed, e.g., "Create", "Predict"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Work-log domain errors
var (
	ErrWorkLogNotFound   = NewDomainError("worklog", "Find", ErrNotFound, "work log not found")
	ErrDuplicateDate     = NewDomainError("worklog", "Create", ErrAlreadyExists, "a work log already exists for this date")
	ErrInvalidEntryType  = NewDomainError("worklog", "Validate", ErrInvalidInput, "invalid entry type")
	ErrInvalidTimeRange  = NewDomainError("worklog", "Validate", ErrValueOutOfRange, "end time must be after start time")
	ErrLunchOutsideShift = NewDomainError("worklog", "Validate", ErrValueOutOfRange, "lunch break must be inside the work interval")
	ErrMissingTimes      = NewDomainError("worklog", "Validate", ErrEmptyValue, "start and end times are required for a normal day")
)

// Holiday domain errors
var (
	ErrHolidayNotFound = NewDomainError("holiday", "Find", ErrNotFound, "holiday not found")
	ErrHolidayExists   = NewDomainError("holiday", "Create", ErrAlreadyExists, "holiday already exists for this date")
	ErrInvalidYear     = NewDomainError("holiday", "Validate", ErrValueOutOfRange, "invalid year")
)

// Settings domain errors
var (
	ErrSettingsNotFound = NewDomainError("settings", "Find", ErrNotFound, "settings not found")
	ErrInvalidWorkDays  = NewDomainError("settings", "Validate", ErrValueOutOfRange, "working days must be ISO weekday numbers 1-7")
	ErrInvalidHours     = NewDomainError("settings", "Validate", ErrValueOutOfRange, "hours must be positive")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrConflict)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsDegenerate checks if the error is a degenerate-computation condition.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrNoProgressBaseline) ||
		errors.Is(err, ErrPredictionHorizon)
}
