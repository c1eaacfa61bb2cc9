package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrSetup        = errors.New("setup failed")
	ErrValidation   = errors.New("validation failed")
)

// Error codes used across the batch.
const (
	CodeConfig    = "CONFIG_ERROR"
	CodeSchema    = "SCHEMA_ERROR"
	CodeRoster    = "ROSTER_ERROR"
	CodeSubmitter = "SUBMITTER_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// SetupError marks a failure that must abort the run.
func SetupError(code, message string, cause error) error {
	if cause == nil {
		cause = ErrSetup
	} else {
		cause = fmt.Errorf("%w: %w", ErrSetup, cause)
	}
	return NewAppError(code, message, cause)
}
