package errors

import (
	"errors"
	"fmt"
)

// Exit codes for snowkit
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitConnection    = 2
	ExitQuery         = 3
	ExitConfigError   = 4
	ExitComputePool   = 5
	ExitService       = 6
	ExitImage         = 7
	ExitScaffold      = 8
	ExitSkillNotFound = 9
)

// SnowkitError is the base error type for snowkit
type SnowkitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *SnowkitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SnowkitError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SnowkitError) ExitCode() int {
	return e.Code
}

// New creates a new SnowkitError
func New(code int, message string) *SnowkitError {
	return &SnowkitError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SnowkitError
func Wrap(code int, message string, cause error) *SnowkitError {
	return &SnowkitError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConnectionError returns an error for connection failures
func ConnectionError(message string, cause error) *SnowkitError {
	return Wrap(ExitConnection, message, cause)
}

// QueryError returns an error for statement execution failures
func QueryError(message string, cause error) *SnowkitError {
	return Wrap(ExitQuery, message, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SnowkitError {
	return Wrap(ExitConfigError, message, cause)
}

// ComputePoolError returns an error for compute pool operations
func ComputePoolError(op string, cause error) *SnowkitError {
	return Wrap(ExitComputePool, fmt.Sprintf("compute pool %s failed", op), cause)
}

// ServiceError returns an error for service lifecycle operations
func ServiceError(op string, cause error) *SnowkitError {
	return Wrap(ExitService, fmt.Sprintf("service %s failed", op), cause)
}

// ImageError returns an error for image build/push/login operations
func ImageError(op string, cause error) *SnowkitError {
	return Wrap(ExitImage, fmt.Sprintf("image %s failed", op), cause)
}

// ScaffoldError returns an error for project scaffolding failures
func ScaffoldError(message string, cause error) *SnowkitError {
	return Wrap(ExitScaffold, message, cause)
}

// SkillNotFound returns an error for a missing skill
func SkillNotFound(name string) *SnowkitError {
	return New(ExitSkillNotFound, fmt.Sprintf("skill not found: %s", name))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *SnowkitError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var skErr *SnowkitError
	if errors.As(err, &skErr) {
		return skErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
