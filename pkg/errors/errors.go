package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown     ErrorCode = "UNKNOWN"
	ErrInternal    ErrorCode = "INTERNAL"
	ErrInterrupted ErrorCode = "INTERRUPTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Rule errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Template errors
	ErrTemplateMissing ErrorCode = "TEMPLATE_MISSING"
	ErrMissingProperty ErrorCode = "TEMPLATE_MISSING_PROPERTY"
	ErrUnsupportedLang ErrorCode = "LANGUAGE_UNSUPPORTED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"

	// Run outcome: violations or per-file errors remain after the scan
	ErrViolations ErrorCode = "VIOLATIONS"
)

// HeaderguardError represents a structured error with code and details
type HeaderguardError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HeaderguardError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HeaderguardError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HeaderguardError) Is(target error) bool {
	var targetErr *HeaderguardError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HeaderguardError with the given code and message
func New(code ErrorCode, message string) *HeaderguardError {
	return &HeaderguardError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HeaderguardError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HeaderguardError {
	return &HeaderguardError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HeaderguardError
func Wrap(err error, code ErrorCode, message string) *HeaderguardError {
	if err == nil {
		return nil
	}
	return &HeaderguardError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HeaderguardError {
	if err == nil {
		return nil
	}
	return &HeaderguardError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HeaderguardError) WithDetail(key string, value interface{}) *HeaderguardError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hgErr *HeaderguardError
	if errors.As(err, &hgErr) {
		return hgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HeaderguardError
func GetErrorCode(err error) ErrorCode {
	var hgErr *HeaderguardError
	if errors.As(err, &hgErr) {
		return hgErr.Code
	}
	return ErrUnknown
}

// IsConfigError reports whether the error belongs to the configuration-time
// class of failures, which abort the run before any file is touched.
func IsConfigError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid, ErrPatternInvalid, ErrTemplateMissing, ErrMissingProperty:
		return true
	}
	return false
}

// ExitCode maps an error to the process exit code: 2 for configuration
// errors, 1 for everything else, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsConfigError(err) {
		return 2
	}
	return 1
}
