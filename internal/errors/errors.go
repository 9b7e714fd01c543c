// Package errors provides standardized error types for the certops CLI tool.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the application.
//
// # Error Types
//
// CertError is the primary error type, containing:
//   - Code: Categorizes the error (CONFIG, SOURCE, TOOL, etc.)
//   - Message: Human-readable error description
//   - Target: The file path or host:port involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Common error scenarios have pre-defined sentinel errors:
//
//	errors.ErrOpenSSLNotFound  // openssl binary missing from PATH
//	errors.ErrNoSource         // neither --file nor --server supplied
//	errors.ErrAmbiguousSource  // both --file and --server supplied
//	errors.ErrBadTimestamp     // validity timestamp not in GMT form
//	errors.ErrMissingValidity  // record lacks notBefore/notAfter
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrMissingValidity) {
//	    // Degrade the renewal summary, keep the primary output
//	}
//
// Use errors.As for type assertion:
//
//	var certErr *errors.CertError
//	if errors.As(err, &certErr) {
//	    fmt.Printf("Error code: %s, Target: %s\n", certErr.Code, certErr.Target)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeConfig    ErrorCode = "CONFIG"    // Configuration / flag validation error
	ErrCodeSource    ErrorCode = "SOURCE"    // Certificate source unavailable
	ErrCodeTool      ErrorCode = "TOOL"      // External tool exited non-zero
	ErrCodeTimestamp ErrorCode = "TIMESTAMP" // Malformed validity timestamp
	ErrCodeMissing   ErrorCode = "MISSING"   // Expected field absent from record
	ErrCodeInternal  ErrorCode = "INTERNAL"  // Internal/unexpected error
)

// CertError represents a structured error with context about the operation.
type CertError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Target  string    // File path or host:port (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *CertError) Error() string {
	if e.Target != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Target, e.Message, e.Err)
	}
	if e.Target != "" {
		return fmt.Sprintf("%s: %s", e.Target, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *CertError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *CertError) Is(target error) bool {
	t, ok := target.(*CertError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrOpenSSLNotFound indicates the openssl binary is not on PATH.
	ErrOpenSSLNotFound = &CertError{Code: ErrCodeTool, Message: "openssl not installed"}

	// ErrNoSource indicates neither a file nor a server was supplied.
	ErrNoSource = &CertError{Code: ErrCodeConfig, Message: "no certificate source: supply --file or --server"}

	// ErrAmbiguousSource indicates both a file and a server were supplied.
	ErrAmbiguousSource = &CertError{Code: ErrCodeConfig, Message: "ambiguous certificate source: --file and --server are mutually exclusive"}

	// ErrBadTimestamp indicates a validity timestamp without the GMT suffix.
	ErrBadTimestamp = &CertError{Code: ErrCodeTimestamp, Message: "timestamp does not end in GMT"}

	// ErrMissingValidity indicates a record without notBefore/notAfter dates.
	ErrMissingValidity = &CertError{Code: ErrCodeMissing, Message: "certificate record has no validity dates"}
)

// Config creates a configuration error with a custom message.
func Config(msg string) error {
	return &CertError{
		Code:    ErrCodeConfig,
		Message: msg,
	}
}

// Source creates an error for an unavailable certificate source.
// diag carries the failing tool's diagnostic text, if any.
func Source(target, diag string, err error) error {
	msg := "certificate source unavailable"
	if diag != "" {
		msg = "certificate source unavailable: " + diag
	}
	return &CertError{
		Code:    ErrCodeSource,
		Message: msg,
		Target:  target,
		Err:     err,
	}
}

// Tool creates an error for a non-zero exit from an external tool.
// diag carries the tool's stderr.
func Tool(name, diag string, err error) error {
	msg := name + " failed"
	if diag != "" {
		msg = fmt.Sprintf("%s failed: %s", name, diag)
	}
	return &CertError{
		Code:    ErrCodeTool,
		Message: msg,
		Err:     err,
	}
}

// Timestamp creates an error for a malformed validity timestamp.
func Timestamp(value string) error {
	return &CertError{
		Code:    ErrCodeTimestamp,
		Message: fmt.Sprintf("malformed timestamp %q: expected \"<Mon> <DD> <HH>:<MM>:<SS> <YYYY> GMT\"", value),
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &CertError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
