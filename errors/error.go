// Package errors implements the typed error taxonomy shared by every package
// in this module. Callers are expected to compare errors by code rather
// than by string-matching messages: errors.As into an *Error and compare its
// Code() against the ERR codes below, or errors.Is against another *Error of
// the same code. ERR itself is not an error value, so it cannot be passed to
// errors.Is directly.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ERR identifies the class of failure carried by an *Error.
type ERR int32

const (
	ERR_UNKNOWN ERR = iota
	ERR_TRUNCATED
	ERR_INVALID_UTF8
	ERR_MALFORMED_BLOCK
	ERR_VALIDATION_FAILED
	ERR_LOCKED_ACCESS
	ERR_WRONG_KEY
	ERR_POLICY_VIOLATION
	ERR_INVALID_ARGUMENT
	ERR_NOT_FOUND
	ERR_PROCESSING
)

var errName = map[ERR]string{
	ERR_UNKNOWN:           "UNKNOWN",
	ERR_TRUNCATED:         "TRUNCATED",
	ERR_INVALID_UTF8:      "INVALID_UTF8",
	ERR_MALFORMED_BLOCK:   "MALFORMED_BLOCK",
	ERR_VALIDATION_FAILED: "VALIDATION_FAILED",
	ERR_LOCKED_ACCESS:     "LOCKED_ACCESS",
	ERR_WRONG_KEY:         "WRONG_KEY",
	ERR_POLICY_VIOLATION:  "POLICY_VIOLATION",
	ERR_INVALID_ARGUMENT:  "INVALID_ARGUMENT",
	ERR_NOT_FOUND:         "NOT_FOUND",
	ERR_PROCESSING:        "PROCESSING",
}

func (e ERR) String() string {
	if name, ok := errName[e]; ok {
		return name
	}

	return "UNKNOWN"
}

// Code returns e itself, so a sentinel ERR value and an *Error built from it
// can be compared the same way: errors.ErrProcessing.Code() ==
// someErr.Code().
func (e ERR) Code() ERR {
	return e
}

// Sentinel ERR values, one per §7 error kind plus the general-purpose ones
// (invalid argument, not found, processing), for comparisons like
// errors.ErrTruncated.Code() against a caught error's Code().
var (
	ErrTruncated        = ERR_TRUNCATED
	ErrInvalidUTF8      = ERR_INVALID_UTF8
	ErrMalformedBlock   = ERR_MALFORMED_BLOCK
	ErrValidationFailed = ERR_VALIDATION_FAILED
	ErrLockedAccess     = ERR_LOCKED_ACCESS
	ErrWrongKey         = ERR_WRONG_KEY
	ErrPolicyViolation  = ERR_POLICY_VIOLATION
	ErrInvalidArgument  = ERR_INVALID_ARGUMENT
	ErrNotFound         = ERR_NOT_FOUND
	ErrProcessing       = ERR_PROCESSING
)

// Error is the typed, wrappable error every fallible operation in this
// module returns.
type Error struct {
	code       ERR
	message    string
	wrappedErr error
}

// Code returns the error's class.
func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

// Message returns the formatted message, without the wrapped cause.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.wrappedErr == nil {
		return fmt.Sprintf("%s: %s", e.code, e.message)
	}

	return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.wrappedErr)
}

// Is reports whether target carries the same ERR code.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}

	var other *Error
	if stderrors.As(target, &other) {
		return e.code == other.code
	}

	return false
}

// As supports errors.As against *Error and against the wrapped cause.
func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if out, ok := target.(**Error); ok {
		*out = e
		return true
	}

	if e.wrappedErr != nil {
		return stderrors.As(e.wrappedErr, target)
	}

	return false
}

// Unwrap exposes the wrapped cause to errors.Is/As/Unwrap.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

// New builds an *Error of the given code. If the last element of params is
// an error, it is kept as the wrapped cause and excluded from the fmt.Sprintf
// arguments used to render message.
func New(code ERR, message string, params ...interface{}) *Error {
	var wrapped error

	if len(params) > 0 {
		if err, ok := params[len(params)-1].(error); ok {
			wrapped = err
			params = params[:len(params)-1]
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	return &Error{
		code:       code,
		message:    message,
		wrappedErr: wrapped,
	}
}

// Is delegates to the standard library, kept here so callers need only
// import this package when working with *Error values.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As delegates to the standard library.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Join delegates to the standard library.
func Join(errs ...error) error { return stderrors.Join(errs...) }

// Sentinel constructors, one per §7 error kind plus the general-purpose
// ones exercised throughout the model and wire packages.

func NewTruncatedError(message string, params ...interface{}) *Error {
	return New(ERR_TRUNCATED, message, params...)
}

func NewInvalidUTF8Error(message string, params ...interface{}) *Error {
	return New(ERR_INVALID_UTF8, message, params...)
}

func NewMalformedBlockError(message string, params ...interface{}) *Error {
	return New(ERR_MALFORMED_BLOCK, message, params...)
}

func NewValidationFailedError(message string, params ...interface{}) *Error {
	return New(ERR_VALIDATION_FAILED, message, params...)
}

func NewLockedAccessError(message string, params ...interface{}) *Error {
	return New(ERR_LOCKED_ACCESS, message, params...)
}

func NewWrongKeyError(message string, params ...interface{}) *Error {
	return New(ERR_WRONG_KEY, message, params...)
}

func NewPolicyViolationError(message string, params ...interface{}) *Error {
	return New(ERR_POLICY_VIOLATION, message, params...)
}

func NewInvalidArgumentError(message string, params ...interface{}) *Error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}

func NewNotFoundError(message string, params ...interface{}) *Error {
	return New(ERR_NOT_FOUND, message, params...)
}

func NewProcessingError(message string, params ...interface{}) *Error {
	return New(ERR_PROCESSING, message, params...)
}
