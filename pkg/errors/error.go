// Package errors carries the coded errors every backtest component returns.
//
// Codes are grouped by hundreds: 1xx bad input, 2xx data a collaborator could not
// supply, 3xx computation, 6xx orchestration. Callers usually branch on
// CategoryOf rather than on individual codes.
package errors

import (
	"errors"
	"fmt"
)

// Error is a coded failure, optionally caused by another error.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to cause. The outer code is the one GetCode reports.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the outermost *Error in err's chain, ErrCodeInsufficientData
// for a bare InsufficientDataError and ErrCodeUnknown otherwise.
func GetCode(err error) ErrorCode {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	if IsInsufficientDataError(err) {
		return ErrCodeInsufficientData
	}

	return ErrCodeUnknown
}

func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// CategoryOf returns the failure category of err.
// An InsufficientDataError anywhere in the chain wins over the outer code.
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	if IsInsufficientDataError(err) {
		return CategoryInsufficientData
	}

	return GetCode(err).Category()
}

// InsufficientDataError reports a series shorter than a computation needs,
// such as a warm-up window longer than the fetched bars.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{Required: required, Actual: actual, Symbol: symbol, Message: message}
}

func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return NewInsufficientDataError(required, actual, symbol, fmt.Sprintf(format, args...))
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError reports whether err's chain holds an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var short *InsufficientDataError

	return errors.As(err, &short)
}
