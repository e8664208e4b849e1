// Package errors defines the error taxonomy shared by file providers and their backing stores.
//
// Provider-level sentinels (ErrInvalidPath, ErrAccessControl, ErrNotFound, ErrOperationFailed)
// are what callers of a provider match against with errors.Is. Store-level sentinels describe
// failures in a backing store's own vocabulary and are translated by providers before they
// reach a caller. Every sentinel carries a platform error code, so errors.GetCode and
// errors.IsRetryable from github.com/jmgilman/go/errors work on any wrapped error.
package errors

import (
	platformerrors "github.com/jmgilman/go/errors"
)

// Provider-level errors.
var (
	ErrInvalidPath     = platformerrors.New(platformerrors.CodeInvalidInput, "invalid path")
	ErrAccessControl   = platformerrors.New(platformerrors.CodeForbidden, "access control")
	ErrNotFound        = platformerrors.New(platformerrors.CodeNotFound, "not found")
	ErrOperationFailed = platformerrors.New(platformerrors.CodeExecutionFailed, "operation failed")
)

// Store-level errors.
var (
	ErrStoreError   = platformerrors.New(platformerrors.CodeUnavailable, "store error")
	ErrIOError      = platformerrors.New(platformerrors.CodeExecutionFailed, "io error")
	ErrFileMissing  = platformerrors.New(platformerrors.CodeNotFound, "file missing")
	ErrAccessDenied = platformerrors.New(platformerrors.CodeForbidden, "access denied")
	ErrInvalidName  = platformerrors.New(platformerrors.CodeInvalidInput, "invalid name")
	ErrNotReadable  = platformerrors.New(platformerrors.CodeInvalidInput, "not readable")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func newWrapError(underlying error, msg string, cause error) error {
	return &wrapError{
		underlying: underlying,
		msg:        msg,
		cause:      cause,
	}
}

func NewInvalidPathError(msg string, cause error) error {
	return newWrapError(ErrInvalidPath, msg, cause)
}

func NewAccessControlError(msg string, cause error) error {
	return newWrapError(ErrAccessControl, msg, cause)
}

func NewNotFoundError(msg string, cause error) error {
	return newWrapError(ErrNotFound, msg, cause)
}

func NewOperationFailedError(msg string, cause error) error {
	return newWrapError(ErrOperationFailed, msg, cause)
}

func NewStoreError(msg string, cause error) error {
	return newWrapError(ErrStoreError, msg, cause)
}

func NewIOError(msg string, cause error) error {
	return newWrapError(ErrIOError, msg, cause)
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
