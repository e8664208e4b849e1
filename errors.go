package genericfile

import (
	"github.com/Jumpaku/go-genericfile/errors"
)

// Errors returned by providers. See package errors for store-level errors.
var (
	ErrInvalidPath     = errors.ErrInvalidPath
	ErrAccessControl   = errors.ErrAccessControl
	ErrNotFound        = errors.ErrNotFound
	ErrOperationFailed = errors.ErrOperationFailed
)
