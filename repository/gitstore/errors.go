package gitstore

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/Jumpaku/go-genericfile/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	platformerrors "github.com/jmgilman/go/errors"
)

// wrapError wraps a failed repository operation as a store error.
// If err is nil, returns nil.
func wrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.NewStoreError(context, classifyError(err))
}

// ioError wraps a failed worktree operation as an io error.
// If err is nil, returns nil.
func ioError(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.NewIOError(context, classifyError(err))
}

// classifyError maps go-git and filesystem errors to platform and store error types.
// Unknown errors are passed through unchanged.
func classifyError(err error) error {
	switch {
	case stderrors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", errors.ErrAccessDenied, err)
	case stderrors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", errors.ErrFileMissing, err)
	case stderrors.Is(err, gogit.ErrRepositoryNotExists):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "repository does not exist")
	case stderrors.Is(err, gogit.ErrRepositoryAlreadyExists):
		return platformerrors.Wrap(err, platformerrors.CodeAlreadyExists, "repository already exists")
	case stderrors.Is(err, gogit.ErrIsBareRepository):
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "bare repository has no worktree")
	case stderrors.Is(err, plumbing.ErrReferenceNotFound):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "reference not found")
	case stderrors.Is(err, plumbing.ErrObjectNotFound):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "object not found")
	}
	return err
}
