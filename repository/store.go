package repository

import (
	"io"
	"time"
)

// File is the native record of a file or folder in a content repository.
type File struct {
	ID          string
	Name        string
	Path        string
	Title       string
	Description string
	Folder      bool
	Hidden      bool
	// LastModified is zero when the repository does not know when the file last changed.
	LastModified time.Time
	Created      time.Time
}

// Tree is the native record of a file tree. Children is nil for files and for folders that were
// not expanded, and non-nil (possibly empty) for expanded folders.
type Tree struct {
	File     *File
	Children []*Tree
}

// ReadStream is an open content stream of a file.
type ReadStream struct {
	io.ReadCloser
	MimeType string
}

// TreeRequest describes a bounded tree request to a Store.
type TreeRequest struct {
	Path string
	// Depth bounds the tree below Path; 0 returns the node at Path only and -1 means unbounded.
	Depth int
	// Filter is a filter token as returned by Filter.
	Filter               string
	ShowHidden           bool
	IncludeACLs          bool
	IncludeSystemFolders bool
}

// Store is the capability surface of a content repository consumed by Provider.
//
// Stores report failures with the store-level sentinels of package errors: ErrFileMissing,
// ErrAccessDenied, ErrInvalidName, ErrNotReadable, ErrIOError and ErrStoreError.
type Store interface {
	// FileByPath returns the file at path, or nil if there is none.
	FileByPath(path string) (file *File, err error)
	// OpenReadStream opens the content of file. It fails with ErrFileMissing if the file is gone.
	OpenReadStream(file *File) (stream *ReadStream, err error)
	// Tree returns the tree rooted at request.Path, or nil if there is no file at that path.
	// The depth bound of the request is enforced by the store.
	Tree(request TreeRequest) (tree *Tree, err error)
	// CreateDirectory creates the directory at path and any missing ancestors.
	// created is false if the directory already existed.
	CreateDirectory(path string) (created bool, err error)
	// HasAccess reports whether all permissions are granted on path; false if path is missing.
	HasAccess(path string, permissions []Permission) (granted bool, err error)
}

// FolderStore is implemented by stores that can test for a folder more cheaply than FileByPath.
// Provider.FolderExists uses it when the store provides it.
type FolderStore interface {
	FolderExists(path string) (exists bool, err error)
}
