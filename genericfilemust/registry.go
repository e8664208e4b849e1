// Package genericfilemust wraps the genericfile package with panic-based error handling.
//
// It provides the same routed provider operations as genericfile.Registry, but instead of
// returning errors, all exported methods panic on failure.
package genericfilemust

import (
	genericfile "github.com/Jumpaku/go-genericfile"
)

// Registry routes provider operations by path.
//
// All methods of Registry panic on error instead of returning an error value.
type Registry struct {
	registry *genericfile.Registry
}

// New creates a Registry routing to providers in registration order.
func New(providers ...genericfile.Provider) *Registry {
	return Wrap(genericfile.NewRegistry(providers...))
}

// Wrap returns a Registry panicking on the errors of registry.
func Wrap(registry *genericfile.Registry) *Registry {
	return &Registry{registry: registry}
}

// Unwrap returns the underlying error-returning registry.
func (r *Registry) Unwrap() *genericfile.Registry {
	return r.registry
}

// Register appends p to the providers.
func (r *Registry) Register(p genericfile.Provider) {
	r.registry.Register(p)
}

// Owner returns the first provider owning path.
//
// It panics if no provider owns path.
func (r *Registry) Owner(path genericfile.Path) genericfile.Provider {
	return must1(r.registry.Owner(path))
}

// FolderExists reports whether there is a folder at path. Unowned paths have no folders.
//
// It panics if the owning provider fails.
func (r *Registry) FolderExists(path genericfile.Path) bool {
	return must1(r.registry.FolderExists(path))
}

// ContentWrapper opens the content of the file at path. The caller must close it.
//
// It panics if the file cannot be opened.
func (r *Registry) ContentWrapper(path genericfile.Path) *genericfile.ContentWrapper {
	return must1(r.registry.ContentWrapper(path))
}

// Tree returns the tree described by options.
//
// It panics if any queried provider fails.
func (r *Registry) Tree(options genericfile.TreeOptions) *genericfile.Tree {
	return must1(r.registry.Tree(options))
}

// CreateFolder creates the folder at path and reports whether it was created.
//
// It panics if creation fails.
func (r *Registry) CreateFolder(path genericfile.Path) bool {
	return must1(r.registry.CreateFolder(path))
}

// HasAccess reports whether all permissions are granted on path.
//
// It panics if the check fails.
func (r *Registry) HasAccess(path genericfile.Path, permissions genericfile.PermissionSet) bool {
	return must1(r.registry.HasAccess(path, permissions))
}
