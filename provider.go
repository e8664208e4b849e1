package genericfile

import (
	"fmt"
	"sync"

	"github.com/Jumpaku/go-genericfile/errors"
)

// Provider exposes a backing file store as a tree of Files.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the display label of the provider.
	Name() string
	// Type returns a stable tag identifying the kind of provider (e.g., "repository").
	Type() string
	// Owns reports whether path belongs to this provider. It has no side effects.
	Owns(path Path) bool
	// FolderExists reports whether path exists and is a folder. A missing path is not an error.
	FolderExists(path Path) (exists bool, err error)
	// ContentWrapper opens the content of the file at path. The caller must close it.
	ContentWrapper(path Path) (content *ContentWrapper, err error)
	// Tree returns the file tree described by options.
	Tree(options TreeOptions) (tree *Tree, err error)
	// CreateFolder creates the folder at path and its missing ancestors.
	// created is false if the folder already existed.
	CreateFolder(path Path) (created bool, err error)
	// HasAccess reports whether the current principal holds all permissions on path.
	// A missing path is reported as false, not as an error.
	HasAccess(path Path, permissions PermissionSet) (granted bool, err error)
}

// Registry routes paths to the first registered provider that owns them.
// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
}

// NewRegistry creates a Registry with the given providers, in routing order.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register appends p to the routing order.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Providers returns the registered providers in routing order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Provider{}, r.providers...)
}

// ProviderOf returns the first registered provider of the given type.
func (r *Registry) ProviderOf(providerType string) (provider Provider, found bool) {
	for _, p := range r.Providers() {
		if p.Type() == providerType {
			return p, true
		}
	}
	return nil, false
}

// Owner returns the first provider that owns path.
func (r *Registry) Owner(path Path) (provider Provider, err error) {
	for _, p := range r.Providers() {
		if p.Owns(path) {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError(fmt.Sprintf("no provider owns path '%s'", path), nil)
}

// FolderExists reports whether path is an existing folder of its owner.
// Paths without an owner do not exist.
func (r *Registry) FolderExists(path Path) (exists bool, err error) {
	p, err := r.Owner(path)
	if err != nil {
		return false, nil
	}
	return p.FolderExists(path)
}

// ContentWrapper opens the file at path through its owner.
func (r *Registry) ContentWrapper(path Path) (content *ContentWrapper, err error) {
	p, err := r.Owner(path)
	if err != nil {
		return nil, err
	}
	return p.ContentWrapper(path)
}

// CreateFolder creates the folder at path through its owner.
func (r *Registry) CreateFolder(path Path) (created bool, err error) {
	p, err := r.Owner(path)
	if err != nil {
		return false, err
	}
	return p.CreateFolder(path)
}

// HasAccess checks permissions on path through its owner.
// Paths without an owner grant nothing.
func (r *Registry) HasAccess(path Path, permissions PermissionSet) (granted bool, err error) {
	p, err := r.Owner(path)
	if err != nil {
		return false, nil
	}
	return p.HasAccess(path, permissions)
}

// Tree returns the tree described by options. With a base path, the owner of the base path
// answers. Without one, a single provider answers with its own root; several providers have
// their trees joined under an immutable synthetic root folder.
// If any provider fails, no tree is returned.
func (r *Registry) Tree(options TreeOptions) (tree *Tree, err error) {
	if options.BasePath != nil {
		p, err := r.Owner(*options.BasePath)
		if err != nil {
			return nil, err
		}
		return p.Tree(options)
	}

	providers := r.Providers()
	switch len(providers) {
	case 0:
		return nil, errors.NewNotFoundError("no providers registered", nil)
	case 1:
		return providers[0].Tree(options)
	}

	root := NewTree(&File{Kind: KindFolder})
	root.SetExpanded()
	for _, p := range providers {
		subtree, err := p.Tree(options)
		if err != nil {
			return nil, fmt.Errorf("failed to get tree of provider '%s': %w", p.Type(), err)
		}
		root.AddChild(subtree)
	}
	return root, nil
}
