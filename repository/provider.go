// Package repository implements a genericfile.Provider over a content repository.
//
// The provider owns every slash-rooted path. It forwards requests to a Store, the capability
// surface of the repository, converts the native records the store returns into generic files
// and trees, and translates store failures into the provider-level errors of package errors.
package repository

import (
	stderrors "errors"
	"fmt"

	genericfile "github.com/Jumpaku/go-genericfile"
	"github.com/Jumpaku/go-genericfile/errors"
	"go.uber.org/zap"
)

const (
	// Type is the provider type tag of repository providers.
	Type = "repository"
	// RootPath is the root of the repository, which is also the token it owns.
	RootPath = genericfile.RootToken
	// DefaultDisplayName is the display label used unless WithDisplayName is given.
	DefaultDisplayName = "Repository"
)

var rootPath = genericfile.MustParsePath(RootPath)

// Provider is a genericfile.Provider backed by a Store.
// It holds no mutable state and is safe for concurrent use if its Store is.
type Provider struct {
	store       Store
	displayName string
	logger      *zap.Logger
}

var _ genericfile.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithDisplayName sets the localized label used as the provider name and root folder name.
func WithDisplayName(name string) Option {
	return func(p *Provider) {
		p.displayName = name
	}
}

// WithLogger sets the logger of the provider.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// New creates a Provider answering requests from store.
func New(store Store, opts ...Option) *Provider {
	p := &Provider{
		store:       store,
		displayName: DefaultDisplayName,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("provider", Type))
	return p
}

// Name returns the display label of the repository.
func (p *Provider) Name() string {
	return p.displayName
}

// Type returns Type.
func (p *Provider) Type() string {
	return Type
}

// Owns reports whether path is rooted at RootPath.
func (p *Provider) Owns(path genericfile.Path) bool {
	return path.FirstSegment() == RootPath
}

// FolderExists reports whether there is a folder at path.
func (p *Provider) FolderExists(path genericfile.Path) (exists bool, err error) {
	if !p.Owns(path) {
		return false, nil
	}
	if folders, ok := p.store.(FolderStore); ok {
		exists, err = folders.FolderExists(path.String())
		if err != nil {
			return false, p.translate(fmt.Sprintf("failed to look up '%s'", path), err)
		}
		return exists, nil
	}
	file, err := p.store.FileByPath(path.String())
	if err != nil {
		return false, p.translate(fmt.Sprintf("failed to look up '%s'", path), err)
	}
	return file != nil && file.Folder, nil
}

// ContentWrapper opens the content of the file at path.
func (p *Provider) ContentWrapper(path genericfile.Path) (content *genericfile.ContentWrapper, err error) {
	if !p.Owns(path) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("path not found '%s'", path), nil)
	}
	file, err := p.store.FileByPath(path.String())
	if err != nil {
		return nil, p.translate(fmt.Sprintf("failed to look up '%s'", path), err)
	}
	if file == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("file not found '%s'", path), nil)
	}
	if file.Folder {
		return nil, errors.NewOperationFailedError(fmt.Sprintf("'%s' is a folder", path), nil)
	}

	stream, err := p.store.OpenReadStream(file)
	if err != nil {
		return nil, p.translate(fmt.Sprintf("failed to open '%s'", path), err)
	}
	p.logger.Debug("opened content", zap.String("path", path.String()), zap.String("mime_type", stream.MimeType))

	return &genericfile.ContentWrapper{
		Reader:   stream.ReadCloser,
		FileName: file.Name,
		MimeType: stream.MimeType,
	}, nil
}

// Tree returns the tree described by options. The store answers a single bounded request.
// When the tree is rooted at RootPath, the root is named after the provider and cannot be
// edited, deleted or have children added, whatever the store reports.
func (p *Provider) Tree(options genericfile.TreeOptions) (tree *genericfile.Tree, err error) {
	basePath := rootPath
	if options.BasePath != nil {
		if !p.Owns(*options.BasePath) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("base path not found '%s'", options.BasePath), nil)
		}
		basePath = *options.BasePath
	}

	depth := options.MaxDepth
	if depth < 0 {
		depth = genericfile.DepthUnbounded
	}
	request := TreeRequest{
		Path:       basePath.String(),
		Depth:      depth,
		Filter:     Filter(options.Filter),
		ShowHidden: options.ShowHidden,
	}
	p.logger.Debug("get tree",
		zap.String("path", request.Path),
		zap.Int("depth", request.Depth),
		zap.String("filter", request.Filter),
		zap.Bool("show_hidden", request.ShowHidden))

	nativeTree, err := p.store.Tree(request)
	if err != nil {
		return nil, p.translate(fmt.Sprintf("failed to get tree of '%s'", basePath), err)
	}
	if nativeTree == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("base path not found '%s'", basePath), nil)
	}

	parentPath := ""
	if parent, ok := basePath.Parent(); ok {
		parentPath = parent.String()
	}
	tree = ConvertTree(nativeTree, parentPath)

	if basePath.IsRoot() {
		tree.File.Name = p.displayName
		tree.File.CanAddChildren = false
		tree.File.CanDelete = false
		tree.File.CanEdit = false
	}
	return tree, nil
}

// CreateFolder creates the folder at path together with its missing ancestors.
func (p *Provider) CreateFolder(path genericfile.Path) (created bool, err error) {
	if !p.Owns(path) {
		return false, errors.NewNotFoundError(fmt.Sprintf("path not found '%s'", path), nil)
	}
	if path.IsRoot() {
		return false, nil
	}
	created, err = p.store.CreateDirectory(path.String())
	if err != nil {
		return false, p.translate(fmt.Sprintf("failed to create folder '%s'", path), err)
	}
	p.logger.Debug("create folder", zap.String("path", path.String()), zap.Bool("created", created))
	return created, nil
}

// HasAccess reports whether all permissions are granted on path. Missing paths grant nothing.
func (p *Provider) HasAccess(path genericfile.Path, permissions genericfile.PermissionSet) (granted bool, err error) {
	if !p.Owns(path) {
		return false, nil
	}
	granted, err = p.store.HasAccess(path.String(), Permissions(permissions))
	if err != nil {
		return false, p.translate(fmt.Sprintf("failed to check access to '%s'", path), err)
	}
	return granted, nil
}

func (p *Provider) translate(msg string, err error) error {
	var translated error
	switch {
	case stderrors.Is(err, errors.ErrAccessDenied):
		translated = errors.NewAccessControlError(msg, err)
	case stderrors.Is(err, errors.ErrInvalidName):
		translated = errors.NewInvalidPathError(msg, err)
	default:
		translated = errors.NewOperationFailedError(msg, err)
	}
	p.logger.Warn(msg, zap.Error(err))
	return translated
}
