// Package drivestore implements repository.Store over a Google Drive folder.
//
// The folder identified by the root id is the repository root. Paths are resolved by name one
// segment at a time, so "/public/reports" is the folder "reports" inside the folder "public"
// inside the root. When a folder holds several entries with the same name, the first one
// listed by Drive wins.
package drivestore

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/Jumpaku/go-genericfile/errors"
	"github.com/Jumpaku/go-genericfile/repository"
	"google.golang.org/api/drive/v3"
)

// Store is a repository.Store over a Drive folder.
type Store struct {
	service *drive.Service
	rootID  string
}

var _ repository.Store = (*Store)(nil)

// New creates a Store over the folder rootID.
func New(service *drive.Service, rootID string) *Store {
	return &Store{service: service, rootID: rootID}
}

// RootID returns the id of the root folder.
func (s *Store) RootID() string {
	return s.rootID
}

// FileByPath returns the file at path, or nil if there is none.
func (s *Store) FileByPath(p string) (file *repository.File, err error) {
	parts, err := splitPath(p)
	if err != nil {
		return nil, err
	}
	f, err := s.resolve(parts)
	if err != nil || f == nil {
		return nil, err
	}
	return newFile(f, joinPath(parts)), nil
}

// resolve returns the Drive file at the path made of parts, or nil if there is none.
func (s *Store) resolve(parts []string) (file *drive.File, err error) {
	file, found, err := findByID(s.service, s.rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to find root folder: %w", err)
	}
	if !found {
		return nil, errors.NewStoreError(fmt.Sprintf("root folder not found '%s'", s.rootID), errors.ErrFileMissing)
	}
	for _, part := range parts {
		if !isFolder(file) {
			return nil, nil
		}
		files, err := findAllByNameIn(s.service, file.Id, part)
		if err != nil {
			return nil, fmt.Errorf("failed to find '%s' in '%s': %w", part, file.Id, err)
		}
		if len(files) == 0 {
			return nil, nil
		}
		file = files[0]
	}
	return file, nil
}

// OpenReadStream downloads the content of file. Google-Apps documents have no downloadable
// content and fail with ErrNotReadable.
func (s *Store) OpenReadStream(file *repository.File) (stream *repository.ReadStream, err error) {
	f, found, err := findByID(s.service, file.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewIOError(fmt.Sprintf("file missing '%s'", file.Path), errors.ErrFileMissing)
	}
	if isFolder(f) {
		return nil, errors.NewIOError(fmt.Sprintf("'%s' is a folder", file.Path), nil)
	}
	if isAppFile(f) {
		return nil, errors.NewIOError(fmt.Sprintf("cannot download google-apps file '%s'", file.Path), errors.ErrNotReadable)
	}

	resp, err := download(s.service, f.Id)
	if err != nil {
		return nil, err
	}
	return &repository.ReadStream{ReadCloser: resp.Body, MimeType: f.MimeType}, nil
}

// CreateDirectory creates the folder at path and its missing ancestors.
func (s *Store) CreateDirectory(p string) (created bool, err error) {
	parts, err := splitPath(p)
	if err != nil {
		return false, err
	}
	for _, part := range parts {
		if err := validateName(part); err != nil {
			return false, err
		}
	}

	current, found, err := findByID(s.service, s.rootID)
	if err != nil {
		return false, fmt.Errorf("failed to find root folder: %w", err)
	}
	if !found {
		return false, errors.NewStoreError(fmt.Sprintf("root folder not found '%s'", s.rootID), errors.ErrFileMissing)
	}
	for i, part := range parts {
		files, err := findAllByNameIn(s.service, current.Id, part)
		if err != nil {
			return false, fmt.Errorf("failed to find '%s' in '%s': %w", part, current.Id, err)
		}
		if len(files) > 0 {
			if !isFolder(files[0]) {
				return false, errors.NewIOError(fmt.Sprintf("file exists at '%s'", joinPath(parts[:i+1])), nil)
			}
			current, created = files[0], false
			continue
		}
		current, err = createDirIn(s.service, current.Id, part)
		if err != nil {
			return false, fmt.Errorf("failed to create '%s': %w", joinPath(parts[:i+1]), err)
		}
		created = true
	}
	return created, nil
}

// HasAccess reports whether the capabilities of the file at path grant all permissions.
// Reading needs canDownload except for folders, writing canEdit, deleting canDelete and
// managing ACLs canShare.
func (s *Store) HasAccess(p string, permissions []repository.Permission) (granted bool, err error) {
	parts, err := splitPath(p)
	if err != nil {
		return false, err
	}
	f, err := s.resolve(parts)
	if err != nil || f == nil {
		return false, err
	}
	c := f.Capabilities
	if c == nil {
		c = &drive.FileCapabilities{}
	}
	read := isFolder(f) || c.CanDownload
	for _, permission := range permissions {
		var ok bool
		switch permission {
		case repository.PermissionRead:
			ok = read
		case repository.PermissionWrite:
			ok = c.CanEdit
		case repository.PermissionDelete:
			ok = c.CanDelete
		case repository.PermissionACLManagement:
			ok = c.CanShare
		case repository.PermissionAll:
			ok = read && c.CanEdit && c.CanDelete && c.CanShare
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func newFile(f *drive.File, p string) *repository.File {
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	created, _ := time.Parse(time.RFC3339, f.CreatedTime)
	name := f.Name
	if p == repository.RootPath {
		name = ""
	}
	return &repository.File{
		ID:           f.Id,
		Name:         name,
		Path:         p,
		Title:        f.Name,
		Description:  f.Description,
		Folder:       isFolder(f),
		Hidden:       strings.HasPrefix(name, "."),
		LastModified: modified,
		Created:      created,
	}
}

func splitPath(p string) (parts []string, err error) {
	if !strings.HasPrefix(p, "/") {
		return nil, errors.NewIOError(fmt.Sprintf("path must be absolute '%s'", p), errors.ErrInvalidName)
	}
	for _, part := range strings.Split(path.Clean(p), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts, nil
}

func joinPath(parts []string) string {
	return "/" + strings.Join(parts, "/")
}

func validateName(name string) error {
	if slices.ContainsFunc([]rune(name), unicode.IsControl) {
		return errors.NewIOError(fmt.Sprintf("control character in name %q", name), errors.ErrInvalidName)
	}
	return nil
}
