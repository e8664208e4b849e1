// Package gitstore implements repository.Store over the working tree of a git repository.
//
// Files and folders are read from the worktree filesystem. The commit history supplies the
// last-modified date of every path and, when enabled, the object id of tracked entries.
// The .git directory is a system folder: it is invisible to path lookups and only listed in
// trees when requested.
package gitstore

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"unicode"

	"github.com/Jumpaku/go-genericfile/errors"
	"github.com/Jumpaku/go-genericfile/repository"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	// SystemFolder is the name of the folder holding the repository database.
	SystemFolder = ".git"

	sniffLength      = 3072
	reservedNameRune = `/\:*?"<>|`
)

// Store is a repository.Store over a git worktree.
type Store struct {
	repo      *gogit.Repository
	fs        billy.Filesystem
	readOnly  bool
	objectIDs bool
}

var (
	_ repository.Store       = (*Store)(nil)
	_ repository.FolderStore = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithReadOnly makes the store deny every write.
func WithReadOnly() Option {
	return func(s *Store) {
		s.readOnly = true
	}
}

// WithObjectIDs sets whether tracked entries are identified by their object hash at HEAD.
// It is enabled by default. Disabled, or for untracked entries, the id is the path.
func WithObjectIDs(enabled bool) Option {
	return func(s *Store) {
		s.objectIDs = enabled
	}
}

// Init creates a repository whose worktree is fs and whose database is stored in fs/.git.
func Init(fs billy.Filesystem, opts ...Option) (*Store, error) {
	dotGit, err := fs.Chroot(SystemFolder)
	if err != nil {
		return nil, wrapError(err, "failed to create .git filesystem")
	}
	repo, err := gogit.Init(filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault()), fs)
	if err != nil {
		return nil, wrapError(err, "failed to initialize repository")
	}
	return New(repo, opts...)
}

// Open opens the repository whose worktree is fs and whose database is stored in fs/.git.
func Open(fs billy.Filesystem, opts ...Option) (*Store, error) {
	dotGit, err := fs.Chroot(SystemFolder)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to .git")
	}
	repo, err := gogit.Open(filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault()), fs)
	if err != nil {
		return nil, wrapError(err, "failed to open repository")
	}
	return New(repo, opts...)
}

// New creates a Store over the worktree of repo. Bare repositories are rejected.
func New(repo *gogit.Repository, opts ...Option) (*Store, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, wrapError(err, "failed to get worktree")
	}
	s := &Store{
		repo:      repo,
		fs:        wt.Filesystem,
		objectIDs: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Repository returns the underlying go-git repository.
func (s *Store) Repository() *gogit.Repository {
	return s.repo
}

// Filesystem returns the worktree filesystem.
func (s *Store) Filesystem() billy.Filesystem {
	return s.fs
}

// ReadOnly reports whether the store denies writes.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// FileByPath returns the file at path, or nil if the worktree has no such entry.
func (s *Store) FileByPath(p string) (file *repository.File, err error) {
	rel, err := relPath(p)
	if err != nil {
		return nil, err
	}
	if isSystem(rel) {
		return nil, nil
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	file, err = s.lookup(snap, rel)
	if err != nil || file == nil {
		return nil, err
	}
	if err := snap.resolveLastModified(file); err != nil {
		return nil, err
	}
	return file, nil
}

// FolderExists reports whether there is a folder at path. Unlike FileByPath it reads no history.
func (s *Store) FolderExists(p string) (exists bool, err error) {
	rel, err := relPath(p)
	if err != nil {
		return false, err
	}
	if rel == "" {
		return true, nil
	}
	if isSystem(rel) {
		return false, nil
	}
	info, err := s.stat(rel)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

// stat returns the worktree info of rel, or nil if there is no entry there.
func (s *Store) stat(rel string) (os.FileInfo, error) {
	info, err := s.fs.Stat(rel)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioError(err, fmt.Sprintf("failed to stat '/%s'", rel))
	}
	return info, nil
}

// lookup returns the file at rel without its LastModified time, or nil if there is none.
func (s *Store) lookup(snap *snapshot, rel string) (*repository.File, error) {
	if rel == "" {
		return s.root(), nil
	}
	info, err := s.stat(rel)
	if err != nil || info == nil {
		return nil, err
	}
	return s.newFile(snap, rel, info), nil
}

func (s *Store) root() *repository.File {
	file := &repository.File{ID: repository.RootPath, Path: repository.RootPath, Folder: true}
	if info, err := s.fs.Stat(""); err == nil {
		file.Created = info.ModTime()
	}
	return file
}

func (s *Store) newFile(snap *snapshot, rel string, info os.FileInfo) *repository.File {
	file := &repository.File{
		ID:      "/" + rel,
		Name:    info.Name(),
		Path:    "/" + rel,
		Folder:  info.IsDir(),
		Hidden:  strings.HasPrefix(info.Name(), "."),
		Created: info.ModTime(),
	}
	if s.objectIDs {
		if id := snap.objectID(rel); id != "" {
			file.ID = id
		}
	}
	return file
}

// OpenReadStream opens the worktree content of file and sniffs its MIME type.
func (s *Store) OpenReadStream(file *repository.File) (stream *repository.ReadStream, err error) {
	rel, err := relPath(file.Path)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(rel)
	if err != nil {
		return nil, ioError(err, fmt.Sprintf("failed to open '%s'", file.Path))
	}

	br := bufio.NewReaderSize(f, sniffLength)
	head, err := br.Peek(sniffLength)
	if err != nil && !stderrors.Is(err, io.EOF) && !stderrors.Is(err, bufio.ErrBufferFull) {
		_ = f.Close()
		return nil, ioError(err, fmt.Sprintf("failed to read '%s'", file.Path))
	}

	return &repository.ReadStream{
		ReadCloser: readCloser{Reader: br, Closer: f},
		MimeType:   mimetype.Detect(head).String(),
	}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// CreateDirectory creates the folder at path and its missing ancestors in the worktree.
func (s *Store) CreateDirectory(p string) (created bool, err error) {
	rel, err := relPath(p)
	if err != nil {
		return false, err
	}
	for _, name := range strings.Split(rel, "/") {
		if err := validateName(name); err != nil {
			return false, err
		}
	}
	if s.readOnly {
		return false, errors.NewStoreError(fmt.Sprintf("read-only repository '%s'", p), errors.ErrAccessDenied)
	}
	if rel == "" {
		return false, nil
	}
	if isSystem(rel) {
		return false, errors.NewStoreError(fmt.Sprintf("system folder '%s'", p), errors.ErrAccessDenied)
	}

	info, err := s.fs.Stat(rel)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, errors.NewIOError(fmt.Sprintf("file exists at '%s'", p), nil)
	case !stderrors.Is(err, os.ErrNotExist):
		return false, ioError(err, fmt.Sprintf("failed to stat '%s'", p))
	}

	if err := s.fs.MkdirAll(rel, 0o755); err != nil {
		return false, ioError(err, fmt.Sprintf("failed to create '%s'", p))
	}
	return true, nil
}

// HasAccess reports whether all permissions are granted on path. Reading is always granted,
// writing and deleting unless the store is read-only. Git has no ACLs, so ACL management and
// the ALL permission are never granted.
func (s *Store) HasAccess(p string, permissions []repository.Permission) (granted bool, err error) {
	rel, err := relPath(p)
	if err != nil {
		return false, err
	}
	if isSystem(rel) {
		return false, nil
	}
	if rel != "" {
		info, err := s.stat(rel)
		if err != nil || info == nil {
			return false, err
		}
	}
	for _, permission := range permissions {
		switch permission {
		case repository.PermissionRead:
		case repository.PermissionWrite, repository.PermissionDelete:
			if s.readOnly {
				return false, nil
			}
		default:
			return false, nil
		}
	}
	return true, nil
}

func relPath(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "", errors.NewIOError(fmt.Sprintf("path must be absolute '%s'", p), errors.ErrInvalidName)
	}
	return strings.TrimPrefix(path.Clean(p), "/"), nil
}

func isSystem(rel string) bool {
	return rel == SystemFolder || strings.HasPrefix(rel, SystemFolder+"/")
}

func validateName(name string) error {
	if name == "" {
		return nil
	}
	for _, r := range name {
		if strings.ContainsRune(reservedNameRune, r) || unicode.IsControl(r) {
			return errors.NewIOError(fmt.Sprintf("reserved character in name %q", name), errors.ErrInvalidName)
		}
	}
	return nil
}
