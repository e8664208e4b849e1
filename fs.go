package genericfile

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	pathpkg "path"
	"slices"
	"strings"
	"sync"
	"time"
)

// FileSource is the part of a Provider that FS reads from. Both Provider and *Registry satisfy it.
type FileSource interface {
	ContentWrapper(path Path) (content *ContentWrapper, err error)
	Tree(options TreeOptions) (tree *Tree, err error)
}

// FS is a read-only io/fs view of the files below a root path of a FileSource.
// Hidden files are included. Names passed to FS are relative to the root, as io/fs requires.
type FS struct {
	source FileSource
	root   Path
}

// Verify interface implementations at compile time.
var (
	_ fs.FS         = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
)

// NewFS returns a read-only io/fs view of the files of source below root.
func NewFS(source FileSource, root Path) *FS {
	return &FS{source: source, root: root}
}

// Open opens the named file or folder.
func (fsys *FS) Open(name string) (fs.File, error) {
	p, node, err := fsys.node("open", name, 1)
	if err != nil {
		return nil, err
	}
	info := newFileInfo(pathpkg.Base(name), node.File)
	if node.File.IsFolder() {
		return &dir{name: name, info: info, entries: dirEntries(node)}, nil
	}
	content, err := fsys.source.ContentWrapper(p)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fsError(err)}
	}
	return &file{name: name, info: info, content: content}, nil
}

// Stat returns the info of the named file or folder without opening its content.
func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	_, node, err := fsys.node("stat", name, 0)
	if err != nil {
		return nil, err
	}
	return newFileInfo(pathpkg.Base(name), node.File), nil
}

// ReadDir reads the named folder and returns its entries sorted by name.
func (fsys *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	_, node, err := fsys.node("readdir", name, 1)
	if err != nil {
		return nil, err
	}
	if !node.File.IsFolder() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fmt.Errorf("%w: not a folder", fs.ErrInvalid)}
	}
	return dirEntries(node), nil
}

// ReadFile reads the content of the named file.
func (fsys *FS) ReadFile(name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, ok := f.(*dir); ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fmt.Errorf("%w: is a folder", fs.ErrInvalid)}
	}
	return io.ReadAll(f)
}

func (fsys *FS) node(op, name string, depth int) (Path, *Tree, error) {
	p, err := fsys.resolve(name)
	if err != nil {
		return Path{}, nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	tree, err := fsys.source.Tree(TreeOptions{BasePath: &p, MaxDepth: depth, Filter: FilterAll, ShowHidden: true})
	if err != nil {
		return Path{}, nil, &fs.PathError{Op: op, Path: name, Err: fsError(err)}
	}
	if tree == nil || tree.File == nil {
		return Path{}, nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return p, tree, nil
}

func (fsys *FS) resolve(name string) (Path, error) {
	if !fs.ValidPath(name) {
		return Path{}, fs.ErrInvalid
	}
	p := fsys.root
	if name == "." {
		return p, nil
	}
	for _, s := range strings.Split(name, "/") {
		child, err := p.Child(s)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %w", fs.ErrInvalid, err)
		}
		p = child
	}
	return p, nil
}

// fsError tags provider errors with the matching io/fs sentinel, keeping the original in the chain.
func fsError(err error) error {
	switch {
	case stderrors.Is(err, ErrNotFound):
		return fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	case stderrors.Is(err, ErrAccessControl):
		return fmt.Errorf("%w: %w", fs.ErrPermission, err)
	case stderrors.Is(err, ErrInvalidPath):
		return fmt.Errorf("%w: %w", fs.ErrInvalid, err)
	default:
		return err
	}
}

func dirEntries(node *Tree) []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, len(node.Children))
	for _, child := range node.Children {
		entries = append(entries, &dirEntry{info: newFileInfo(child.File.Name, child.File)})
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int { return strings.Compare(a.Name(), b.Name()) })
	return entries
}

// dir implements fs.ReadDirFile for a folder. ReadDir is guarded by a mutex.
type dir struct {
	name    string
	info    *fileInfo
	entries []fs.DirEntry
	offset  int
	mu      sync.Mutex
}

var _ fs.ReadDirFile = (*dir)(nil)

func (d *dir) Stat() (fs.FileInfo, error) {
	return d.info, nil
}

func (d *dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: fs.ErrInvalid}
}

func (d *dir) Close() error {
	return nil
}

// ReadDir returns the next n entries, or all remaining entries if n <= 0.
func (d *dir) ReadDir(n int) ([]fs.DirEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rest := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return slices.Clone(rest), nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	entries := slices.Clone(rest[:min(n, len(rest))])
	d.offset += len(entries)
	return entries, nil
}

// file implements fs.File over the content stream of a file.
type file struct {
	name    string
	info    *fileInfo
	content *ContentWrapper
}

var _ fs.File = (*file)(nil)

func (f *file) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

func (f *file) Read(b []byte) (int, error) {
	return f.content.Read(b)
}

func (f *file) Close() error {
	return f.content.Close()
}

type dirEntry struct {
	info *fileInfo
}

var _ fs.DirEntry = (*dirEntry)(nil)

func (e *dirEntry) Name() string               { return e.info.Name() }
func (e *dirEntry) IsDir() bool                { return e.info.IsDir() }
func (e *dirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e *dirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// fileInfo implements fs.FileInfo for a File. Providers do not report sizes, so Size is 0.
type fileInfo struct {
	name string
	file *File
}

var _ fs.FileInfo = (*fileInfo)(nil)

func newFileInfo(name string, f *File) *fileInfo {
	return &fileInfo{name: name, file: f}
}

func (fi *fileInfo) Name() string {
	return fi.name
}

func (fi *fileInfo) Size() int64 {
	return 0
}

// Mode is read-only; write access is reported by Provider.HasAccess.
func (fi *fileInfo) Mode() fs.FileMode {
	if fi.IsDir() {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

func (fi *fileInfo) ModTime() time.Time {
	return fi.file.ModifiedDate
}

func (fi *fileInfo) IsDir() bool {
	return fi.file.IsFolder()
}

// Sys returns the underlying *File.
func (fi *fileInfo) Sys() any {
	return fi.file
}
