package gitstore

import (
	stderrors "errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/Jumpaku/go-genericfile/repository"
)

// Tree returns the worktree tree below request.Path, or nil if there is no entry there.
// Children pass the request filter and are sorted by name. The .git folder is listed only
// with IncludeSystemFolders and other dot-prefixed entries only with ShowHidden.
func (s *Store) Tree(request repository.TreeRequest) (tree *repository.Tree, err error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return s.treeAt(snap, request)
}

// treeAt builds the tree of request from snap. The history is walked once for the whole tree.
func (s *Store) treeAt(snap *snapshot, request repository.TreeRequest) (*repository.Tree, error) {
	filter, err := repository.ParseFilter(request.Filter)
	if err != nil {
		return nil, err
	}
	rel, err := relPath(request.Path)
	if err != nil {
		return nil, err
	}
	if isSystem(rel) && !request.IncludeSystemFolders {
		return nil, nil
	}
	file, err := s.lookup(snap, rel)
	if err != nil || file == nil {
		return nil, err
	}
	w := &treeWalker{store: s, snap: snap, request: request, filter: filter}
	tree, err := w.walk(rel, file, request.Depth)
	if err != nil {
		return nil, err
	}
	if err := snap.resolveLastModified(w.files...); err != nil {
		return nil, err
	}
	return tree, nil
}

type treeWalker struct {
	store   *Store
	snap    *snapshot
	request repository.TreeRequest
	filter  repository.NameFilter
	files   []*repository.File
}

func (w *treeWalker) walk(rel string, file *repository.File, depth int) (*repository.Tree, error) {
	node := &repository.Tree{File: file}
	w.files = append(w.files, file)
	if !file.Folder || depth == 0 {
		return node, nil
	}

	entries, err := w.store.fs.ReadDir(rel)
	if err != nil && !(rel == "" && stderrors.Is(err, os.ErrNotExist)) {
		return nil, ioError(err, fmt.Sprintf("failed to list '%s'", file.Path))
	}
	slices.SortFunc(entries, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	node.Children = []*repository.Tree{}
	for _, entry := range entries {
		if !w.visible(rel, entry) {
			continue
		}
		childRel := path.Join(rel, entry.Name())
		child := w.store.newFile(w.snap, childRel, entry)
		sub, err := w.walk(childRel, child, next(depth))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, sub)
	}
	return node, nil
}

func (w *treeWalker) visible(parentRel string, entry os.FileInfo) bool {
	name := entry.Name()
	if parentRel == "" && name == SystemFolder {
		return w.request.IncludeSystemFolders && w.filter.Match(name, entry.IsDir())
	}
	if strings.HasPrefix(name, ".") && !w.request.ShowHidden && !isSystem(parentRel) {
		return false
	}
	return w.filter.Match(name, entry.IsDir())
}

func next(depth int) int {
	if depth < 0 {
		return depth
	}
	return depth - 1
}
