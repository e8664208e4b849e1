package drivestore

import (
	"path"
	"slices"
	"strings"

	"github.com/Jumpaku/go-genericfile/repository"
	"google.golang.org/api/drive/v3"
)

// Tree returns the tree below request.Path, or nil if there is no file there.
// Each expanded folder costs one listing, restricted by kind on the Drive side and by name
// pattern and visibility locally. Drive has no system folders and ACLs are not fetched.
func (s *Store) Tree(request repository.TreeRequest) (tree *repository.Tree, err error) {
	filter, err := repository.ParseFilter(request.Filter)
	if err != nil {
		return nil, err
	}
	parts, err := splitPath(request.Path)
	if err != nil {
		return nil, err
	}
	f, err := s.resolve(parts)
	if err != nil || f == nil {
		return nil, err
	}
	w := &treeWalker{store: s, request: request, filter: filter, clause: mimeTypeClause(filter)}
	return w.walk(f, joinPath(parts), request.Depth)
}

type treeWalker struct {
	store   *Store
	request repository.TreeRequest
	filter  repository.NameFilter
	clause  string
}

func (w *treeWalker) walk(f *drive.File, p string, depth int) (*repository.Tree, error) {
	node := &repository.Tree{File: newFile(f, p)}
	if !isFolder(f) || depth == 0 {
		return node, nil
	}

	files, err := findAllIn(w.store.service, f.Id, w.clause)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(files, func(a, b *drive.File) int {
		return strings.Compare(a.Name, b.Name)
	})

	node.Children = []*repository.Tree{}
	for _, child := range files {
		if strings.HasPrefix(child.Name, ".") && !w.request.ShowHidden {
			continue
		}
		if !w.filter.Match(child.Name, isFolder(child)) {
			continue
		}
		next := depth - 1
		if depth < 0 {
			next = depth
		}
		sub, err := w.walk(child, path.Join(p, child.Name), next)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, sub)
	}
	return node, nil
}
