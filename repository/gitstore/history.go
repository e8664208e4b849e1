package gitstore

import (
	stderrors "errors"
	"strings"

	"github.com/Jumpaku/go-genericfile/repository"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// snapshot is the state of HEAD at the start of a store operation.
// head and tree are nil while the repository has no commits.
type snapshot struct {
	repo *gogit.Repository
	head *object.Commit
	tree *object.Tree
	// logWalks counts the history walks made through this snapshot.
	logWalks int
}

func (s *Store) snapshot() (*snapshot, error) {
	ref, err := s.repo.Head()
	if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
		return &snapshot{repo: s.repo}, nil
	}
	if err != nil {
		return nil, wrapError(err, "failed to resolve HEAD")
	}
	head, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, wrapError(err, "failed to get HEAD commit")
	}
	tree, err := head.Tree()
	if err != nil {
		return nil, wrapError(err, "failed to get HEAD tree")
	}
	return &snapshot{repo: s.repo, head: head, tree: tree}, nil
}

// objectID returns the hash of the entry at rel in HEAD, or "" if rel is not tracked.
func (snap *snapshot) objectID(rel string) string {
	if snap.tree == nil {
		return ""
	}
	entry, err := snap.tree.FindEntry(rel)
	if err != nil {
		return ""
	}
	return entry.Hash.String()
}

// resolveLastModified sets LastModified on every file from a single walk of the log from HEAD.
// A file's time is that of the latest commit changing its path or anything below it, and zero if
// no commit did. The walk stops as soon as every file is resolved.
func (snap *snapshot) resolveLastModified(files ...*repository.File) error {
	if snap.head == nil || len(files) == 0 {
		return nil
	}
	pending := map[string][]*repository.File{}
	for _, f := range files {
		rel := strings.TrimPrefix(f.Path, "/")
		pending[rel] = append(pending[rel], f)
	}

	snap.logWalks++
	iter, err := snap.repo.Log(&gogit.LogOptions{From: snap.head.Hash})
	if err != nil {
		return wrapError(err, "failed to read history")
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		changed, err := changedPaths(c)
		if err != nil {
			return err
		}
		for _, p := range changed {
			for rel := p; ; rel = parentRel(rel) {
				for _, f := range pending[rel] {
					f.LastModified = c.Committer.When
				}
				delete(pending, rel)
				if rel == "" {
					break
				}
			}
		}
		if len(pending) == 0 {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return wrapError(err, "failed to read history")
	}
	return nil
}

// changedPaths returns the paths of the blobs that c changed relative to its first parent.
func changedPaths(c *object.Commit) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}
	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(changes))
	for _, ch := range changes {
		if ch.From.Name != "" {
			paths = append(paths, ch.From.Name)
		}
		if ch.To.Name != "" && ch.To.Name != ch.From.Name {
			paths = append(paths, ch.To.Name)
		}
	}
	return paths, nil
}

func parentRel(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}
