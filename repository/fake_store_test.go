package repository_test

import (
	"io"
	"strings"

	"github.com/Jumpaku/go-genericfile/errors"
	"github.com/Jumpaku/go-genericfile/repository"
)

// fakeStore is a scripted Store that records the requests it receives.
type fakeStore struct {
	files   map[string]*repository.File
	content map[string]string
	tree    *repository.Tree

	existing map[string]bool
	grant    bool

	lookupErr error
	openErr   error
	treeErr   error
	createErr error
	accessErr error

	calls        int
	treeRequests []repository.TreeRequest
	created      []string
	accessChecks [][]repository.Permission
}

var _ repository.Store = (*fakeStore)(nil)

func (s *fakeStore) FileByPath(path string) (*repository.File, error) {
	s.calls++
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.files[path], nil
}

func (s *fakeStore) OpenReadStream(file *repository.File) (*repository.ReadStream, error) {
	s.calls++
	if s.openErr != nil {
		return nil, s.openErr
	}
	c, ok := s.content[file.Path]
	if !ok {
		return nil, errors.NewIOError("gone", errors.ErrFileMissing)
	}
	return &repository.ReadStream{ReadCloser: io.NopCloser(strings.NewReader(c)), MimeType: "text/plain"}, nil
}

func (s *fakeStore) Tree(request repository.TreeRequest) (*repository.Tree, error) {
	s.calls++
	s.treeRequests = append(s.treeRequests, request)
	return s.tree, s.treeErr
}

func (s *fakeStore) CreateDirectory(path string) (bool, error) {
	s.calls++
	if s.createErr != nil {
		return false, s.createErr
	}
	s.created = append(s.created, path)
	return !s.existing[path], nil
}

func (s *fakeStore) HasAccess(path string, permissions []repository.Permission) (bool, error) {
	s.calls++
	s.accessChecks = append(s.accessChecks, permissions)
	if s.accessErr != nil {
		return false, s.accessErr
	}
	if _, ok := s.files[path]; !ok {
		return false, nil
	}
	return s.grant, nil
}

// folderStore is a fakeStore that also answers FolderExists.
type folderStore struct {
	*fakeStore
	folderChecks []string
	folderErr    error
}

var _ repository.FolderStore = (*folderStore)(nil)

func (s *folderStore) FolderExists(path string) (bool, error) {
	s.folderChecks = append(s.folderChecks, path)
	if s.folderErr != nil {
		return false, s.folderErr
	}
	f, ok := s.files[path]
	return ok && f.Folder, nil
}
