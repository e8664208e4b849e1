package genericfile_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	genericfile "github.com/Jumpaku/go-genericfile"
)

type stubProvider struct {
	typ     string
	root    string
	treeErr error
	created []string
}

var _ genericfile.Provider = (*stubProvider)(nil)

func (p *stubProvider) Name() string { return strings.ToUpper(p.typ) }

func (p *stubProvider) Type() string { return p.typ }

func (p *stubProvider) Owns(path genericfile.Path) bool { return path.FirstSegment() == p.root }

func (p *stubProvider) FolderExists(path genericfile.Path) (bool, error) {
	return path.IsRoot(), nil
}

func (p *stubProvider) ContentWrapper(path genericfile.Path) (*genericfile.ContentWrapper, error) {
	return &genericfile.ContentWrapper{
		Reader:   io.NopCloser(strings.NewReader(p.typ)),
		FileName: path.Name(),
		MimeType: "text/plain",
	}, nil
}

func (p *stubProvider) Tree(options genericfile.TreeOptions) (*genericfile.Tree, error) {
	if p.treeErr != nil {
		return nil, p.treeErr
	}
	return genericfile.NewTree(&genericfile.File{Kind: genericfile.KindFolder, Provider: p.typ, Path: p.root}), nil
}

func (p *stubProvider) CreateFolder(path genericfile.Path) (bool, error) {
	p.created = append(p.created, path.String())
	return true, nil
}

func (p *stubProvider) HasAccess(path genericfile.Path, permissions genericfile.PermissionSet) (bool, error) {
	return permissions.Has(genericfile.PermissionRead), nil
}

func TestRegistry_OwnerRoutesToFirstOwner(t *testing.T) {
	repo := &stubProvider{typ: "repository", root: "/"}
	shadow := &stubProvider{typ: "shadow", root: "/"}
	vfs := &stubProvider{typ: "vfs", root: "pvfs://"}
	r := genericfile.NewRegistry(repo, shadow, vfs)

	cases := []struct {
		path string
		want string
	}{
		{"/public", "repository"},
		{"pvfs://conn/x", "vfs"},
	}
	for _, c := range cases {
		p, err := r.Owner(genericfile.MustParsePath(c.path))
		if err != nil {
			t.Fatalf("Owner(%q) error = %v", c.path, err)
		}
		if p.Type() != c.want {
			t.Fatalf("Owner(%q) = %s, want %s", c.path, p.Type(), c.want)
		}
	}

	if _, err := r.Owner(genericfile.MustParsePath("s3://bucket")); !errors.Is(err, genericfile.ErrNotFound) {
		t.Fatalf("Owner(s3://bucket) error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_ProviderOf(t *testing.T) {
	r := genericfile.NewRegistry(&stubProvider{typ: "repository", root: "/"})
	if p, ok := r.ProviderOf("repository"); !ok || p.Type() != "repository" {
		t.Fatalf("ProviderOf(repository) = %v, %v", p, ok)
	}
	if _, ok := r.ProviderOf("vfs"); ok {
		t.Fatalf("ProviderOf(vfs) found = true, want false")
	}
}

func TestRegistry_RoutedOperations(t *testing.T) {
	repo := &stubProvider{typ: "repository", root: "/"}
	r := genericfile.NewRegistry(repo)
	unowned := genericfile.MustParsePath("pvfs://conn")

	if ok, err := r.FolderExists(genericfile.MustParsePath("/")); err != nil || !ok {
		t.Fatalf("FolderExists(/) = %v, %v", ok, err)
	}
	if ok, err := r.FolderExists(unowned); err != nil || ok {
		t.Fatalf("FolderExists(unowned) = %v, %v, want false, nil", ok, err)
	}

	read := genericfile.Permissions(genericfile.PermissionRead)
	if ok, err := r.HasAccess(genericfile.MustParsePath("/a"), read); err != nil || !ok {
		t.Fatalf("HasAccess(/a) = %v, %v", ok, err)
	}
	if ok, err := r.HasAccess(unowned, read); err != nil || ok {
		t.Fatalf("HasAccess(unowned) = %v, %v, want false, nil", ok, err)
	}

	if created, err := r.CreateFolder(genericfile.MustParsePath("/a/b")); err != nil || !created {
		t.Fatalf("CreateFolder(/a/b) = %v, %v", created, err)
	}
	if len(repo.created) != 1 || repo.created[0] != "/a/b" {
		t.Fatalf("created = %v", repo.created)
	}
	if _, err := r.CreateFolder(unowned); !errors.Is(err, genericfile.ErrNotFound) {
		t.Fatalf("CreateFolder(unowned) error = %v, want ErrNotFound", err)
	}

	content, err := r.ContentWrapper(genericfile.MustParsePath("/a/b.txt"))
	if err != nil {
		t.Fatalf("ContentWrapper() error = %v", err)
	}
	defer content.Close()
	data, err := io.ReadAll(content)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "repository" || content.FileName != "b.txt" {
		t.Fatalf("ContentWrapper() = %q, %q", data, content.FileName)
	}
	if _, err := r.ContentWrapper(unowned); !errors.Is(err, genericfile.ErrNotFound) {
		t.Fatalf("ContentWrapper(unowned) error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_Tree(t *testing.T) {
	repo := &stubProvider{typ: "repository", root: "/"}
	vfs := &stubProvider{typ: "vfs", root: "pvfs://"}

	t.Run("empty registry", func(t *testing.T) {
		if _, err := genericfile.NewRegistry().Tree(genericfile.NewTreeOptions()); !errors.Is(err, genericfile.ErrNotFound) {
			t.Fatalf("Tree() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("single provider answers directly", func(t *testing.T) {
		tree, err := genericfile.NewRegistry(repo).Tree(genericfile.NewTreeOptions())
		if err != nil {
			t.Fatalf("Tree() error = %v", err)
		}
		if tree.File.Provider != "repository" {
			t.Fatalf("Tree().File.Provider = %q, want repository", tree.File.Provider)
		}
	})

	t.Run("several providers are joined", func(t *testing.T) {
		tree, err := genericfile.NewRegistry(repo, vfs).Tree(genericfile.NewTreeOptions())
		if err != nil {
			t.Fatalf("Tree() error = %v", err)
		}
		if len(tree.Children) != 2 {
			t.Fatalf("len(Children) = %d, want 2", len(tree.Children))
		}
		if tree.File.CanAddChildren || tree.File.CanEdit || tree.File.CanDelete {
			t.Fatalf("synthetic root is mutable: %+v", tree.File)
		}
		if tree.Children[0].File.Provider != "repository" || tree.Children[1].File.Provider != "vfs" {
			t.Fatalf("children out of routing order")
		}
	})

	t.Run("base path routes to owner", func(t *testing.T) {
		opts := genericfile.NewTreeOptions().WithBasePath(genericfile.MustParsePath("pvfs://conn"))
		tree, err := genericfile.NewRegistry(repo, vfs).Tree(opts)
		if err != nil {
			t.Fatalf("Tree() error = %v", err)
		}
		if tree.File.Provider != "vfs" {
			t.Fatalf("Tree().File.Provider = %q, want vfs", tree.File.Provider)
		}
	})

	t.Run("failure yields no partial tree", func(t *testing.T) {
		broken := &stubProvider{typ: "broken", root: "broken://", treeErr: genericfile.ErrOperationFailed}
		tree, err := genericfile.NewRegistry(repo, broken).Tree(genericfile.NewTreeOptions())
		if !errors.Is(err, genericfile.ErrOperationFailed) {
			t.Fatalf("Tree() error = %v, want ErrOperationFailed", err)
		}
		if tree != nil {
			t.Fatalf("Tree() = %v, want nil", tree)
		}
	})
}
