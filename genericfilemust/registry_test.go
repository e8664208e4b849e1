package genericfilemust_test

import (
	"errors"
	"io"
	"testing"

	genericfile "github.com/Jumpaku/go-genericfile"
	"github.com/Jumpaku/go-genericfile/genericfilemust"
	"github.com/Jumpaku/go-genericfile/repository"
	"github.com/Jumpaku/go-genericfile/repository/gitstore"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func newRegistry(t *testing.T) *genericfilemust.Registry {
	t.Helper()
	store, err := gitstore.Init(memfs.New())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := util.WriteFile(store.Filesystem(), "public/reports/q1.prpt", []byte("report body"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return genericfilemust.New(repository.New(store))
}

func mustPanicWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want %v", r, target)
		}
	}()
	f()
}

func TestRegistry(t *testing.T) {
	r := newRegistry(t)
	reports := genericfile.MustParsePath("/public/reports")

	if got := r.Owner(reports).Type(); got != repository.Type {
		t.Fatalf("Owner().Type() = %q, want %q", got, repository.Type)
	}
	if !r.FolderExists(reports) {
		t.Fatalf("FolderExists(%q) = false, want true", reports)
	}
	if !r.CreateFolder(genericfile.MustParsePath("/public/2025")) {
		t.Fatalf("CreateFolder() = false, want true")
	}
	if !r.HasAccess(reports, genericfile.Permissions(genericfile.PermissionRead)) {
		t.Fatalf("HasAccess() = false, want true")
	}

	tree := r.Tree(genericfile.NewTreeOptions().WithBasePath(reports))
	if tree.Find("/public/reports/q1.prpt") == nil {
		t.Fatalf("Tree() has no q1.prpt")
	}

	content := r.ContentWrapper(genericfile.MustParsePath("/public/reports/q1.prpt"))
	defer content.Close()
	data, err := io.ReadAll(content)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "report body" {
		t.Fatalf("content = %q, want %q", data, "report body")
	}
}

func TestRegistry_Panics(t *testing.T) {
	r := newRegistry(t)

	mustPanicWith(t, genericfile.ErrNotFound, func() {
		r.Owner(genericfile.MustParsePath("pvfs://conn"))
	})
	mustPanicWith(t, genericfile.ErrNotFound, func() {
		r.ContentWrapper(genericfile.MustParsePath("/missing.txt"))
	})
	mustPanicWith(t, genericfile.ErrOperationFailed, func() {
		r.ContentWrapper(genericfile.MustParsePath("/public"))
	})
	mustPanicWith(t, genericfile.ErrInvalidPath, func() {
		r.CreateFolder(genericfile.MustParsePath("/public/a|b"))
	})
	mustPanicWith(t, genericfile.ErrNotFound, func() {
		genericfilemust.New().Tree(genericfile.NewTreeOptions())
	})
}

func TestRegistry_Unwrap(t *testing.T) {
	registry := genericfile.NewRegistry()
	r := genericfilemust.Wrap(registry)
	if r.Unwrap() != registry {
		t.Fatalf("Unwrap() did not return the wrapped registry")
	}
	r.Register(repository.New(nil))
	if got := len(registry.Providers()); got != 1 {
		t.Fatalf("len(Providers()) = %d, want 1", got)
	}
}
