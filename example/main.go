package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	genericfile "github.com/Jumpaku/go-genericfile"
	"github.com/Jumpaku/go-genericfile/config"
	"github.com/Jumpaku/go-genericfile/logging"
	"github.com/Jumpaku/go-genericfile/metrics"
	"github.com/Jumpaku/go-genericfile/repository"
	"github.com/Jumpaku/go-genericfile/repository/drivestore"
	"github.com/Jumpaku/go-genericfile/repository/gitstore"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newGitStore(cfg *config.Config) (repository.Store, error) {
	var opts []gitstore.Option
	if cfg.ReadOnly {
		opts = append(opts, gitstore.WithReadOnly())
	}
	// Bound so that symlinks in the worktree cannot reach files outside it.
	worktree := osfs.New(cfg.GitPath, osfs.WithBoundOS())
	store, err := gitstore.Open(worktree, opts...)
	if stderrors.Is(err, gogit.ErrRepositoryNotExists) {
		return gitstore.Init(worktree, opts...)
	}
	return store, err
}

func newDriveStore(cfg *config.Config) (repository.Store, error) {
	ctx := context.Background()

	var clientOption option.ClientOption
	if cfg.DriveCredentials != "" {
		data, err := os.ReadFile(cfg.DriveCredentials)
		if err != nil {
			return nil, err
		}
		creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveScope)
		if err != nil {
			return nil, err
		}
		clientOption = option.WithCredentials(creds)
	} else {
		client, err := google.DefaultClient(ctx, drive.DriveScope)
		if err != nil {
			return nil, err
		}
		clientOption = option.WithHTTPClient(client)
	}

	driveService, err := drive.NewService(ctx, clientOption)
	if err != nil {
		return nil, err
	}
	return drivestore.New(driveService, cfg.DriveRootID), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var store repository.Store
	switch cfg.Store {
	case config.StoreDrive:
		store, err = newDriveStore(cfg)
	default:
		store, err = newGitStore(cfg)
	}
	if err != nil {
		logger.Fatal("failed to open store", zap.String("store", cfg.Store), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	provider := metrics.Instrument(repository.New(store,
		repository.WithDisplayName(cfg.DisplayName),
		repository.WithLogger(logger),
	), reg)
	registry := genericfile.NewRegistry(provider)

	// Print the first two levels of the repository
	tree, err := registry.Tree(genericfile.TreeOptions{MaxDepth: 2, Filter: genericfile.FilterAll})
	if err != nil {
		logger.Fatal("failed to get tree", zap.Error(err))
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		logger.Fatal("failed to encode tree", zap.Error(err))
	}

	// Check access to every folder found
	_ = tree.Walk(func(node *genericfile.Tree) error {
		if node.File.Kind != genericfile.KindFolder {
			return nil
		}
		path, err := genericfile.ParsePath(node.File.Path)
		if err != nil {
			return nil
		}
		writable, err := registry.HasAccess(path, genericfile.Permissions(genericfile.PermissionWrite))
		if err != nil {
			logger.Warn("failed to check access", zap.String("path", node.File.Path), zap.Error(err))
			return nil
		}
		fmt.Printf("%s writable=%t\n", node.File.Path, writable)
		return nil
	})

	// Count files reachable through io/fs
	fsys := genericfile.NewFS(registry, genericfile.MustParsePath(repository.RootPath))
	files := 0
	err = fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files++
		}
		return nil
	})
	if err != nil {
		logger.Warn("failed to walk files", zap.Error(err))
	}
	fmt.Printf("%d files\n", files)

	families, err := reg.Gather()
	if err != nil {
		logger.Fatal("failed to gather metrics", zap.Error(err))
	}
	for _, family := range families {
		logger.Info("metric", zap.String("name", family.GetName()), zap.Int("series", len(family.GetMetric())))
	}
}
