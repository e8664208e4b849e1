// Package config loads the configuration of the example program from environment variables
// and optional .env files.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Stores selectable with GENERICFILE_STORE.
const (
	StoreGit   = "git"
	StoreDrive = "drive"
)

// Config holds the configuration of a repository provider and its logger.
type Config struct {
	// Store
	Store            string
	GitPath          string
	DriveRootID      string
	DriveCredentials string

	// Provider
	DisplayName string
	ReadOnly    bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the given .env files, ".env" if none are given, then environment variables with
// defaults. Missing .env files are skipped and variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Store:            envOr("GENERICFILE_STORE", StoreGit),
		GitPath:          envOr("GENERICFILE_GIT_PATH", "."),
		DriveRootID:      envOr("GENERICFILE_DRIVE_ROOT_ID", ""),
		DriveCredentials: envOr("GENERICFILE_DRIVE_CREDENTIALS", ""),
		DisplayName:      envOr("GENERICFILE_DISPLAY_NAME", "Repository"),
		ReadOnly:         envBool("GENERICFILE_READ_ONLY", false),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		LogFormat:        envOr("LOG_FORMAT", "json"),
	}

	switch cfg.Store {
	case StoreGit:
	case StoreDrive:
		if cfg.DriveRootID == "" {
			return nil, fmt.Errorf("GENERICFILE_DRIVE_ROOT_ID is required for the %s store", StoreDrive)
		}
	default:
		return nil, fmt.Errorf("unknown GENERICFILE_STORE %q", cfg.Store)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
