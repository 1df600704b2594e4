package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the storyshelf home directory.
	DefaultDirName = ".storyshelf"

	// KVFileName is the SQLite file holding overview documents.
	KVFileName = "kv.db"

	// BlobsDirName is the subdirectory holding story content objects.
	BlobsDirName = "blobs"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the storyshelf home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.storyshelf).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// KVPath returns override if set, otherwise the default SQLite file.
func (d *Dir) KVPath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(d.path, KVFileName)
}

// BlobsPath returns override if set, otherwise the default blob directory.
func (d *Dir) BlobsPath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(d.path, BlobsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	// Create blobs directory (this also creates the parent)
	if err := os.MkdirAll(d.BlobsPath(""), 0o755); err != nil {
		return fmt.Errorf("failed to create blobs directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
