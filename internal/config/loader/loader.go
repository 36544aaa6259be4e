// Package loader reads dotkit configuration from TOML files and
// DOTKIT_-prefixed environment variables into nested maps that the
// config package merges and queries.
package loader

import (
	"io"
	"io/fs"
	"os"
)

// Loader reads configuration from a source into a nested map.
type Loader interface {
	// Load returns the configuration map. A source that does not exist
	// yields nil, nil; missing configuration is not an error.
	Load() (map[string]any, error)
}

// FileLoader is a Loader bound to a path that can also read an
// alternate path.
type FileLoader interface {
	Loader
	LoadFrom(path string) (map[string]any, error)
}

// ReaderLoader reads configuration from a stream.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem abstracts the file operations loaders perform, so tests
// can substitute an in-memory tree.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS is the FileSystem backed by the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS-backed file system.
func DefaultFS() FileSystem {
	return OSFS{}
}
