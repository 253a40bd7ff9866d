package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	// Path is the full path on the backend
	Path string
	// RelativePath is the slash-separated path relative to the root
	RelativePath string
	// Name is the base name
	Name string
	// Size in bytes
	Size int64
	// ModTime is the last modification time
	ModTime time.Time
	// IsDir indicates a directory
	IsDir bool
}

// Backend is the directory-listing and file-reading capability the
// comparison engine runs against. It is read-only: the engine never
// copies or deletes anything. Implementations include the local
// filesystem and an in-memory tree for deterministic tests.
type Backend interface {
	// Root returns the absolute root path of the backend
	Root() string

	// ListDir returns the immediate entries of one directory, given as a
	// path relative to the root ("" for the root itself). Entries come
	// back in directory-listing order; the caller owns recursion.
	ListDir(ctx context.Context, relPath string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, relPath string) (io.ReadCloser, error)

	// Stat returns metadata for one entry
	Stat(ctx context.Context, relPath string) (*FileInfo, error)

	// Exists checks if an entry exists
	Exists(ctx context.Context, relPath string) (bool, error)

	// Close releases any resources held by the backend
	Close() error
}
