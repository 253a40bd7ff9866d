package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Local is a filesystem-backed storage backend rooted at one directory
type Local struct {
	rootPath string
}

// NewLocal creates a local backend. The path must exist and be a
// directory; it is resolved to an absolute path up front.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// ListDir returns the immediate entries of one directory
func (l *Local) ListDir(ctx context.Context, relPath string) ([]FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(relPath))

	dirEntries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	entries := make([]FileInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat entry %s: %w", de.Name(), err)
		}

		entries = append(entries, FileInfo{
			Path:         filepath.Join(fullPath, de.Name()),
			RelativePath: path.Join(relPath, de.Name()),
			Name:         de.Name(),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			IsDir:        info.IsDir(),
		})
	}

	return entries, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, relPath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(relPath))

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Stat returns metadata for one entry
func (l *Local) Stat(ctx context.Context, relPath string) (*FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(relPath))

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:         fullPath,
		RelativePath: filepath.ToSlash(relPath),
		Name:         info.Name(),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		IsDir:        info.IsDir(),
	}, nil
}

// Exists checks if an entry exists
func (l *Local) Exists(ctx context.Context, relPath string) (bool, error) {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(relPath))

	_, err := os.Stat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Close releases resources (no-op for the local filesystem)
func (l *Local) Close() error {
	return nil
}
