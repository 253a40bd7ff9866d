package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"sync/atomic"
	"time"
)

// Memory is an in-memory backend used for deterministic tests. Files
// are registered up front with AddFile/AddDir; listing order is the
// sorted insertion set, stable across runs. Operation counters let
// tests assert that no I/O happened at all.
type Memory struct {
	root    string
	files   map[string][]byte
	dirs    map[string]bool
	modTime time.Time

	// ListCalls and ReadCalls count backend operations
	ListCalls atomic.Int64
	ReadCalls atomic.Int64
}

// NewMemory creates an empty in-memory backend with the given root path
func NewMemory(root string) *Memory {
	return &Memory{
		root:    root,
		files:   make(map[string][]byte),
		dirs:    map[string]bool{"": true},
		modTime: time.Now(),
	}
}

// AddFile registers a file, creating parent directories implicitly.
// Paths are slash-separated and relative to the root.
func (m *Memory) AddFile(relPath string, content []byte) {
	m.files[relPath] = content
	m.addParents(relPath)
}

// AddDir registers an empty directory
func (m *Memory) AddDir(relPath string) {
	m.dirs[relPath] = true
	m.addParents(relPath)
}

func (m *Memory) addParents(relPath string) {
	for dir := path.Dir(relPath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

// Root returns the configured root path
func (m *Memory) Root() string {
	return m.root
}

// ListDir returns the immediate entries of one directory in sorted order
func (m *Memory) ListDir(ctx context.Context, relPath string) ([]FileInfo, error) {
	m.ListCalls.Add(1)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !m.dirs[relPath] {
		return nil, fmt.Errorf("failed to list directory %s: %w", relPath, fs.ErrNotExist)
	}

	var entries []FileInfo
	for p, content := range m.files {
		if path.Dir(p) == dirKey(relPath) {
			entries = append(entries, FileInfo{
				Path:         path.Join(m.root, p),
				RelativePath: p,
				Name:         path.Base(p),
				Size:         int64(len(content)),
				ModTime:      m.modTime,
				IsDir:        false,
			})
		}
	}
	for d := range m.dirs {
		if d != "" && path.Dir(d) == dirKey(relPath) {
			entries = append(entries, FileInfo{
				Path:         path.Join(m.root, d),
				RelativePath: d,
				Name:         path.Base(d),
				ModTime:      m.modTime,
				IsDir:        true,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// dirKey maps the root ("") to path.Dir's spelling of it (".")
func dirKey(relPath string) string {
	if relPath == "" {
		return "."
	}
	return relPath
}

// Read opens a registered file for reading
func (m *Memory) Read(ctx context.Context, relPath string) (io.ReadCloser, error) {
	m.ReadCalls.Add(1)

	content, ok := m.files[relPath]
	if !ok {
		return nil, fmt.Errorf("failed to open file %s: %w", relPath, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Stat returns metadata for one entry
func (m *Memory) Stat(ctx context.Context, relPath string) (*FileInfo, error) {
	if content, ok := m.files[relPath]; ok {
		return &FileInfo{
			Path:         path.Join(m.root, relPath),
			RelativePath: relPath,
			Name:         path.Base(relPath),
			Size:         int64(len(content)),
			ModTime:      m.modTime,
		}, nil
	}
	if m.dirs[relPath] {
		return &FileInfo{
			Path:         path.Join(m.root, relPath),
			RelativePath: relPath,
			Name:         path.Base(relPath),
			ModTime:      m.modTime,
			IsDir:        true,
		}, nil
	}
	return nil, fmt.Errorf("failed to stat %s: %w", relPath, fs.ErrNotExist)
}

// Exists checks if an entry is registered
func (m *Memory) Exists(ctx context.Context, relPath string) (bool, error) {
	if _, ok := m.files[relPath]; ok {
		return true, nil
	}
	return m.dirs[relPath], nil
}

// Close releases resources (no-op)
func (m *Memory) Close() error {
	return nil
}
