package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func localRoot(t *testing.T) (string, *Local) {
	t.Helper()

	root := t.TempDir()
	backend, err := NewLocal(root)
	if err != nil {
		t.Fatalf("failed to create local backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return root, backend
}

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestNewLocalValidation(t *testing.T) {
	if _, err := NewLocal(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for nonexistent root")
	}

	root := t.TempDir()
	writeFile(t, root, "file.txt", "x")
	if _, err := NewLocal(filepath.Join(root, "file.txt")); err == nil {
		t.Error("expected error for a file root")
	}
}

func TestLocalListDir(t *testing.T) {
	root, backend := localRoot(t)
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "sub/b.txt", "b")

	entries, err := backend.ListDir(context.Background(), "")
	if err != nil {
		t.Fatalf("ListDir returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	byName := make(map[string]FileInfo)
	for _, e := range entries {
		byName[e.Name] = e
	}
	if fi, ok := byName["a.txt"]; !ok || fi.IsDir || fi.Size != 1 {
		t.Errorf("a.txt entry wrong: %+v", fi)
	}
	if fi, ok := byName["sub"]; !ok || !fi.IsDir {
		t.Errorf("sub entry wrong: %+v", fi)
	}

	sub, err := backend.ListDir(context.Background(), "sub")
	if err != nil {
		t.Fatalf("ListDir(sub) returned error: %v", err)
	}
	if len(sub) != 1 || sub[0].RelativePath != "sub/b.txt" {
		t.Errorf("sub entries = %+v, want sub/b.txt with slash-relative path", sub)
	}
}

func TestLocalRead(t *testing.T) {
	root, backend := localRoot(t)
	writeFile(t, root, "data.txt", "file content")

	rc, err := backend.Read(context.Background(), "data.txt")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read content: %v", err)
	}
	if string(data) != "file content" {
		t.Errorf("content = %q, want %q", data, "file content")
	}
}

func TestLocalStatAndExists(t *testing.T) {
	root, backend := localRoot(t)
	writeFile(t, root, "f.txt", "12345")

	fi, err := backend.Stat(context.Background(), "f.txt")
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if fi.Size != 5 || fi.IsDir {
		t.Errorf("got size=%d isDir=%v, want size=5 isDir=false", fi.Size, fi.IsDir)
	}

	exists, err := backend.Exists(context.Background(), "f.txt")
	if err != nil || !exists {
		t.Errorf("Exists(f.txt) = %v, %v, want true, nil", exists, err)
	}
	exists, err = backend.Exists(context.Background(), "ghost.txt")
	if err != nil || exists {
		t.Errorf("Exists(ghost.txt) = %v, %v, want false, nil", exists, err)
	}
}

func TestLocalCancelledContext(t *testing.T) {
	_, backend := localRoot(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := backend.ListDir(ctx, ""); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
