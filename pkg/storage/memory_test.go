package storage

import (
	"context"
	"io"
	"testing"
)

func TestMemoryListDir(t *testing.T) {
	m := NewMemory("/mem")
	m.AddFile("b.txt", []byte("b"))
	m.AddFile("a.txt", []byte("a"))
	m.AddFile("sub/c.txt", []byte("c"))
	m.AddDir("empty")

	entries, err := m.ListDir(context.Background(), "")
	if err != nil {
		t.Fatalf("ListDir returned error: %v", err)
	}

	wantNames := []string{"a.txt", "b.txt", "empty", "sub"}
	if len(entries) != len(wantNames) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantNames))
	}
	for i, want := range wantNames {
		if entries[i].Name != want {
			t.Errorf("entry[%d] = %s, want %s (sorted order)", i, entries[i].Name, want)
		}
	}

	sub, err := m.ListDir(context.Background(), "sub")
	if err != nil {
		t.Fatalf("ListDir(sub) returned error: %v", err)
	}
	if len(sub) != 1 || sub[0].RelativePath != "sub/c.txt" {
		t.Errorf("sub entries = %+v, want sub/c.txt", sub)
	}
}

func TestMemoryListMissingDir(t *testing.T) {
	m := NewMemory("/mem")
	if _, err := m.ListDir(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown directory")
	}
}

func TestMemoryRead(t *testing.T) {
	m := NewMemory("/mem")
	m.AddFile("f.txt", []byte("payload"))

	rc, err := m.Read(context.Background(), "f.txt")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read content: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}

	if _, err := m.Read(context.Background(), "absent.txt"); err == nil {
		t.Fatal("expected error for unknown file")
	}
}

func TestMemoryStat(t *testing.T) {
	m := NewMemory("/mem")
	m.AddFile("dir/f.txt", []byte("12345"))

	fi, err := m.Stat(context.Background(), "dir/f.txt")
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if fi.Size != 5 || fi.IsDir {
		t.Errorf("got size=%d isDir=%v, want size=5 isDir=false", fi.Size, fi.IsDir)
	}

	di, err := m.Stat(context.Background(), "dir")
	if err != nil {
		t.Fatalf("Stat(dir) returned error: %v", err)
	}
	if !di.IsDir {
		t.Error("implicit parent should stat as a directory")
	}

	if _, err := m.Stat(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unknown path")
	}
}

func TestMemoryCounters(t *testing.T) {
	m := NewMemory("/mem")
	m.AddFile("f.txt", []byte("x"))

	if m.ListCalls.Load() != 0 || m.ReadCalls.Load() != 0 {
		t.Fatal("counters should start at zero")
	}

	m.ListDir(context.Background(), "")
	m.ListDir(context.Background(), "")
	rc, _ := m.Read(context.Background(), "f.txt")
	rc.Close()

	if got := m.ListCalls.Load(); got != 2 {
		t.Errorf("list calls = %d, want 2", got)
	}
	if got := m.ReadCalls.Load(); got != 1 {
		t.Errorf("read calls = %d, want 1", got)
	}
}
