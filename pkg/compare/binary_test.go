package compare

import (
	"bytes"
	"context"
	"testing"

	"github.com/mdewilde/treecomp/pkg/storage"
)

func memPair(t *testing.T) (*storage.Memory, *storage.Memory) {
	t.Helper()
	return storage.NewMemory("/left"), storage.NewMemory("/right")
}

func TestBinaryEquivalent(t *testing.T) {
	tests := []struct {
		name  string
		left  []byte
		right []byte
		want  bool
	}{
		{"Identical", []byte("hello world\n"), []byte("hello world\n"), true},
		{"Empty", []byte{}, []byte{}, true},
		{"DifferentContent", []byte("hello"), []byte("world"), false},
		{"DifferentSize", []byte("hello"), []byte("hello!"), false},
		{"LineEndingsDiffer", []byte("a\nb\n"), []byte("a\r\nb\r\n"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := memPair(t)
			left.AddFile("f.txt", tt.left)
			right.AddFile("f.txt", tt.right)

			e := NewBinaryEquivalencer(4096)
			got, err := e.Equivalent(context.Background(), left, right, "f.txt", "f.txt")
			if err != nil {
				t.Fatalf("Equivalent returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Equivalent = %v, want %v", got, tt.want)
			}
		})
	}
}

// Files larger than the read buffer must still compare correctly
func TestBinaryLargeFile(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 4096) // 64KB

	left, right := memPair(t)
	left.AddFile("big.bin", content)

	altered := append([]byte(nil), content...)
	altered[len(altered)-1] ^= 0xff
	right.AddFile("big.bin", altered)

	e := NewBinaryEquivalencer(4096)
	got, err := e.Equivalent(context.Background(), left, right, "big.bin", "big.bin")
	if err != nil {
		t.Fatalf("Equivalent returned error: %v", err)
	}
	if got {
		t.Error("files differing in the last byte reported equivalent")
	}

	right2 := storage.NewMemory("/right")
	right2.AddFile("big.bin", append([]byte(nil), content...))
	got, err = e.Equivalent(context.Background(), left, right2, "big.bin", "big.bin")
	if err != nil {
		t.Fatalf("Equivalent returned error: %v", err)
	}
	if !got {
		t.Error("identical large files reported different")
	}
}

func TestBinaryMissingFileIsError(t *testing.T) {
	left, right := memPair(t)
	left.AddFile("f.txt", []byte("data"))

	e := NewBinaryEquivalencer(4096)
	if _, err := e.Equivalent(context.Background(), left, right, "f.txt", "f.txt"); err == nil {
		t.Fatal("expected error for missing right-side file")
	}
}

func TestBinaryCancelledContext(t *testing.T) {
	left, right := memPair(t)
	left.AddFile("f.txt", []byte("data"))
	right.AddFile("f.txt", []byte("data"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewBinaryEquivalencer(4096)
	if _, err := e.Equivalent(ctx, left, right, "f.txt", "f.txt"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
