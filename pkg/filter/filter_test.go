package filter

import (
	"testing"

	"github.com/mdewilde/treecomp/pkg/models"
)

func TestExcludePatterns(t *testing.T) {
	tests := []struct {
		name     string
		excludes []string
		path     string
		isDir    bool
		want     bool
	}{
		{"NoPatterns", nil, "src/main.go", false, true},
		{"BasenameGlob", []string{"*.log"}, "app.log", false, false},
		{"BasenameGlobAtDepth", []string{"*.log"}, "logs/app.log", false, false},
		{"NonMatching", []string{"*.log"}, "app.txt", false, true},
		{"DirectoryExcluded", []string{"node_modules"}, "node_modules", true, false},
		{"FullPathPattern", []string{"build/*"}, "build/out.bin", false, false},
		{"FullPathPatternMiss", []string{"build/*"}, "src/out.bin", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(nil, tt.excludes)
			if err != nil {
				t.Fatalf("failed to build filter: %v", err)
			}
			if got := f.Admit(tt.path, tt.isDir); got != tt.want {
				t.Errorf("Admit(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestIncludePatterns(t *testing.T) {
	f, err := New([]string{"*.go"}, nil)
	if err != nil {
		t.Fatalf("failed to build filter: %v", err)
	}

	if !f.Admit("main.go", false) {
		t.Error("included file should be admitted")
	}
	if f.Admit("main.txt", false) {
		t.Error("non-included file should not be admitted")
	}
	// Directories descend regardless of file-oriented includes
	if !f.Admit("src", true) {
		t.Error("directory should be admitted despite include patterns")
	}
	if !f.Admit("src/util.go", false) {
		t.Error("included file in subdirectory should be admitted")
	}
}

func TestExcludeWinsOverInclude(t *testing.T) {
	f, err := New([]string{"*.go"}, []string{"main.go"})
	if err != nil {
		t.Fatalf("failed to build filter: %v", err)
	}

	if f.Admit("main.go", false) {
		t.Error("excluded file should not be admitted even when included")
	}
}

func TestMalformedPatternIsConfigurationError(t *testing.T) {
	_, err := New(nil, []string{"[unclosed"})
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
	if !models.IsConfigurationError(err) {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}

func TestEmptyPatternsIgnored(t *testing.T) {
	f, err := New([]string{""}, []string{""})
	if err != nil {
		t.Fatalf("failed to build filter: %v", err)
	}
	if !f.Admit("anything.txt", false) {
		t.Error("empty patterns should not restrict anything")
	}
}
