// Package filter applies include/exclude glob patterns to relative
// paths before they enter the comparison pipeline.
package filter

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/mdewilde/treecomp/pkg/models"
)

// PathFilter holds the compiled include and exclude patterns for one
// run. Patterns are compiled once; a malformed pattern is a
// configuration error, not a runtime one.
type PathFilter struct {
	includes []glob.Glob
	excludes []glob.Glob
}

// New compiles the configured patterns. Patterns are matched against
// slash-separated relative paths; patterns without a separator also
// match against the base name alone, so "*.log" skips logs at any depth.
func New(includes, excludes []string) (*PathFilter, error) {
	inc, err := compile(includes)
	if err != nil {
		return nil, &models.ConfigurationError{Field: "include", Message: err.Error()}
	}
	exc, err := compile(excludes)
	if err != nil {
		return nil, &models.ConfigurationError{Field: "exclude", Message: err.Error()}
	}
	return &PathFilter{includes: inc, excludes: exc}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("malformed pattern %q: %v", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Admit reports whether a relative path participates in the comparison
// at all. An excluded entry is invisible to the rest of the pipeline.
// Include patterns constrain files only; directories always descend so
// that a file-oriented include like "*.go" does not prune every subtree.
func (f *PathFilter) Admit(relPath string, isDir bool) bool {
	rel := filepath.ToSlash(relPath)
	base := path.Base(rel)

	for _, g := range f.excludes {
		if g.Match(rel) || g.Match(base) {
			return false
		}
	}

	if isDir || len(f.includes) == 0 {
		return true
	}

	for _, g := range f.includes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}
