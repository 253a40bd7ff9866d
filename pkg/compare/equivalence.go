// Package compare decides whether two files' contents are equivalent
// under a normalization policy.
package compare

import (
	"context"
	"io"

	"github.com/mdewilde/treecomp/pkg/config"
	"github.com/mdewilde/treecomp/pkg/storage"
)

// ReaderWrapper wraps file readers, e.g. for bandwidth limiting
type ReaderWrapper func(io.Reader) io.Reader

// Equivalencer is the interface for content-equivalence policies.
// A missing or unreadable file on either side is an error, never a
// true/false classification.
type Equivalencer interface {
	// Equivalent reports whether the two files' contents are equivalent
	// under the policy
	Equivalent(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (bool, error)

	// Name returns the policy name
	Name() string
}

// ForConfig selects the equivalence policy implied by the compare
// options: raw byte equality unless a normalization flag engages
// line-based comparison.
func ForConfig(cfg config.CompareConfig, bufferSize int) Equivalencer {
	if cfg.IgnoreLineEnding || cfg.IgnoreWhiteSpaces || cfg.IgnoreAllWhiteSpaces || cfg.IgnoreEmptyLines {
		return NewLineEquivalencer(cfg)
	}
	return NewBinaryEquivalencer(bufferSize)
}
