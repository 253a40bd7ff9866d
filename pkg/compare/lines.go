package compare

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mdewilde/treecomp/pkg/config"
	"github.com/mdewilde/treecomp/pkg/storage"
)

// LineEquivalencer reads both files as text and compares them line by
// line after applying the configured normalizations, in order: line
// ending, edge trim, whitespace removal, blank-line elimination. After
// normalization, equivalence is exact sequence equality; different
// effective line counts are never equivalent.
type LineEquivalencer struct {
	ignoreLineEnding bool
	trimEdges        bool
	dropAllSpace     bool
	dropEmpty        bool
	readerWrapper    ReaderWrapper
}

// NewLineEquivalencer creates a line-based policy from the compare options
func NewLineEquivalencer(cfg config.CompareConfig) *LineEquivalencer {
	return &LineEquivalencer{
		ignoreLineEnding: cfg.IgnoreLineEnding,
		trimEdges:        cfg.IgnoreWhiteSpaces,
		dropAllSpace:     cfg.IgnoreAllWhiteSpaces,
		dropEmpty:        cfg.IgnoreEmptyLines,
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (e *LineEquivalencer) SetReaderWrapper(wrapper ReaderWrapper) {
	e.readerWrapper = wrapper
}

// Equivalent reports whether both files normalize to the same line sequence
func (e *LineEquivalencer) Equivalent(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (bool, error) {
	leftLines, err := e.readLines(ctx, left, leftPath)
	if err != nil {
		return false, fmt.Errorf("failed to read left file: %w", err)
	}
	rightLines, err := e.readLines(ctx, right, rightPath)
	if err != nil {
		return false, fmt.Errorf("failed to read right file: %w", err)
	}

	if len(leftLines) != len(rightLines) {
		return false, nil
	}
	for i := range leftLines {
		if leftLines[i] != rightLines[i] {
			return false, nil
		}
	}
	return true, nil
}

func (e *LineEquivalencer) readLines(ctx context.Context, backend storage.Backend, relPath string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rc, err := backend.Read(ctx, relPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var reader io.Reader = rc
	if e.readerWrapper != nil {
		reader = e.readerWrapper(rc)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return e.normalize(string(data)), nil
}

// normalize splits text into lines and applies the configured rules in
// their fixed order
func (e *LineEquivalencer) normalize(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		if e.ignoreLineEnding {
			line = strings.TrimSuffix(line, "\r")
		}
		if e.dropAllSpace {
			line = stripSpace(line)
		} else if e.trimEdges {
			line = strings.TrimSpace(line)
		}
		if e.dropEmpty && line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// stripSpace removes every whitespace rune, so any two lines differing
// only in whitespace normalize identically
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Name returns the policy name
func (e *LineEquivalencer) Name() string {
	return "lines"
}
