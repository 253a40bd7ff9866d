// Package walk enumerates two directory trees in lock-step and produces
// the raw candidate pairs the classifier consumes.
package walk

import (
	"context"
	"fmt"

	"github.com/mdewilde/treecomp/pkg/filter"
	"github.com/mdewilde/treecomp/pkg/match"
	"github.com/mdewilde/treecomp/pkg/models"
	"github.com/mdewilde/treecomp/pkg/storage"
)

// Walker pairs the entries of two trees level by level. At each
// directory both sides are listed independently, filtered, then paired
// per kind with the name matcher: for each left entry the first
// matching right entry in listing order wins (first-match, not
// best-match). Matched directory pairs recurse; one-sided directories
// are reported as single units without enumerating their subtree.
type Walker struct {
	left    storage.Backend
	right   storage.Backend
	matcher *match.Matcher
	filter  *filter.PathFilter
}

// New creates a walker over two backends
func New(left, right storage.Backend, matcher *match.Matcher, pathFilter *filter.PathFilter) *Walker {
	return &Walker{
		left:    left,
		right:   right,
		matcher: matcher,
		filter:  pathFilter,
	}
}

// Walk traverses both trees depth-first from the roots and returns all
// candidate pairs in traversal order. The walk checks for cancellation
// at every directory boundary.
func (w *Walker) Walk(ctx context.Context) ([]models.CandidatePair, error) {
	var pairs []models.CandidatePair
	if err := w.walkDir(ctx, "", "", &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (w *Walker) walkDir(ctx context.Context, leftRel, rightRel string, out *[]models.CandidatePair) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	leftEntries, err := w.list(ctx, w.left, leftRel)
	if err != nil {
		return fmt.Errorf("failed to enumerate left side of %q: %w", leftRel, err)
	}
	rightEntries, err := w.list(ctx, w.right, rightRel)
	if err != nil {
		return fmt.Errorf("failed to enumerate right side of %q: %w", rightRel, err)
	}

	used := make([]bool, len(rightEntries))

	for i := range leftEntries {
		le := &leftEntries[i]

		matchIdx := -1
		for j := range rightEntries {
			re := &rightEntries[j]
			if used[j] || re.Kind != le.Kind {
				continue
			}
			if w.matcher.Matches(le.Name, re.Name) {
				matchIdx = j
				break
			}
		}

		if matchIdx < 0 {
			*out = append(*out, models.LeftOnly(le))
			continue
		}

		used[matchIdx] = true
		re := &rightEntries[matchIdx]
		*out = append(*out, models.Matched(le, re))

		if le.Kind == models.KindDir {
			if err := w.walkDir(ctx, le.RelativePath, re.RelativePath, out); err != nil {
				return err
			}
		}
	}

	for j := range rightEntries {
		if !used[j] {
			*out = append(*out, models.RightOnly(&rightEntries[j]))
		}
	}

	return nil
}

// list enumerates one directory and converts admitted entries. Excluded
// entries never reach the pairing stage and so participate in no outcome.
func (w *Walker) list(ctx context.Context, backend storage.Backend, relPath string) ([]models.Entry, error) {
	infos, err := backend.ListDir(ctx, relPath)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(infos))
	for _, fi := range infos {
		if !w.filter.Admit(fi.RelativePath, fi.IsDir) {
			continue
		}

		kind := models.KindFile
		if fi.IsDir {
			kind = models.KindDir
		}

		entries = append(entries, models.Entry{
			AbsolutePath: fi.Path,
			RelativePath: fi.RelativePath,
			Name:         fi.Name,
			Kind:         kind,
			Size:         fi.Size,
		})
	}

	return entries, nil
}
