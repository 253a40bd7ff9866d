// Package classify assigns every candidate pair to one of the four
// result partitions.
package classify

import (
	"context"
	"sync"

	"github.com/mdewilde/treecomp/pkg/compare"
	"github.com/mdewilde/treecomp/pkg/config"
	"github.com/mdewilde/treecomp/pkg/models"
	"github.com/mdewilde/treecomp/pkg/storage"
)

// verdict is the outcome of one content-equivalence check
type verdict int

const (
	verdictNone verdict = iota
	verdictIdentical
	verdictDistinct
)

// Classifier turns candidate pairs into a ComparisonResult. Matched
// file pairs are evaluated by a bounded worker pool; verdicts are
// stored by candidate index so concurrency never reorders partitions.
type Classifier struct {
	left  storage.Backend
	right storage.Backend
	equiv compare.Equivalencer

	compareContent bool
	showIdentical  bool
	maxWorkers     int

	progressReport func(done, total int)
}

// New creates a classifier. equiv may be nil when content comparison is
// disabled.
func New(left, right storage.Backend, equiv compare.Equivalencer, cfg config.CompareConfig, maxWorkers int) *Classifier {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Classifier{
		left:           left,
		right:          right,
		equiv:          equiv,
		compareContent: cfg.CompareContent,
		showIdentical:  cfg.ShowIdentical,
		maxWorkers:     maxWorkers,
	}
}

// SetProgressCallback sets a callback invoked after each content check
func (c *Classifier) SetProgressCallback(callback func(done, total int)) {
	c.progressReport = callback
}

// Classify partitions the candidates. Any equivalence-check failure
// aborts classification: the caller receives an error, never a partial
// result.
func (c *Classifier) Classify(ctx context.Context, candidates []models.CandidatePair) (*models.ComparisonResult, error) {
	verdicts := make([]verdict, len(candidates))

	var work []int
	for i, pair := range candidates {
		if pair.State == models.PairMatched && pair.Kind() == models.KindFile && c.compareContent {
			work = append(work, i)
		}
	}

	if len(work) > 0 {
		if err := c.runChecks(ctx, candidates, work, verdicts); err != nil {
			return nil, err
		}
	}

	result := models.Empty(c.left.Root(), c.right.Root())
	result.Stats.FilesCompared = len(work)

	for i, pair := range candidates {
		if pair.Left != nil {
			c.count(&result.Stats, pair.Left)
		}
		if pair.Right != nil {
			c.count(&result.Stats, pair.Right)
		}

		switch pair.State {
		case models.PairMatched:
			if pair.Kind() != models.KindFile {
				continue
			}
			result.Stats.PairsMatched++
			if !c.compareContent || verdicts[i] == verdictIdentical {
				// Identical pairs satisfy the definition whether or not
				// they are materialized; skipping them here is only a
				// short-circuit.
				if c.showIdentical {
					result.Identical = append(result.Identical, filePair(pair))
				}
			} else {
				result.Distinct = append(result.Distinct, filePair(pair))
			}
		case models.PairLeftOnly:
			result.LeftOnly = append(result.LeftOnly, filePair(pair))
		case models.PairRightOnly:
			result.RightOnly = append(result.RightOnly, filePair(pair))
		}
	}

	return result, nil
}

// runChecks evaluates the matched file pairs concurrently. The first
// failure cancels the remaining checks.
func (c *Classifier) runChecks(ctx context.Context, candidates []models.CandidatePair, work []int, verdicts []verdict) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := c.maxWorkers
	if workers > len(work) {
		workers = len(work)
	}

	tasks := make(chan int)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	done := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				pair := candidates[idx]
				equivalent, err := c.equiv.Equivalent(ctx, c.left, c.right, pair.Left.RelativePath, pair.Right.RelativePath)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					continue
				}
				if equivalent {
					verdicts[idx] = verdictIdentical
				} else {
					verdicts[idx] = verdictDistinct
				}
				done++
				progress := c.progressReport
				current := done
				mu.Unlock()

				if progress != nil {
					progress(current, len(work))
				}
			}
		}()
	}

	for _, idx := range work {
		select {
		case tasks <- idx:
		case <-ctx.Done():
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (c *Classifier) count(stats *models.Statistics, entry *models.Entry) {
	if entry.IsDir() {
		stats.DirsScanned++
	} else {
		stats.FilesScanned++
	}
}

func filePair(pair models.CandidatePair) models.FilePair {
	fp := models.FilePair{
		RelativePath: pair.RelativePath(),
		Kind:         pair.Kind(),
	}
	if pair.Left != nil {
		fp.LeftPath = pair.Left.AbsolutePath
	}
	if pair.Right != nil {
		fp.RightPath = pair.Right.AbsolutePath
		if pair.Right.RelativePath != fp.RelativePath {
			fp.RightRelativePath = pair.Right.RelativePath
		}
	}
	return fp
}
