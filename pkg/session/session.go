// Package session orchestrates one end-to-end comparison run.
package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdewilde/treecomp/internal/platform"
	"github.com/mdewilde/treecomp/pkg/classify"
	"github.com/mdewilde/treecomp/pkg/compare"
	"github.com/mdewilde/treecomp/pkg/config"
	"github.com/mdewilde/treecomp/pkg/filter"
	"github.com/mdewilde/treecomp/pkg/match"
	"github.com/mdewilde/treecomp/pkg/models"
	"github.com/mdewilde/treecomp/pkg/ratelimit"
	"github.com/mdewilde/treecomp/pkg/storage"
	"github.com/mdewilde/treecomp/pkg/walk"
)

// Session runs a single comparison between two roots under one
// configuration snapshot. A session holds no state across runs; every
// Run is one attempt with no retries.
type Session struct {
	cfg    *config.Config
	left   storage.Backend
	right  storage.Backend
	logger zerolog.Logger

	progressReport func(done, total int)
}

// New creates a comparison session
func New(cfg *config.Config, left, right storage.Backend, logger zerolog.Logger) *Session {
	return &Session{
		cfg:    cfg,
		left:   left,
		right:  right,
		logger: logger,
	}
}

// SetProgressCallback sets a callback invoked as content checks complete
func (s *Session) SetProgressCallback(callback func(done, total int)) {
	s.progressReport = callback
}

// Run executes the comparison. Configuration is validated before any
// I/O; any error during walking or classification aborts the run. The
// returned result is never nil and never partial: on failure every
// partition is empty and the error is both logged and surfaced.
func (s *Session) Run(ctx context.Context) (*models.ComparisonResult, error) {
	runID := uuid.New().String()
	start := time.Now()

	leftRoot := platform.NormalizePath(s.left.Root())
	rightRoot := platform.NormalizePath(s.right.Root())

	logger := s.logger.With().Str("run_id", runID).Logger()
	logger.Info().
		Str("left", leftRoot).
		Str("right", rightRoot).
		Msg("starting comparison run")

	fail := func(err error) (*models.ComparisonResult, error) {
		status := models.StatusFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = models.StatusCancelled
		}
		if models.IsConfigurationError(err) {
			logger.Error().Err(err).Msg("configuration rejected")
		} else {
			logger.Error().Err(err).Msg("comparison run aborted")
		}

		result := models.Empty(leftRoot, rightRoot)
		result.RunID = runID
		result.StartTime = start
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		result.Status = status
		result.Err = err.Error()
		return result, err
	}

	if err := s.cfg.Validate(); err != nil {
		return fail(err)
	}

	matcher, err := match.New(s.cfg.Compare)
	if err != nil {
		return fail(err)
	}

	pathFilter, err := filter.New(s.cfg.Compare.Include, s.cfg.Compare.Exclude)
	if err != nil {
		return fail(err)
	}

	var equiv compare.Equivalencer
	if s.cfg.Compare.CompareContent {
		equiv = compare.ForConfig(s.cfg.Compare, s.cfg.Performance.BufferSize)
		if limiter := ratelimit.NewLimiter(s.cfg.Performance.BandwidthLimit); limiter != nil {
			if limited, ok := equiv.(interface{ SetReaderWrapper(compare.ReaderWrapper) }); ok {
				limited.SetReaderWrapper(func(r io.Reader) io.Reader {
					return ratelimit.NewReader(ctx, r, limiter)
				})
			}
		}
		logger.Debug().Str("policy", equiv.Name()).Msg("content equivalence enabled")
	}

	walker := walk.New(s.left, s.right, matcher, pathFilter)
	candidates, err := walker.Walk(ctx)
	if err != nil {
		return fail(err)
	}

	classifier := classify.New(s.left, s.right, equiv, s.cfg.Compare, s.cfg.Performance.MaxWorkers)
	if s.progressReport != nil {
		classifier.SetProgressCallback(s.progressReport)
	}

	result, err := classifier.Classify(ctx, candidates)
	if err != nil {
		return fail(err)
	}

	result.RunID = runID
	result.LeftRoot = leftRoot
	result.RightRoot = rightRoot
	result.StartTime = start
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	result.Status = models.StatusSuccess

	logger.Info().
		Int("distinct", len(result.Distinct)).
		Int("left_only", len(result.LeftOnly)).
		Int("right_only", len(result.RightOnly)).
		Int("identical", len(result.Identical)).
		Int("files_compared", result.Stats.FilesCompared).
		Dur("duration", result.Duration).
		Msg("comparison run completed")

	return result, nil
}
