package models

import (
	"time"
)

// FilePair is one classified entry in a result partition. One-sided
// pairs leave the absent side's path empty.
type FilePair struct {
	RelativePath string `json:"relative_path"`
	// RightRelativePath is set when the two sides matched under
	// differing names (case folding or extension pairs); empty means
	// both sides share RelativePath
	RightRelativePath string `json:"right_relative_path,omitempty"`

	LeftPath  string `json:"left_path,omitempty"`
	RightPath string `json:"right_path,omitempty"`
	Kind      Kind   `json:"kind"`
}

// RightRelative returns the relative path of the pair on the right side
func (p FilePair) RightRelative() string {
	if p.RightRelativePath != "" {
		return p.RightRelativePath
	}
	return p.RelativePath
}

// RunStatus represents the overall result of a comparison run
type RunStatus string

const (
	// StatusSuccess indicates the run completed and the result is complete
	StatusSuccess RunStatus = "success"
	// StatusFailed indicates the run aborted; the result is empty, never partial
	StatusFailed RunStatus = "failed"
	// StatusCancelled indicates the run was cancelled by the caller
	StatusCancelled RunStatus = "cancelled"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}

// Statistics holds scan and comparison metrics for one run
type Statistics struct {
	// FilesScanned counts file entries seen on both sides combined
	FilesScanned int `json:"files_scanned"`
	// DirsScanned counts directory entries seen on both sides combined
	DirsScanned int `json:"dirs_scanned"`
	// PairsMatched counts file pairs present on both sides
	PairsMatched int `json:"pairs_matched"`
	// FilesCompared counts the content-equivalence checks performed
	FilesCompared int `json:"files_compared"`
}

// ComparisonResult holds the four partitions produced by one comparison
// run plus the normalized root paths that were compared. Partitions are
// disjoint by construction: each unexcluded pair lands in exactly one.
// The result is constructed once per run and immutable thereafter.
type ComparisonResult struct {
	RunID     string `json:"run_id"`
	LeftRoot  string `json:"left_root"`
	RightRoot string `json:"right_root"`

	// Distinct holds matched pairs whose contents are not equivalent
	Distinct []FilePair `json:"distinct"`
	// LeftOnly holds entries present only under the left root
	LeftOnly []FilePair `json:"left_only"`
	// RightOnly holds entries present only under the right root
	RightOnly []FilePair `json:"right_only"`
	// Identical holds equivalent matched pairs; materialized only when
	// the show-identical option is enabled
	Identical []FilePair `json:"identical,omitempty"`

	Stats Statistics `json:"stats"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	Status RunStatus `json:"status"`
	// Err carries the surfaced error message when the run failed
	Err string `json:"error,omitempty"`
}

// Empty builds a result with all partitions empty, used when a run
// aborts before producing a complete comparison.
func Empty(leftRoot, rightRoot string) *ComparisonResult {
	return &ComparisonResult{
		LeftRoot:  leftRoot,
		RightRoot: rightRoot,
		Distinct:  []FilePair{},
		LeftOnly:  []FilePair{},
		RightOnly: []FilePair{},
		Identical: []FilePair{},
	}
}

// TotalDifferences returns the number of entries that differ between the roots
func (r *ComparisonResult) TotalDifferences() int {
	return len(r.Distinct) + len(r.LeftOnly) + len(r.RightOnly)
}
