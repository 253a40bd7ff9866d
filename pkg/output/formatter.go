// Package output renders comparison results for the terminal and for
// report files.
package output

import (
	"io"

	"github.com/mdewilde/treecomp/pkg/models"
)

// Formatter defines the interface for rendering a comparison run.
// Implementations include human-readable, JSON and progress-bar output.
type Formatter interface {
	// Start initializes the formatter before the run begins
	Start(writer io.Writer) error

	// Progress reports content-check progress during the run
	Progress(done, total int) error

	// Complete renders the final result
	Complete(result *models.ComparisonResult) error

	// Error reports a run-level failure
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
