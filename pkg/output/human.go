package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mdewilde/treecomp/pkg/models"
)

// HumanFormatter renders results as readable text sections
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is a no-op for plain text output
func (f *HumanFormatter) Progress(done, total int) error {
	return nil
}

// Complete renders the four partitions and a summary
func (f *HumanFormatter) Complete(result *models.ComparisonResult) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	w := f.writer

	fmt.Fprintf(w, "Comparing:\n")
	fmt.Fprintf(w, "  Left:  %s\n", result.LeftRoot)
	fmt.Fprintf(w, "  Right: %s\n\n", result.RightRoot)

	writeSection(w, "Distinct", result.Distinct)
	writeSection(w, "Only in left", result.LeftOnly)
	writeSection(w, "Only in right", result.RightOnly)
	if len(result.Identical) > 0 {
		writeSection(w, "Identical", result.Identical)
	}

	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Scanned:      %d files, %d dirs\n", result.Stats.FilesScanned, result.Stats.DirsScanned)
	fmt.Fprintf(w, "  Matched:      %d file pairs\n", result.Stats.PairsMatched)
	fmt.Fprintf(w, "  Compared:     %d file pairs\n", result.Stats.FilesCompared)
	fmt.Fprintf(w, "  Differences:  %d\n", result.TotalDifferences())
	fmt.Fprintf(w, "  Duration:     %s\n", result.Duration.Round(time.Millisecond))

	return nil
}

func writeSection(w io.Writer, label string, pairs []models.FilePair) {
	if len(pairs) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", label, len(pairs))
	for _, pair := range pairs {
		suffix := ""
		if pair.Kind == models.KindDir {
			suffix = "/"
		}
		fmt.Fprintf(w, "  %s%s\n", pair.RelativePath, suffix)
	}
	fmt.Fprintf(w, "\n")
}

// Error reports a run-level failure
func (f *HumanFormatter) Error(err error) error {
	w := f.writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Comparison failed: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
