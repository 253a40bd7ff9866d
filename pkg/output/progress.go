package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/mdewilde/treecomp/pkg/models"
)

// ProgressFormatter shows a progress bar while content checks run,
// then renders the result like the human formatter
type ProgressFormatter struct {
	mu     sync.Mutex
	writer io.Writer
	bar    *pb.ProgressBar
	human  *HumanFormatter
}

// NewProgressFormatter creates a progress-bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the formatter
func (f *ProgressFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return f.human.Start(writer)
}

// Progress advances the bar, creating it on the first report when the
// total number of checks is known
func (f *ProgressFormatter) Progress(done, total int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		f.bar = pb.New(total)
		f.bar.SetWriter(f.writer)
		f.bar.Set(pb.Bytes, false)
		f.bar.Start()
	}
	f.bar.SetCurrent(int64(done))
	return nil
}

// Complete finishes the bar and renders the result
func (f *ProgressFormatter) Complete(result *models.ComparisonResult) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	f.mu.Unlock()

	return f.human.Complete(result)
}

// Error finishes the bar and reports the failure
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
	f.mu.Unlock()

	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
