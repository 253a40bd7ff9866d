package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mdewilde/treecomp/pkg/models"
)

// JSONFormatter renders the result as a single JSON document for
// automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is a no-op; JSON output is emitted once at completion
func (f *JSONFormatter) Progress(done, total int) error {
	return nil
}

// Complete encodes the full result
func (f *JSONFormatter) Complete(result *models.ComparisonResult) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// Error encodes a run-level failure
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	encoder := json.NewEncoder(f.writer)
	return encoder.Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
