package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/wordfreq/pkg/runner"
)

// JSONPathResult is the JSON line written for one input path.
type JSONPathResult struct {
	Path    string    `json:"path"`
	Entries []Entry   `json:"entries"`
	Stats   JSONStats `json:"stats"`
}

// JSONStats contains the per-path counters.
type JSONStats struct {
	FilesDiscovered int    `json:"files_discovered"`
	FilesProcessed  int    `json:"files_processed"`
	FilesErrored    int    `json:"files_errored"`
	EntriesErrored  int    `json:"entries_errored"`
	Tokens          uint64 `json:"tokens"`
	Distinct        int    `json:"distinct"`
	BytesRead       int64  `json:"bytes_read"`
}

// JSONReporter writes one compact JSON object per input path per line.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result runner.PathResult) (err error) {
	defer flush(r.bw, &err)

	output := JSONPathResult{
		Path:    result.Path,
		Entries: Entries(result.Table, r.opts.Sort),
		Stats: JSONStats{
			FilesDiscovered: result.Stats.FilesDiscovered,
			FilesProcessed:  result.Stats.FilesProcessed,
			FilesErrored:    result.Stats.FilesErrored,
			EntriesErrored:  result.Stats.EntriesErrored,
			Tokens:          result.Stats.Tokens,
			Distinct:        result.Stats.Distinct,
			BytesRead:       result.Stats.BytesRead,
		},
	}

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}
