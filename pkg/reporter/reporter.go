// Package reporter writes per-path token counts in text, table, or JSON form.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/wordfreq/pkg/runner"
)

// Reporter formats and writes the counts of one input path.
// Each call writes and flushes one complete block.
type Reporter interface {
	// Report writes the block for result and returns any write error.
	Report(ctx context.Context, result runner.PathResult) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// flush flushes a buffered writer, keeping the first error.
func flush(bw interface{ Flush() error }, err *error) {
	if flushErr := bw.Flush(); *err == nil && flushErr != nil {
		*err = fmt.Errorf("flush output: %w", flushErr)
	}
}
