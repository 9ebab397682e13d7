package reporter

import (
	"bufio"
	"context"
	"strconv"

	"github.com/yaklabco/wordfreq/internal/ui/pretty"
	"github.com/yaklabco/wordfreq/pkg/runner"
)

// TextReporter writes the plain line format: the path on its own line,
// then one tab-indented "token count" line per entry.
type TextReporter struct {
	opts         Options
	styles       *pretty.Styles
	colorEnabled bool
	bw           *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:         opts,
		styles:       pretty.NewStyles(colorEnabled),
		colorEnabled: colorEnabled,
		bw:           bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result runner.PathResult) (err error) {
	defer flush(r.bw, &err)

	header := result.Path
	if r.colorEnabled {
		header = r.styles.FilePath.Render(header)
	}
	r.bw.WriteString(header)
	r.bw.WriteByte('\n')

	for _, entry := range Entries(result.Table, r.opts.Sort) {
		r.bw.WriteByte('\t')
		r.bw.WriteString(entry.Token)
		r.bw.WriteByte(' ')
		r.bw.WriteString(strconv.FormatUint(entry.Count, 10))
		r.bw.WriteByte('\n')
	}

	return nil
}
