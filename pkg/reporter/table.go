package reporter

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/wordfreq/internal/ui/pretty"
	"github.com/yaklabco/wordfreq/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter writes each path as a styled, column-aligned table.
type TableReporter struct {
	opts      Options
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result runner.PathResult) (err error) {
	defer flush(r.bw, &err)

	entries := Entries(result.Table, r.opts.Sort)
	rows := make([]pretty.TableRow, len(entries))
	for i, entry := range entries {
		rows[i] = pretty.TableRow{Token: entry.Token, Count: entry.Count}
	}

	r.bw.WriteString(r.formatter.FormatCounts(result.Path, rows))
	return nil
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
