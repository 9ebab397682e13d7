package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minTokenWidth    = 12
	minCountWidth    = 5
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow is one token and its count.
type TableRow struct {
	Token string
	Count uint64
}

// TableFormatter formats token counts as a styled, aligned table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	token int
	count int
}

// FormatCounts renders one input path's rows under a bold path title.
// Rows are printed in the order given.
func (t *TableFormatter) FormatCounts(path string, rows []TableRow) string {
	var builder strings.Builder

	builder.WriteString(t.styles.FilePath.Render(path))
	builder.WriteString("\n")

	if len(rows) == 0 {
		builder.WriteString(t.styles.Dim.Render(" no tokens"))
		builder.WriteString("\n")
		return builder.String()
	}

	widths := t.calculateColumnWidths(rows)

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths sizes columns to content, narrowing the token
// column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{token: minTokenWidth, count: minCountWidth}

	for _, row := range rows {
		widths.token = max(widths.token, utf8.RuneCountInString(row.Token))
		widths.count = max(widths.count, len(strconv.FormatUint(row.Count, 10)))
	}

	if total := t.totalWidth(widths); total > t.termWidth {
		widths.token = max(minTokenWidth, widths.token-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.token + widths.count + tablePadding*2
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s", widths.token, "TOKEN", widths.count, "COUNT")
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	token := truncateString(row.Token, widths.token)
	pad := widths.token - utf8.RuneCountInString(token)
	count := fmt.Sprintf("%*d", widths.count, row.Count)

	return " " + t.styles.Token.Render(token) + strings.Repeat(" ", pad+tablePadding) +
		t.styles.Count.Render(count)
}

// truncateString truncates str to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if utf8.RuneCountInString(str) <= maxLen {
		return str
	}
	runes := []rune(str)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
