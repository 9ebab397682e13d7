package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/wordfreq/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func tokenWord(n uint64) string {
	if n == 1 {
		return "token"
	}
	return "tokens"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "1200 tokens (340 distinct) in 12 files from 2 paths, 1 error".
func (s *Styles) FormatSummaryOneLine(result *runner.Result) string {
	if result == nil {
		return s.Dim.Render("Nothing counted") + "\n"
	}

	stats := result.Stats
	parts := []string{
		fmt.Sprintf("%s %s (%s distinct) in %d %s from %d %s",
			s.SummaryValue.Render(strconv.FormatUint(stats.Tokens, 10)), tokenWord(stats.Tokens),
			s.SummaryValue.Render(strconv.Itoa(stats.Distinct)),
			stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"),
			len(result.Paths), plural(len(result.Paths), "path", "paths")),
	}

	if failures := stats.FilesErrored + stats.EntriesErrored; failures > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", failures, plural(failures, "error", "errors"))))
	}

	if aborted := len(result.Aborted()); aborted > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d aborted", aborted)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(result *runner.Result) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if result == nil {
		builder.WriteString(s.Dim.Render("  Nothing counted"))
		builder.WriteString("\n")
		return builder.String()
	}

	stats := result.Stats
	line := func(label, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	line("Paths", s.SummaryValue.Render(strconv.Itoa(len(result.Paths))))
	line("Files counted", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	line("Bytes read", s.SummaryValue.Render(strconv.FormatInt(stats.BytesRead, 10)))
	line("Tokens", s.SummaryValue.Render(strconv.FormatUint(stats.Tokens, 10)))
	line("Distinct tokens", s.SummaryValue.Render(strconv.Itoa(stats.Distinct)))

	if stats.FilesErrored > 0 {
		line("Unreadable files", s.Warning.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.EntriesErrored > 0 {
		line("Skipped entries", s.Warning.Render(strconv.Itoa(stats.EntriesErrored)))
	}
	for _, path := range result.Aborted() {
		line("Aborted", s.Error.Render(path))
	}

	builder.WriteString("\n")
	if result.HasErrors() {
		builder.WriteString(s.Warning.Render("Completed with errors"))
	} else {
		builder.WriteString(s.Success.Render("Completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
