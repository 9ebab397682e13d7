package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wordfreq/internal/ui/pretty"
	"github.com/yaklabco/wordfreq/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		result   *runner.Result
		expected string
	}{
		{
			name:     "nil result",
			result:   nil,
			expected: "Nothing counted\n",
		},
		{
			name: "clean run",
			result: &runner.Result{
				Paths: []runner.PathResult{{Path: "a"}, {Path: "b"}},
				Stats: runner.Stats{FilesProcessed: 12, Tokens: 1200, Distinct: 340},
			},
			expected: "1200 tokens (340 distinct) in 12 files from 2 paths\n",
		},
		{
			name: "singular with errors and abort",
			result: &runner.Result{
				Paths: []runner.PathResult{{Path: "a", Aborted: true}},
				Stats: runner.Stats{FilesProcessed: 1, Tokens: 1, Distinct: 1, FilesErrored: 1},
			},
			expected: "1 token (1 distinct) in 1 file from 1 path, 1 error, 1 aborted\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, styles.FormatSummaryOneLine(tt.result))
		})
	}
}

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := &runner.Result{
		Paths: []runner.PathResult{{Path: "docs"}},
		Stats: runner.Stats{FilesProcessed: 10, Tokens: 150, Distinct: 42, BytesRead: 2048, EntriesErrored: 2},
	}

	out := styles.FormatSummary(result)

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files counted:")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "Distinct tokens:")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Skipped entries:")
	assert.Contains(t, out, "Completed with errors")
	assert.NotContains(t, out, "Unreadable files:")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(&runner.Result{Stats: runner.Stats{FilesProcessed: 1}})

	assert.Contains(t, out, "Completed\n")
	assert.NotContains(t, out, "errors")
}
