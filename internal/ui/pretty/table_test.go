package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wordfreq/internal/ui/pretty"
)

func TestTableFormatter_FormatCounts(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	out := formatter.FormatCounts("docs", []pretty.TableRow{
		{Token: "cat", Count: 3},
		{Token: "dog", Count: 2},
		{Token: "bird", Count: 1},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "docs", lines[0])
	assert.Contains(t, lines[1], "TOKEN")
	assert.Contains(t, lines[1], "COUNT")
	assert.Equal(t, strings.Repeat("=", len(lines[2])), lines[2])
	assert.Equal(t, " cat               3", lines[3])
	assert.Equal(t, " bird              1", lines[5])
}

func TestTableFormatter_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	out := formatter.FormatCounts("empty.txt", nil)
	assert.Equal(t, "empty.txt\n no tokens\n", out)
}

func TestTableFormatter_TruncatesLongTokens(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 30)

	long := strings.Repeat("é", 60)
	out := formatter.FormatCounts("p", []pretty.TableRow{{Token: long, Count: 1}})

	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}
