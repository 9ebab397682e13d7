package tally

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_AddPanicsOnOverflow(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.counts["max"] = math.MaxUint64

	assert.PanicsWithValue(t, ErrCountOverflow, func() {
		table.Add([]byte("max"))
	})
	assert.Equal(t, uint64(math.MaxUint64), table.counts["max"])
}

func TestTable_TotalSaturates(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.total = math.MaxUint64

	table.Add([]byte("fresh"))

	assert.Equal(t, uint64(math.MaxUint64), table.Total())
	assert.Equal(t, uint64(1), table.Count("fresh"))
}
