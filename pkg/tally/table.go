package tally

import (
	"errors"
	"iter"
	"math"
)

// ErrCountOverflow signals that a token count reached the limit of uint64.
// Reaching it means an invariant was broken; Add panics with it rather than
// wrap to a smaller count.
var ErrCountOverflow = errors.New("tally: token count overflow")

// Table maps distinct tokens to occurrence counts.
// A Table is not safe for concurrent use.
type Table struct {
	counts map[string]uint64
	total  uint64
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{counts: make(map[string]uint64)}
}

// Add records one occurrence of token. The token bytes are copied.
func (t *Table) Add(token []byte) {
	// Lookups by string(token) do not copy; inserts do.
	count, ok := t.counts[string(token)]
	if !ok {
		t.counts[string(token)] = 1
		t.bumpTotal()
		return
	}

	if count == math.MaxUint64 {
		panic(ErrCountOverflow)
	}
	t.counts[string(token)] = count + 1
	t.bumpTotal()
}

// bumpTotal saturates instead of wrapping.
func (t *Table) bumpTotal() {
	if t.total < math.MaxUint64 {
		t.total++
	}
}

// AddAll records every token yielded by seq.
func (t *Table) AddAll(seq iter.Seq[[]byte]) {
	for token := range seq {
		t.Add(token)
	}
}

// Scan records every token m finds in content.
func (t *Table) Scan(m Matcher, content []byte) {
	t.AddAll(m.Tokens(content))
}

// Count returns the number of occurrences recorded for token.
func (t *Table) Count(token string) uint64 {
	return t.counts[token]
}

// Len returns the number of distinct tokens.
func (t *Table) Len() int {
	return len(t.counts)
}

// Total returns the number of occurrences recorded across all tokens.
func (t *Table) Total() uint64 {
	return t.total
}

// All yields every token with its count in map order.
func (t *Table) All() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		for token, count := range t.counts {
			if !yield(token, count) {
				return
			}
		}
	}
}
