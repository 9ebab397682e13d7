package reporter

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/yaklabco/wordfreq/pkg/tally"
)

// Entry is one reported token and its count.
type Entry struct {
	Token string `json:"token"`
	Count uint64 `json:"count"`
}

// Entries converts a table into report entries.
//
// Tokens that are not valid UTF-8 are decoded lossily, each invalid
// sequence becoming U+FFFD. When sortByCount is set, entries are ordered by
// count descending with ties broken by token ascending; otherwise they
// follow the table's iteration order.
func Entries(table *tally.Table, sortByCount bool) []Entry {
	if table == nil {
		return []Entry{}
	}

	var decoder *encoding.Decoder
	entries := make([]Entry, 0, table.Len())

	for token, count := range table.All() {
		if !utf8.ValidString(token) {
			if decoder == nil {
				decoder = unicode.UTF8.NewDecoder()
			}
			token = decodeLossy(decoder, token)
		}
		entries = append(entries, Entry{Token: token, Count: count})
	}

	if sortByCount {
		SortEntries(entries)
	}

	return entries
}

// SortEntries orders entries by count descending, then token ascending.
func SortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Token, b.Token)
	})
}

func decodeLossy(decoder *encoding.Decoder, token string) string {
	decoded, err := decoder.String(token)
	if err != nil {
		// The UTF-8 decoder replaces instead of failing; keep the raw token otherwise.
		return token
	}
	return decoded
}
