// Package tally extracts tokens from byte content and aggregates their
// occurrence counts.
package tally

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
)

// DefaultPattern matches a run of two or more word characters, where a word
// character is a Unicode letter, mark, decimal digit, or connector punctuation.
const DefaultPattern = `[\p{L}\p{M}\p{Nd}\p{Pc}]{2,}`

// ErrInvalidPattern is returned when a token pattern fails to compile.
var ErrInvalidPattern = errors.New("invalid token pattern")

// Matcher finds tokens in content.
type Matcher interface {
	// Tokens yields the non-overlapping matches in content, left to right.
	// Yielded slices alias content and are only valid until content is reused.
	Tokens(content []byte) iter.Seq[[]byte]
}

// Compile-time interface check.
var _ Matcher = (*RegexpMatcher)(nil)

// RegexpMatcher is a Matcher backed by a compiled regular expression.
type RegexpMatcher struct {
	re *regexp.Regexp
}

// CompilePattern compiles expr into a RegexpMatcher. The expression is used
// as given; an empty expr matches the empty string at every position.
// Callers without a configured pattern pass DefaultPattern.
func CompilePattern(expr string) (*RegexpMatcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return &RegexpMatcher{re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(expr string) *RegexpMatcher {
	m, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the source text of the pattern.
func (m *RegexpMatcher) String() string {
	return m.re.String()
}

// Tokens implements Matcher. Empty matches are tokens too, except an empty
// match directly after a previous match, which the regexp package never
// reports. Match offsets for all of content are computed when iteration
// starts, so memory grows with the number of matches; the token bytes
// themselves are not copied.
func (m *RegexpMatcher) Tokens(content []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, loc := range m.re.FindAllIndex(content, -1) {
			if !yield(content[loc[0]:loc[1]]) {
				return
			}
		}
	}
}
