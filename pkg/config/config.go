// Package config defines core configuration types for wordfreq.
// These types are pure data structures with no dependency on a config loader.
package config

// OutputFormat specifies how per-path counts are written.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// IsValid returns true if the format is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTable:
		return true
	default:
		return false
	}
}

// SummaryMode selects the run summary written after all paths.
type SummaryMode string

const (
	SummaryNone  SummaryMode = ""
	SummaryLine  SummaryMode = "line"
	SummaryBlock SummaryMode = "block"
)

// IsValid reports whether m is a known summary mode.
func (m SummaryMode) IsValid() bool {
	switch m {
	case SummaryNone, SummaryLine, SummaryBlock:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for wordfreq.
type Config struct {
	// Pattern is the token regular expression. Nil selects the default
	// pattern; an empty string is a valid pattern matching the empty token.
	Pattern *string `yaml:"pattern,omitempty"`

	// Sort orders entries by count, descending. Nil means "sort only when
	// stdout is a terminal".
	Sort *bool `yaml:"sort,omitempty"`

	// FollowSymlinks traverses symbolic links. Nil means the default (true).
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty"`

	// Ignore contains glob patterns for paths to skip during traversal.
	Ignore []string `yaml:"ignore,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs is the number of input paths processed concurrently.
	// 0 or 1 processes paths one at a time.
	Jobs int `yaml:"jobs,omitempty"`

	// MaxBufferBytes caps the content buffer. Files larger than this abort
	// the input path like an allocation failure. 0 means no cap.
	MaxBufferBytes int64 `yaml:"max_buffer_bytes,omitempty"`

	// CLI-level options (not persisted to config files).

	// Summary selects the run summary printed to stderr after all paths.
	Summary SummaryMode `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	follow := true
	return &Config{
		FollowSymlinks: &follow,
		Format:         FormatText,
	}
}

// TokenPattern returns the configured pattern, or defaultPattern when none is set.
func (c *Config) TokenPattern(defaultPattern string) string {
	if c == nil || c.Pattern == nil {
		return defaultPattern
	}
	return *c.Pattern
}

// ShouldSort resolves the Sort setting against whether stdout is a terminal.
func (c *Config) ShouldSort(stdoutIsTerminal bool) bool {
	if c == nil || c.Sort == nil {
		return stdoutIsTerminal
	}
	return *c.Sort
}

// ShouldFollowSymlinks resolves the FollowSymlinks setting, defaulting to true.
func (c *Config) ShouldFollowSymlinks() bool {
	if c == nil || c.FollowSymlinks == nil {
		return true
	}
	return *c.FollowSymlinks
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s, for optional string fields.
func String(s string) *string {
	return &s
}
