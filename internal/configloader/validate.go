package configloader

import (
	"errors"
	"fmt"

	"github.com/yaklabco/wordfreq/pkg/config"
	"github.com/yaklabco/wordfreq/pkg/tally"
	"github.com/yaklabco/wordfreq/pkg/walk"
)

var (
	errUnknownFormat = errors.New("must be one of: text, json, table")
	errNegative      = errors.New("must be >= 0")
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	// FilePath is the config file holding the value, empty for the merged result.
	FilePath string
	// EnvVar names the WORDFREQ_* variable that supplied the value, if any.
	EnvVar string
	Field  string
	Value  any
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s=%v: %v", e.Field, e.Value, e.Err)
	switch {
	case e.FilePath != "":
		return e.FilePath + ": " + msg
	case e.EnvVar != "":
		return e.EnvVar + ": " + msg
	default:
		return msg
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks cfg and returns the first invalid field as a
// *ValidationError. Ignore globs that can never match are not fatal; they
// come back as warnings.
func Validate(cfg *config.Config, filePath string) ([]string, error) {
	if cfg == nil {
		return nil, nil
	}

	fail := func(field string, value any, err error) error {
		return &ValidationError{FilePath: filePath, Field: field, Value: value, Err: err}
	}

	if cfg.Pattern != nil {
		if _, err := tally.CompilePattern(*cfg.Pattern); err != nil {
			return nil, fail("pattern", *cfg.Pattern, err)
		}
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		return nil, fail("format", cfg.Format, errUnknownFormat)
	}
	if cfg.Jobs < 0 {
		return nil, fail("jobs", cfg.Jobs, errNegative)
	}
	if cfg.MaxBufferBytes < 0 {
		return nil, fail("max_buffer_bytes", cfg.MaxBufferBytes, errNegative)
	}

	var warnings []string
	for i, pattern := range cfg.Ignore {
		if err := walk.ValidatePattern(pattern); err != nil {
			warning := &ValidationError{
				FilePath: filePath,
				Field:    fmt.Sprintf("ignore[%d]", i),
				Value:    pattern,
				Err:      fmt.Errorf("%w; it will never match", err),
			}
			warnings = append(warnings, warning.Error())
		}
	}

	return warnings, nil
}
