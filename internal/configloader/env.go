package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/wordfreq/pkg/config"
)

// envVarPrefix is the prefix for all wordfreq environment variables.
const envVarPrefix = "WORDFREQ_"

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name  string
	Field string
	Help  string

	// verbatim values are applied without trimming surrounding whitespace.
	verbatim bool

	apply func(cfg *config.Config, value string) error
}

// envVars lists the supported variables sorted by name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	{
		Name: envVarPrefix + "FOLLOW_SYMLINKS", Field: "follow_symlinks",
		Help: "Traverse symbolic links: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			cfg.FollowSymlinks = config.Bool(b)
			return err
		},
	},
	{
		Name: envVarPrefix + "FORMAT", Field: "format",
		Help: "Output format: text, json, or table",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	{
		Name: envVarPrefix + "IGNORE", Field: "ignore",
		Help: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = splitList(value)
			return nil
		},
	},
	{
		Name: envVarPrefix + "JOBS", Field: "jobs",
		Help: "Number of input paths processed concurrently",
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			cfg.Jobs = n
			return err
		},
	},
	{
		Name: envVarPrefix + "MAX_BUFFER_BYTES", Field: "max_buffer_bytes",
		Help: "Content buffer cap in bytes (0 = none)",
		apply: func(cfg *config.Config, value string) error {
			n, err := strconv.ParseInt(value, 10, 64)
			cfg.MaxBufferBytes = n
			return err
		},
	},
	{
		Name: envVarPrefix + "PATTERN", Field: "pattern",
		Help:     "Token regular expression, used verbatim",
		verbatim: true,
		apply: func(cfg *config.Config, value string) error {
			cfg.Pattern = config.String(value)
			return nil
		},
	},
	{
		Name: envVarPrefix + "SORT", Field: "sort",
		Help: "Sort entries by count: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			cfg.Sort = config.Bool(b)
			return err
		},
	},
}

// LoadFromEnv applies WORDFREQ_* overrides to cfg. Unset and empty
// variables are ignored, so an empty token pattern can only come from a
// config file or --re. A malformed value leaves cfg partially updated.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envVars {
		value := os.Getenv(v.Name)
		if !v.verbatim {
			value = strings.TrimSpace(value)
		}
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s=%q: invalid %s: %w", v.Name, value, v.Field, err)
		}
	}

	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// EnvVarName returns the variable that overrides a config field, or "".
func EnvVarName(field string) string {
	for _, v := range envVars {
		if v.Field == field {
			return v.Name
		}
	}
	return ""
}

// ListEnvVars returns the supported variables sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	copy(out, envVars)
	return out
}
