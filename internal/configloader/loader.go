// Package configloader resolves the effective wordfreq configuration from
// config files, WORDFREQ_* environment variables, and command-line flags.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/wordfreq/pkg/config"
)

// ProjectConfigName is the file name written by "wordfreq init".
const ProjectConfigName = ".wordfreq.yml"

const configFilePermissions = 0o644

// ErrConfig marks every failure to read, parse, or validate configuration.
var ErrConfig = errors.New("configuration error")

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir starts the project config search. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist when set.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds only the flags the user set. It wins over every file.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files merged, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings, such as ignore globs that never match.
	Warnings []string
}

// Load merges, from lowest to highest precedence: defaults, the system
// config, the user config, the nearest project config, the --config file,
// WORDFREQ_* variables, then CLIConfig. Each file is validated on its own
// before merging and the merged result is validated again. Every returned
// error wraps ErrConfig.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	paths, err := DiscoverPaths(ctx, opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range paths.layers(opts) {
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s config: %w", ErrConfig, layer.name, err)
		}
		if _, err := Validate(fileCfg, layer.path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	warnings, err := Validate(cfg, "")
	if err != nil {
		if !opts.IgnoreEnv {
			attributeToEnv(err)
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	result.Config = cfg
	result.Warnings = warnings
	return result, nil
}

// attributeToEnv records the environment variable behind a merged-config
// validation error. Files are validated before merging and flag values are
// checked when parsed, so a set variable for the field is the source.
func attributeToEnv(err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return
	}
	if name := EnvVarName(verr.Field); name != "" && os.Getenv(name) != "" {
		verr.EnvVar = name
	}
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig writes cfg to path as commented YAML. It refuses to replace
// an existing file unless force is set.
func WriteConfig(cfg *config.Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	content, err := cfg.ToYAMLWithHeader(`# wordfreq configuration
# Flags and WORDFREQ_* variables override these values.`)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
