package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/wordfreq/internal/configloader"
	"github.com/yaklabco/wordfreq/internal/logging"
	"github.com/yaklabco/wordfreq/internal/ui/pretty"
	"github.com/yaklabco/wordfreq/pkg/config"
	"github.com/yaklabco/wordfreq/pkg/fsutil"
	"github.com/yaklabco/wordfreq/pkg/reporter"
	"github.com/yaklabco/wordfreq/pkg/runner"
	"github.com/yaklabco/wordfreq/pkg/tally"
	"github.com/yaklabco/wordfreq/pkg/walk"
)

type countFlags struct {
	pattern        string
	sort           bool
	followSymlinks bool
	ignore         []string
	format         string
	jobs           int
	maxBufferBytes int64
}

func addCountFlags(cmd *cobra.Command, flags *countFlags) {
	cmd.Flags().StringVarP(&flags.pattern, "re", "r", "",
		"token regular expression (default: runs of two or more word characters)")
	cmd.Flags().BoolVarP(&flags.sort, "sort", "s", false,
		"sort entries by count, descending (default: true when stdout is a terminal); disable with -s=false")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", true, "traverse symbolic links")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip, relative to each path")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of paths counted concurrently (0 or 1 = one at a time)")
	cmd.Flags().Int64Var(&flags.maxBufferBytes, "max-buffer-bytes", 0,
		"largest file buffer to allocate; larger files abort their path (0 = no cap)")
}

// cliConfig builds the CLI layer of the configuration from flags the user set.
func cliConfig(cmd *cobra.Command, flags *countFlags, globals *globalFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed
	cfg := &config.Config{Summary: config.SummaryMode(globals.summary)}
	if !cfg.Summary.IsValid() {
		return nil, fmt.Errorf("%w: --summary must be line or block, got %q", ErrInvalidUsage, globals.summary)
	}

	if changed("re") {
		if _, err := tally.CompilePattern(flags.pattern); err != nil {
			return nil, fmt.Errorf("%w: --re: %w", ErrInvalidUsage, err)
		}
		cfg.Pattern = config.String(flags.pattern)
	}
	if changed("sort") {
		cfg.Sort = config.Bool(flags.sort)
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(flags.followSymlinks)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: --format: %w", ErrInvalidUsage, err)
		}
		cfg.Format = config.OutputFormat(format)
	}
	if changed("jobs") {
		if flags.jobs < 0 {
			return nil, fmt.Errorf("%w: --jobs must be >= 0", ErrInvalidUsage)
		}
		cfg.Jobs = flags.jobs
	}
	if changed("max-buffer-bytes") {
		if flags.maxBufferBytes < 0 {
			return nil, fmt.Errorf("%w: --max-buffer-bytes must be >= 0", ErrInvalidUsage)
		}
		cfg.MaxBufferBytes = flags.maxBufferBytes
	}

	return cfg, nil
}

func runCount(cmd *cobra.Command, args []string, globals *globalFlags, flags *countFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg, err := cliConfig(cmd, flags, globals)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	out := cmd.OutOrStdout()

	matcher, err := tally.CompilePattern(cfg.TokenPattern(tally.DefaultPattern))
	if err != nil {
		return fmt.Errorf("%w: %w", configloader.ErrConfig, err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", configloader.ErrConfig, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer: out,
		Format: format,
		Color:  globals.color,
		Sort:   cfg.ShouldSort(isTerminal(out)),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	logger.Debug("starting count",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldPattern, matcher.String(),
		logging.FieldFollowSymlinks, cfg.ShouldFollowSymlinks(),
		logging.FieldFormat, format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMaxBufferBytes, cfg.MaxBufferBytes,
	)

	result, err := runner.New(matcher).Run(ctx, runner.Options{
		Paths: args,
		Walk: walk.Options{
			FollowSymlinks: cfg.ShouldFollowSymlinks(),
			Ignore:         cfg.Ignore,
		},
		MaxBufferBytes: cfg.MaxBufferBytes,
		Jobs:           cfg.Jobs,
		Emit: func(pr runner.PathResult) error {
			return rep.Report(ctx, pr)
		},
		OnError: func(path string, err error) {
			if errors.Is(err, fsutil.ErrAllocation) {
				logger.Error("aborting path", logging.FieldPath, path, logging.FieldError, err)
				return
			}
			logger.Error("skipping entry", logging.FieldPath, path, logging.FieldError, err)
		},
	})

	if cfg.Summary != config.SummaryNone {
		styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, cmd.ErrOrStderr()))
		switch cfg.Summary {
		case config.SummaryBlock:
			fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummary(result))
		default:
			fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummaryOneLine(result))
		}
	}

	if err != nil {
		return errors.Join(errors.New("count failed"), err)
	}
	return nil
}

// isTerminal reports whether w is a terminal, deciding the default sort order.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
