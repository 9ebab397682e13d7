// Package cli provides the Cobra command structure for wordfreq.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wordfreq/internal/logging"
	"github.com/yaklabco/wordfreq/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	summary    string
}

// NewRootCommand creates the root wordfreq command with all subcommands.
// The root command itself counts tokens.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	flags := &countFlags{}

	rootCmd := &cobra.Command{
		Use:   "wordfreq [flags] [paths...]",
		Short: "Count regex-defined tokens under files and directories",
		Long: `wordfreq walks each given path, extracts tokens from every regular file
with a regular expression, and prints how often each distinct token occurs.

Each path gets its own report: the path on one line, then one
tab-indented "token count" line per distinct token. Without paths the
current directory is counted. Unreadable entries are reported on stderr
and skipped.`,
		Example: `  wordfreq                       # Count the current directory
  wordfreq docs/ notes.txt       # Two separate reports
  wordfreq -r '[a-z]+' src/      # Custom token pattern
  wordfreq -s=false . | sort     # Unsorted, for piping
  wordfreq --format json logs/   # One JSON object per path`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, globals, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&globals.summary, "summary", "",
		"print a run summary to stderr: line or block")
	rootCmd.PersistentFlags().Lookup("summary").NoOptDefVal = string(config.SummaryLine)

	addCountFlags(rootCmd, flags)

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpFormatter(&globals.color).apply(rootCmd)

	return rootCmd
}
