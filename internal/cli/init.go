package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wordfreq/internal/configloader"
	"github.com/yaklabco/wordfreq/internal/logging"
	"github.com/yaklabco/wordfreq/pkg/config"
	"github.com/yaklabco/wordfreq/pkg/tally"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a wordfreq configuration file",
		Long: `Create a .wordfreq.yml configuration file in the current directory
holding the default settings. Every later run below this directory picks it
up until a VCS root is reached.

Examples:
  wordfreq init                      Create .wordfreq.yml
  wordfreq init --output custom.yml  Write to a custom file path
  wordfreq init --force              Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	cfg := config.NewConfig()
	cfg.Pattern = config.String(tally.DefaultPattern)

	if err := configloader.WriteConfig(cfg, absPath, flags.force); err != nil {
		if !flags.force {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
