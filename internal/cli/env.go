package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wordfreq/internal/configloader"
	"github.com/yaklabco/wordfreq/internal/ui/pretty"
)

const formatJSON = "json"

// envVarInfo represents an environment variable in JSON output.
type envVarInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       string `json:"value,omitempty"`
}

func newEnvCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Long: `List the WORDFREQ_* environment variables that override configuration
files, with their current values when set. Command-line flags still take
precedence over them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := envVars()

			if format == formatJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(vars); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				return nil
			}

			color, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(color, cmd.OutOrStdout()))

			width := 0
			for _, v := range vars {
				width = max(width, len(v.Name))
			}

			for _, v := range vars {
				line := styles.Bold.Render(rpad(v.Name, width)) + "  " + v.Description
				if v.Value != "" {
					line += styles.Dim.Render(fmt.Sprintf(" (set: %q)", v.Value))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")

	return cmd
}

// envVars returns the supported variables with their current values.
func envVars() []envVarInfo {
	listed := configloader.ListEnvVars()

	vars := make([]envVarInfo, 0, len(listed))
	for _, v := range listed {
		vars = append(vars, envVarInfo{
			Name:        v.Name,
			Description: v.Help,
			Value:       os.Getenv(v.Name),
		})
	}
	return vars
}
