package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/wordfreq/internal/ui/pretty"
)

const usageTemplate = `{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ heading "Configuration:" }}
{{ configHelp }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

// helpFormatter renders help and usage text with the report styles. Color is
// decided per render from the --color flag and the destination writer.
type helpFormatter struct {
	colorMode *string
}

func newHelpFormatter(colorMode *string) *helpFormatter {
	return &helpFormatter{colorMode: colorMode}
}

// apply installs the formatter on cmd; subcommands inherit it.
func (h *helpFormatter) apply(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.render(c.OutOrStderr(), usageTemplate, c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.render(c.OutOrStdout(), helpTemplate, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *helpFormatter) render(w io.Writer, text string, cmd *cobra.Command) error {
	mode := "auto"
	if h.colorMode != nil {
		mode = *h.colorMode
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, w))

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":   styles.Bold.Render,
		"command":   styles.FilePath.Render,
		"dim":       styles.Dim.Render,
		"rpad":      rpad,
		"trimRight": trimTrailingWhitespace,
		"flags": func(fs *pflag.FlagSet) string {
			return flagUsages(styles, fs)
		},
		"configHelp": func() string {
			return styles.Dim.Render(configHelp)
		},
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}

	if err := tmpl.Execute(w, cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

const configHelp = `  Settings come from /etc/wordfreq/config.yaml, the user config directory,
  the nearest .wordfreq.yml, --config, WORDFREQ_* variables, then flags.
  Later sources win. Run "wordfreq env" to list the variables.`

// flagLine is one rendered flag before alignment.
type flagLine struct {
	names string
	typ   string
	usage string
}

// flagUsages lays out fs as aligned "names type   usage" rows.
func flagUsages(styles *pretty.Styles, fs *pflag.FlagSet) string {
	var lines []flagLine
	width := 0

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}

		typ, usage := pflag.UnquoteUsage(f)
		if shown := defaultValue(f); shown != "" {
			usage += " (default " + shown + ")"
		}

		lines = append(lines, flagLine{names: names, typ: typ, usage: usage})
		width = max(width, len(names)+1+len(typ))
	})

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteByte('\n')
		}
		plain := len(line.names) + 1 + len(line.typ)
		builder.WriteString("  ")
		builder.WriteString(styles.Bold.Render(line.names))
		builder.WriteByte(' ')
		builder.WriteString(styles.Dim.Render(line.typ))
		builder.WriteString(strings.Repeat(" ", width-plain+3))
		builder.WriteString(line.usage)
	}
	return builder.String()
}

// defaultValue returns the default worth showing in help, or "".
func defaultValue(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// rpad pads str with spaces to width.
func rpad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
