package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	// Command name and usage lines
	Command lipgloss.Style

	// Section headers (Usage, Flags, ...)
	Heading lipgloss.Style

	// Subcommand names
	Subcommand lipgloss.Style

	// Flag names (--flag, -f)
	Flag lipgloss.Style

	// Flag value type hints (string, strings)
	FlagValue lipgloss.Style

	// Flag and command descriptions
	Description lipgloss.Style

	// Examples section
	Example lipgloss.Style

	// Secondary text (aliases, version)
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		return newNoColorHelpStyles()
	}
	return newColorHelpStyles()
}

func newColorHelpStyles() *HelpStyles {
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		FlagValue:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newNoColorHelpStyles() *HelpStyles {
	plain := lipgloss.NewStyle()
	return &HelpStyles{
		Command:     plain,
		Heading:     plain,
		Subcommand:  plain,
		Flag:        plain,
		FlagValue:   plain,
		Description: plain,
		Example:     plain,
		Dim:         plain,
	}
}

// usageTemplate is the styled replacement for Cobra's default usage output.
const usageTemplate = `{{styleHeading "Usage:"}}{{if .Runnable}}
  {{styleCommand .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{styleCommand (printf "%s [command]" .CommandPath)}}{{end}}

{{- if gt (len .Aliases) 0}}

{{styleHeading "Aliases:"}}
  {{styleDim (join .Aliases ", ")}}
{{- end}}

{{- if .HasExample}}

{{styleHeading "Examples:"}}
{{styleExample .Example}}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{styleHeading "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{styleSubcommand (rpad .Name .NamePadding)}} {{styleDescription .Short}}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{styleHeading "Flags:"}}
{{styleFlags .LocalFlags}}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{styleHeading "Global Flags:"}}
{{styleFlags .InheritedFlags}}
{{- end}}

{{- if .HasHelpSubCommands}}

{{styleHeading "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{styleSubcommand (rpad .CommandPath .CommandPathPadding)}} {{styleDescription .Short}}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{styleCommand (printf "%s [command] --help" .CommandPath)}}" for more information about a command.
{{- end}}
`

// helpTemplate prefixes the usage output with the command description.
const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{styleCommand .CommandPath}}{{with .Version}} {{styleDim .}}{{end}}

{{end}}{{with (or .Long .Short)}}{{trimTrailing .}}

{{end}}` + usageTemplate

// HelpFormatter renders styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer)),
	}
}

// ApplyToCommand installs the styled usage and help rendering on a command
// and, through Cobra's inheritance, on its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return usage.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// templateFuncs returns the function map the help templates draw on.
func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":     h.styles.Command.Render,
		"styleHeading":     h.styles.Heading.Render,
		"styleSubcommand":  h.styles.Subcommand.Render,
		"styleDescription": h.styles.Description.Render,
		"styleExample":     h.styles.Example.Render,
		"styleDim":         h.styles.Dim.Render,
		"styleFlags":       h.styleFlags,
		"join":             strings.Join,
		"rpad":             rpad,
		"trimTrailing":     trimTrailing,
	}
}

// styleFlags restyles a pflag usage block line by line.
func (h *HelpFormatter) styleFlags(flags any) string {
	fs, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}

	usages := strings.TrimSuffix(fs.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}

	return strings.Join(lines, "\n")
}

// styleFlagLine restyles one flag usage line. The gap between the flag spec
// and its description is kept verbatim so the columns pflag aligned stay
// aligned.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	spec, gap, desc := splitFlagUsage(trimmed)
	if desc == "" {
		return line
	}

	return indent + h.styleFlagSpec(spec) + gap + h.styles.Description.Render(desc)
}

// splitFlagUsage splits "-n, --dry-run   preview changes" into the flag
// spec, the separating spaces, and the description. The boundary is the
// first run of two or more spaces.
func splitFlagUsage(line string) (spec, gap, desc string) {
	for i := 0; i+1 < len(line); i++ {
		if line[i] != ' ' || line[i+1] != ' ' {
			continue
		}
		j := i
		for j < len(line) && line[j] == ' ' {
			j++
		}
		if j == len(line) {
			break
		}
		return line[:i], line[i:j], line[j:]
	}
	return line, "", ""
}

// styleFlagSpec styles the flag names and dims the value type hint.
func (h *HelpFormatter) styleFlagSpec(spec string) string {
	tokens := strings.Fields(spec)
	parts := make([]string, 0, len(tokens))

	for _, token := range tokens {
		name, hadComma := strings.CutSuffix(token, ",")
		if strings.HasPrefix(name, "-") {
			styled := h.styles.Flag.Render(name)
			if hadComma {
				styled += ","
			}
			parts = append(parts, styled)
			continue
		}
		parts = append(parts, h.styles.FlagValue.Render(token))
	}

	return strings.Join(parts, " ")
}

// rpad pads a string to the given width with trailing spaces.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailing removes trailing whitespace from every line.
func trimTrailing(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
