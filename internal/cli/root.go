// Package cli provides the Cobra command structure for zim2obsidian.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root zim2obsidian command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "zim2obsidian",
		Short: "Convert a Zim Markdown export into an Obsidian vault",
		Long: `zim2obsidian converts a Zim Desktop Wiki notebook, exported to Markdown,
into an Obsidian-ready vault.

Pages are renamed after their first-line titles and every link pointing at
them is rewritten to match, in a single two-pass run over the tree. Along
the way the Zim dialect is translated for Obsidian: checkboxes become
tasks, @tags become #tags, and verbatim blocks gain code fences. The
conversion is idempotent, previews as unified diffs in dry-run mode, and
can keep sidecar backups of every page it touches.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newFixExtCommand())
	rootCmd.AddCommand(newIndentCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
