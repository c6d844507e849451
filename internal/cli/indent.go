package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/config"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

func newIndentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indent",
		Short: "Carry leading indentation through the Zim export",
		Long: `Zim's Markdown exporter drops leading tabs and spaces. These commands
carry indentation through the export by substituting HTML entities before
it runs and swapping them back afterwards.

Run "indent zim" on a copy of the notebook source, export that copy to
Markdown with Zim, then run "indent md" on the export.`,
	}

	cmd.AddCommand(newIndentZimCommand())
	cmd.AddCommand(newIndentMDCommand())

	return cmd
}

func newIndentZimCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "zim [path]",
		Short: "Protect indentation in notebook source files",
		Long: `Replace each leading tab with &emsp; and each leading space with &nbsp;
in Zim notebook source files, so the Markdown exporter cannot drop them.

Only .txt files carrying the Zim content-type header are touched. Run this
on a disposable copy of the notebook, never on the original.

Examples:
  zim2obsidian indent zim ~/NotesCopy
  zim2obsidian indent zim --dry-run ~/NotesCopy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndent(cmd, args, &cfg, convert.ProtectIndent)
		},
	}

	addIndentFlags(cmd, &cfg)

	return cmd
}

func newIndentMDCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "md [path]",
		Short: "Restore indentation in exported pages",
		Long: `Replace every &emsp; with a tab and every &nbsp; with a space in exported
pages, undoing the substitution made by "indent zim".

Run this on the export tree before converting it.

Examples:
  zim2obsidian indent md ~/NotesExport
  zim2obsidian indent md --dry-run ~/NotesExport`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndent(cmd, args, &cfg, convert.RestoreIndent)
		},
	}

	addIndentFlags(cmd, &cfg)
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "page file extensions (default .md)")

	return cmd
}

// runIndent runs one side of the indentation round trip.
func runIndent(cmd *cobra.Command, args []string, cfg *config.Config,
	op func(context.Context, convert.Options) (*convert.Result, error),
) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	finalCfg, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	var root string
	if len(args) > 0 {
		root = args[0]
	}

	result, err := op(ctx, buildOptions(root, finalCfg, logger))
	if err != nil {
		return errors.Join(errors.New("indent run failed"), err)
	}

	printResult(cmd, finalCfg, result, true)

	if ExitCodeFromResult(result) != ExitSuccess {
		return convert.ErrPagesFailed
	}

	return nil
}

func addIndentFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "preview changes without writing")
	cmd.Flags().BoolVar(&cfg.Backup, "backup", false, "keep a sidecar copy of each page before it changes")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns to skip")
}
