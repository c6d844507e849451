package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/config"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

func newFixExtCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "fix-ext [path]",
		Short: "Rename *.markdown pages to *.md",
		Long: `Rename pages exported with the long .markdown extension to .md, fixing
links to them along the way.

Some Zim exporter versions write .markdown files; the converter and
Obsidian both expect .md. Run this once before converting.

Examples:
  zim2obsidian fix-ext               # Fix the current directory
  zim2obsidian fix-ext ~/Notes       # Fix a notebook export
  zim2obsidian fix-ext --dry-run     # Preview the renames`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixExt(cmd, args, &cfg)
		},
	}

	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "preview changes without writing")
	cmd.Flags().BoolVar(&cfg.Backup, "backup", false, "keep a sidecar copy of each page before it changes")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns to skip")

	return cmd
}

func runFixExt(cmd *cobra.Command, args []string, cfg *config.Config) error {
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

	result, err := convert.FixExtensions(ctx, buildOptions(root, finalCfg, logger))
	if err != nil {
		return errors.Join(errors.New("extension fix failed"), err)
	}

	printResult(cmd, finalCfg, result, true)

	if ExitCodeFromResult(result) != ExitSuccess {
		return convert.ErrPagesFailed
	}

	return nil
}
