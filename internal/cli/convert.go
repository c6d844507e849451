package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/config"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
)

type convertFlags struct {
	mdLinks   bool
	noRename  bool
	keepTitle bool
}

func newConvertCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [path]",
		Short: "Convert exported pages in place",
		Long:  convertLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &cfg, flags)
		},
	}

	addConvertFlags(cmd, &cfg, flags)

	return cmd
}

const convertLongDescription = `Convert a Zim Markdown export into an Obsidian vault, in place.

Each page is renamed after its first-line title with the heading stripped
from the body, and every link in the tree is rewritten to the new name.
Zim checkboxes become Obsidian tasks, @tags become #tags, and verbatim
blocks gain code fences. Links come out as wiki references unless
--md-links is given.

The conversion is idempotent: re-running it on an already converted vault
changes nothing.

Examples:
  zim2obsidian convert                 # Convert the current directory
  zim2obsidian convert ~/Notes         # Convert a notebook export
  zim2obsidian convert --dry-run       # Preview changes as unified diffs
  zim2obsidian convert --md-links      # Keep standard Markdown links
  zim2obsidian convert --no-rename     # Keep filenames, still fix links
  zim2obsidian convert --backup        # Keep sidecar copies of originals`

func runConvert(cmd *cobra.Command, args []string, cfg *config.Config, flags *convertFlags) error {
	logger := logging.Default()

	// Tri-state options: only a flag the user actually gave may override
	// the config file.
	if cmd.Flags().Changed("md-links") {
		cfg.Wikilinks = config.BoolPtr(!flags.mdLinks)
	}
	if cmd.Flags().Changed("no-rename") {
		cfg.Rename = config.BoolPtr(!flags.noRename)
	}
	if cmd.Flags().Changed("keep-title") {
		cfg.StripTitle = config.BoolPtr(!flags.keepTitle)
	}

	ctx := logging.WithLogger(commandContext(cmd), logger)

	finalCfg, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	var root string
	if len(args) > 0 {
		root = args[0]
	}

	opts := buildOptions(root, finalCfg, logger)

	logger.Debug("starting conversion",
		logging.FieldRoot, root,
		logging.FieldDryRun, opts.DryRun,
	)

	result, err := convert.Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	printResult(cmd, finalCfg, result, false)

	if ExitCodeFromResult(result) != ExitSuccess {
		return convert.ErrPagesFailed
	}

	return nil
}

func addConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	cmd.Flags().BoolVarP(&cfg.Backticks, "backticks", "b", false, "preserve pre-existing backtick markup")
	cmd.Flags().BoolVar(&flags.mdLinks, "md-links", false, "keep standard Markdown links instead of wikilinks")
	cmd.Flags().BoolVar(&flags.noRename, "no-rename", false, "keep original filenames")
	cmd.Flags().BoolVar(&flags.keepTitle, "keep-title", false, "keep the title heading in the page body")
	cmd.Flags().BoolVar(&cfg.PreserveAt, "preserve-at", false, "keep @tags instead of converting them to #tags")
	cmd.Flags().BoolVar(&cfg.DetectLanguage, "detect-language", false, "name the language of generated code fences")
	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "preview changes without writing")
	cmd.Flags().BoolVar(&cfg.Backup, "backup", false, "keep a sidecar copy of each page before it changes")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "page file extensions (default .md)")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns to skip")
}
