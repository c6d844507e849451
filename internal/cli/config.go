package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/zim2obsidian/internal/configloader"
	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/config"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
)

// ErrConfigLoad marks configuration loading failures so the exit code
// mapping can tell them apart from run errors.
var ErrConfigLoad = errors.New("failed to load configuration")

// loadConfig resolves the effective configuration for a command run.
// cliCfg carries the values bound to the command's flags; tri-state fields
// must already be filled in from Changed checks.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	// The config path comes from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	if finalCfg.Debug {
		logging.SetLevel("debug")
	}

	return finalCfg, nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// effectiveColorMode returns the color mode for a command's output. The
// --color flag is read directly rather than merged through the loader; its
// "auto" default would otherwise override a value from a config file.
func effectiveColorMode(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("color") {
		if mode, err := cmd.Flags().GetString("color"); err == nil {
			return mode
		}
	}
	if cfg.Color != "" {
		return cfg.Color
	}
	return string(config.ColorAuto)
}

// buildOptions maps the resolved configuration onto engine options. root
// comes from the command's positional argument; empty means the current
// working directory.
func buildOptions(root string, cfg *config.Config, logger *log.Logger) convert.Options {
	backup := fsutil.DefaultBackupConfig()
	backup.Enabled = cfg.Backup

	return convert.Options{
		Root:           root,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Exclude,
		FollowSymlinks: cfg.FollowSymlinks,
		Backticks:      cfg.Backticks,
		MDLinks:        !cfg.WikilinksEnabled(),
		PreserveAt:     cfg.PreserveAt,
		DetectLanguage: cfg.DetectLanguage,
		KeepNames:      !cfg.RenameEnabled(),
		KeepTitle:      !cfg.StripTitleEnabled(),
		DryRun:         cfg.DryRun,
		Backup:         backup,
		Logger:         logger,
	}
}
