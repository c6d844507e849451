package configloader

import "github.com/yaklabco/zim2obsidian/pkg/config"

// merge combines two configurations, override taking precedence over base.
// Rules:
//   - Strings: override wins when non-empty.
//   - Plain booleans: override wins when true; a layer cannot unset a flag a
//     lower layer enabled (their zero value is indistinguishable from unset).
//   - Tri-state booleans (*bool): override wins when non-nil, so an explicit
//     false in a higher layer does take effect.
//   - Slices: override replaces base entirely when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	if override.Backticks {
		result.Backticks = true
	}
	if override.PreserveAt {
		result.PreserveAt = true
	}
	if override.DetectLanguage {
		result.DetectLanguage = true
	}
	if override.Backup {
		result.Backup = true
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}
	if override.Debug {
		result.Debug = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Wikilinks != nil {
		result.Wikilinks = override.Wikilinks
	}
	if override.Rename != nil {
		result.Rename = override.Rename
	}
	if override.StripTitle != nil {
		result.StripTitle = override.StripTitle
	}

	if override.Color != "" {
		result.Color = override.Color
	}
	if override.ConfigFile != "" {
		result.ConfigFile = override.ConfigFile
	}

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
