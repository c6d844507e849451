// Package config defines core configuration types for zim2obsidian.
// These types are pure data structures with no external dependencies on the loader or CLI layers.
package config

// ColorMode controls when styled terminal output is used.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is one of the known values.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for zim2obsidian.
//
// Options that default to true are tri-state pointers so that config
// files and later merge layers can distinguish "unset" from
// "explicitly false".
type Config struct {
	// Extensions lists the page file extensions to convert.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Exclude contains glob patterns for files to skip.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// Backticks marks pages as already using fenced code blocks:
	// tab-indented lines are not collected into verbatim runs and
	// inline code spans are respected during line rewriting.
	Backticks bool `mapstructure:"backticks" yaml:"backticks"`

	// Wikilinks converts Markdown links between pages to [[wikilinks]].
	Wikilinks *bool `mapstructure:"wikilinks" yaml:"wikilinks"`

	// PreserveAt keeps @words as-is instead of converting them to #tags.
	PreserveAt bool `mapstructure:"preserve-at" yaml:"preserve-at"`

	// DetectLanguage guesses an info string for fences created from
	// verbatim paragraphs.
	DetectLanguage bool `mapstructure:"detect-language" yaml:"detect-language"`

	// Rename renames page files after their first heading.
	Rename *bool `mapstructure:"rename" yaml:"rename"`

	// StripTitle removes the first heading from page bodies.
	StripTitle *bool `mapstructure:"strip-title" yaml:"strip-title"`

	// Backup writes a sidecar copy of each page before rewriting it.
	Backup bool `mapstructure:"backup" yaml:"backup"`

	// FollowSymlinks descends into symlinked directories during discovery.
	FollowSymlinks bool `mapstructure:"follow-symlinks" yaml:"follow-symlinks"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// Color controls styled output: auto, always, or never.
	Color string `mapstructure:"color" yaml:"color"`

	// CLI-level options (not persisted to config files).

	// DryRun prints diffs of what would change without writing anything.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// ConfigFile is an explicit config file path from the command line.
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: []string{".md"},
		Exclude:    nil,
		Wikilinks:  BoolPtr(true),
		Rename:     BoolPtr(true),
		StripTitle: BoolPtr(true),
		Color:      string(ColorAuto),
	}
}

// BoolPtr returns a pointer to b, for setting tri-state options.
func BoolPtr(b bool) *bool {
	return &b
}

// WikilinksEnabled reports the effective wikilinks setting; unset means enabled.
func (c *Config) WikilinksEnabled() bool {
	return c.Wikilinks == nil || *c.Wikilinks
}

// RenameEnabled reports the effective rename setting; unset means enabled.
func (c *Config) RenameEnabled() bool {
	return c.Rename == nil || *c.Rename
}

// StripTitleEnabled reports the effective strip-title setting; unset means enabled.
func (c *Config) StripTitleEnabled() bool {
	return c.StripTitle == nil || *c.StripTitle
}
