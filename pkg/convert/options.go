// Package convert orchestrates the two-pass notebook conversion. The scan
// pass reads every page, extracts titles, and freezes the rename plan; the
// rewrite pass transforms each page and resolves its links through the
// frozen plan, so forward references work regardless of traversal order.
package convert

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/zim2obsidian/pkg/fsutil"
)

// Options controls a conversion run. The zero value converts the current
// working directory with the default behavior: pages renamed after their
// titles, title headings stripped, links rendered as wiki references.
type Options struct {
	// Root is the notebook directory to convert. A single page file is
	// also accepted; its directory becomes the tree root. If empty, the
	// current working directory is used.
	Root string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// treated as pages. Defaults to [".md"] via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to Root.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Backticks preserves pre-existing backtick markup: tab-indented lines
	// pass through without added fence delimiters, and inline code spans
	// are excluded from rewriting.
	Backticks bool

	// MDLinks keeps Markdown link syntax. The default converts Markdown
	// links to wiki references; targets are rewritten either way.
	MDLinks bool

	// PreserveAt keeps @tags in their source form instead of converting
	// them to #tags.
	PreserveAt bool

	// DetectLanguage names the language of fences opened around verbatim
	// runs, when one can be guessed.
	DetectLanguage bool

	// KeepNames leaves every page under its original filename. Links are
	// still converted and checked against the tree.
	KeepNames bool

	// KeepTitle leaves the title heading in the page body.
	KeepTitle bool

	// DryRun previews the conversion without touching the tree. Outcomes
	// carry unified diffs instead of being written.
	DryRun bool

	// Backup controls sidecar copies of pages about to be overwritten or
	// removed. Disabled by zero value.
	Backup fsutil.BackupConfig

	// Logger receives progress, rename notices, and warnings. If nil,
	// logging is discarded.
	Logger *log.Logger
}

// DefaultExtensions returns the default set of page file extensions.
func DefaultExtensions() []string {
	return []string{".md"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// logger returns the configured logger, or a discarding one.
func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}
